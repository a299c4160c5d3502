// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"go.uber.org/mock/gomock"

	"github.com/benkolera/salty-deadlands/internal/dice"
	dicemock "github.com/benkolera/salty-deadlands/internal/dice/mock"
)

// ExpectFaces sets up the roller to return faces on sides-sided dice, in order
func ExpectFaces(mockRoller *dicemock.MockRoller, sides dice.Sides, faces ...int) {
	var prev *gomock.Call
	for _, f := range faces {
		call := mockRoller.EXPECT().Roll(int(sides)).Return(f, nil)
		if prev != nil {
			call.After(prev)
		}
		prev = call
	}
}

// ExpectRollError sets up the roller to fail the next roll of sides
func ExpectRollError(mockRoller *dicemock.MockRoller, sides dice.Sides, err error) {
	mockRoller.EXPECT().Roll(int(sides)).Return(0, err)
}
