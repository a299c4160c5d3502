package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benkolera/salty-deadlands/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential("roll")
	assert.Equal(t, "roll_1", g.Generate())
	assert.Equal(t, "roll_2", g.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	g := idgen.NewUUID("char")
	id := g.Generate()

	require.True(t, strings.HasPrefix(id, "char_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "char_"))
	assert.NoError(t, err)
	assert.NotEqual(t, id, g.Generate())
}
