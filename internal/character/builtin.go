package character

import (
	"embed"
	"path"
	"slices"
	"strings"

	"github.com/benkolera/salty-deadlands/internal/errors"
)

//go:embed sheets/*.yaml
var builtinSheets embed.FS

// Builtin parses one of the sheets shipped with the binary
func Builtin(name string) (*Sheet, error) {
	data, err := builtinSheets.ReadFile(path.Join("sheets", name+".yaml"))
	if err != nil {
		return nil, errors.NotFoundf("builtin sheet %q not found", name).
			WithMeta("available", BuiltinNames())
	}
	return Parse(data)
}

// BuiltinNames lists the shipped sheets, sorted
func BuiltinNames() []string {
	entries, err := builtinSheets.ReadDir("sheets")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
