package curriculum

import (
	_ "embed"
	"fmt"
)

//go:embed default.toml
var defaultCurriculum string

// Default returns the curriculum bundled with the binary.
func Default() (*Curriculum, error) {
	c, err := Parse(defaultCurriculum)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded curriculum: %w", err)
	}
	return c, nil
}

// DefaultTOML returns the bundled curriculum source, for writing a starter
// file the user can edit.
func DefaultTOML() string {
	return defaultCurriculum
}
