package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProjectName is returned before any filesystem access when the
// project name cannot be used as both a directory and a package name.
var ErrInvalidProjectName = errors.New("invalid project name")

const maxProjectNameLen = 214

// ValidateProjectName applies npm package-name rules, which also keep the
// name a single path element.
func ValidateProjectName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidProjectName)
	case len(name) > maxProjectNameLen:
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidProjectName, name, maxProjectNameLen)
	case strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_"):
		return fmt.Errorf("%w: %q must not start with '.' or '_'", ErrInvalidProjectName, name)
	}
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case '-', '_', '.', '~':
			continue
		}
		return fmt.Errorf("%w: %q contains %q", ErrInvalidProjectName, name, r)
	}
	return nil
}
