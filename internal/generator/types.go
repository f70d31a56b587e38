package generator

import (
	"encoding/json"
	"path/filepath"
)

// ProjectSpec identifies the project being generated. BasePath is the output
// root that holds one directory per project.
type ProjectSpec struct {
	Name     string
	BasePath string
}

// Root returns the project directory, BasePath/Name.
func (s ProjectSpec) Root() string {
	return filepath.Join(s.BasePath, s.Name)
}

// FileArtifact is a single file written under the project root. Exactly one
// of Content or Data is used: Data, when set, is serialized as indented JSON.
type FileArtifact struct {
	RelPath string // relative to the project root, slash separated
	Content string
	Data    any
}

// Bytes renders the artifact's file content.
func (a FileArtifact) Bytes() ([]byte, error) {
	if a.Data == nil {
		return []byte(a.Content), nil
	}
	b, err := json.MarshalIndent(a.Data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Kind reports "data" for structured artifacts and "text" otherwise.
func (a FileArtifact) Kind() string {
	if a.Data != nil {
		return "data"
	}
	return "text"
}

// Archetype is a project template. DirectoryPlan paths are relative to the
// project root; "." is the root itself.
type Archetype interface {
	Name() string
	Description() string
	DirectoryPlan() []string
	FileArtifacts(spec ProjectSpec) ([]FileArtifact, error)
}
