package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"shireesh.com/nodegen/internal/schema"
)

// FrameworkProject lays out an express server project: src/controllers,
// src/models, src/routes, the server entry and package.json. When a schema
// is attached, one model stub per table is added under src/models.
type FrameworkProject struct {
	projectVersion   string
	frameworkVersion string
	watcherVersion   string
	schema           *schema.Schema
}

// FrameworkOption configures a FrameworkProject.
type FrameworkOption func(*FrameworkProject)

// WithVersions overrides the manifest version and dependency ranges. Empty
// values keep the defaults.
func WithVersions(project, framework, watcher string) FrameworkOption {
	return func(p *FrameworkProject) {
		if project != "" {
			p.projectVersion = project
		}
		if framework != "" {
			p.frameworkVersion = framework
		}
		if watcher != "" {
			p.watcherVersion = watcher
		}
	}
}

// WithSchema attaches tables to render as model stubs.
func WithSchema(s *schema.Schema) FrameworkOption {
	return func(p *FrameworkProject) { p.schema = s }
}

// NewFrameworkProject returns the express archetype.
func NewFrameworkProject(opts ...FrameworkOption) *FrameworkProject {
	p := &FrameworkProject{
		projectVersion:   DefaultProjectVersion,
		frameworkVersion: DefaultFrameworkVersion,
		watcherVersion:   DefaultWatcherVersion,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *FrameworkProject) Name() string { return "express" }

func (p *FrameworkProject) Description() string {
	return "Express web server with controllers, models and routes"
}

func (p *FrameworkProject) DirectoryPlan() []string {
	return []string{".", "src", "src/controllers", "src/models", "src/routes"}
}

// FileArtifacts returns the entry file, then the manifest, then any models.
func (p *FrameworkProject) FileArtifacts(spec ProjectSpec) ([]FileArtifact, error) {
	artifacts := []FileArtifact{
		{RelPath: ServerEntryFile, Content: ServerEntryTemplate()},
		{RelPath: ManifestFile, Data: p.Manifest(spec.Name)},
	}
	if p.schema == nil {
		return artifacts, nil
	}
	models, err := modelArtifacts(p.schema)
	if err != nil {
		return nil, err
	}
	return append(artifacts, models...), nil
}

// Manifest returns the package.json record for a project called name.
func (p *FrameworkProject) Manifest(name string) Manifest {
	return NewManifest(name, p.projectVersion, p.frameworkVersion, p.watcherVersion)
}

type model struct {
	Table      string        `json:"table"`
	PrimaryKey []string      `json:"primaryKey"`
	Columns    []modelColumn `json:"columns"`
}

type modelColumn struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// ErrModelNameCollision means two tables would share one model file.
var ErrModelNameCollision = errors.New("model file name collision")

var modelFileReplacer = strings.NewReplacer("/", "_", "\\", "_", ".", "_")

func modelArtifacts(s *schema.Schema) ([]FileArtifact, error) {
	tables := s.SortedTables()
	out := make([]FileArtifact, 0, len(tables))
	owner := map[string]string{}
	for _, t := range tables {
		m := model{Table: t.Name, PrimaryKey: t.PK, Columns: []modelColumn{}}
		if m.PrimaryKey == nil {
			m.PrimaryKey = []string{}
		}
		if t.Schema != "" {
			m.Table = t.Schema + "." + t.Name
		}
		for _, c := range t.Columns {
			m.Columns = append(m.Columns, modelColumn{Name: c.Name, Type: c.Type, Nullable: !c.NotNull})
		}
		body, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, err
		}
		rel := path.Join("src/models", modelFileReplacer.Replace(m.Table)+".js")
		if prev, ok := owner[rel]; ok {
			return nil, fmt.Errorf("%w: tables %q and %q both map to %s", ErrModelNameCollision, prev, m.Table, rel)
		}
		owner[rel] = m.Table
		out = append(out, FileArtifact{
			RelPath: rel,
			Content: "export default " + string(body) + "\n",
		})
	}
	return out, nil
}
