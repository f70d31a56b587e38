// Package generator scaffolds Node.js starter projects. An Archetype supplies
// a directory plan and file artifacts; Generator materializes them under
// ProjectSpec.Root().
package generator

import (
	"os"
	"path/filepath"

	"shireesh.com/nodegen/internal/ui"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Reporter receives progress notices. *ui.Printer implements it.
type Reporter interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Debug(format string, args ...any)
}

// Generator runs one archetype for one project. Filesystem errors are
// returned unchanged; without rollback, whatever was written before the
// error stays on disk.
type Generator struct {
	spec      ProjectSpec
	archetype Archetype
	reporter  Reporter
	rollback  bool
}

type Option func(*Generator)

func WithReporter(r Reporter) Option {
	return func(g *Generator) { g.reporter = r }
}

// WithRollback removes created paths and restores overwritten files when a
// run fails.
func WithRollback(enabled bool) Option {
	return func(g *Generator) { g.rollback = enabled }
}

// New creates a generator for spec using archetype. Progress goes to stdout
// unless WithReporter says otherwise.
func New(spec ProjectSpec, archetype Archetype, opts ...Option) *Generator {
	g := &Generator{spec: spec, archetype: archetype}
	for _, opt := range opts {
		opt(g)
	}
	if g.reporter == nil {
		g.reporter = ui.New(os.Stdout)
	}
	return g
}

// NewPlainProjectGenerator generates basePath/name with the plain archetype.
func NewPlainProjectGenerator(name, basePath string, opts ...Option) *Generator {
	return New(ProjectSpec{Name: name, BasePath: basePath}, NewPlainProject(), opts...)
}

// NewFrameworkProjectGenerator generates basePath/name with the express
// archetype and default versions.
func NewFrameworkProjectGenerator(name, basePath string, opts ...Option) *Generator {
	return New(ProjectSpec{Name: name, BasePath: basePath}, NewFrameworkProject(), opts...)
}

// InitializeProject creates the directory plan, in order, then writes every
// artifact, overwriting existing files.
func (g *Generator) InitializeProject() (err error) {
	if err := ValidateProjectName(g.spec.Name); err != nil {
		return err
	}

	files, err := g.render()
	if err != nil {
		return err
	}

	var j *journal
	if g.rollback {
		j = &journal{}
		defer func() {
			if err == nil {
				return
			}
			if uerr := j.undo(); uerr != nil {
				g.reporter.Debug("Rollback incomplete: %v", uerr)
			} else {
				g.reporter.Debug("Rolled back %s", g.display("."))
			}
		}()
	}

	if err = g.createDirectories(j); err != nil {
		return err
	}
	if err = g.writeFiles(files, j); err != nil {
		return err
	}

	g.reporter.Success("Project '%s' has been initialized successfully.", g.spec.Name)
	return nil
}

type renderedFile struct {
	relPath string
	data    []byte
}

// render serializes all artifacts before anything touches the disk.
func (g *Generator) render() ([]renderedFile, error) {
	artifacts, err := g.archetype.FileArtifacts(g.spec)
	if err != nil {
		return nil, err
	}
	files := make([]renderedFile, 0, len(artifacts))
	for _, a := range artifacts {
		data, err := a.Bytes()
		if err != nil {
			return nil, err
		}
		files = append(files, renderedFile{relPath: a.RelPath, data: data})
	}
	return files, nil
}

func (g *Generator) createDirectories(j *journal) error {
	root := g.spec.Root()
	for _, rel := range g.archetype.DirectoryPlan() {
		dir := filepath.Join(root, filepath.FromSlash(rel))
		if _, err := os.Stat(dir); err == nil {
			g.reporter.Debug("Directory already exists: %s", g.display(rel))
			continue
		}
		if j != nil {
			if err := j.beforeMkdir(dir); err != nil {
				return err
			}
		}
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
		g.reporter.Info("Directory created: %s", g.display(rel))
	}
	return nil
}

func (g *Generator) writeFiles(files []renderedFile, j *journal) error {
	root := g.spec.Root()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f.relPath))
		if j != nil {
			if err := j.beforeWrite(path); err != nil {
				return err
			}
		}
		if err := os.WriteFile(path, f.data, filePerm); err != nil {
			return err
		}
		g.reporter.Info("File created: %s", g.display(f.relPath))
	}
	return nil
}

// display shortens rel to output-root/name/rel for progress lines.
func (g *Generator) display(rel string) string {
	return filepath.Join(filepath.Base(g.spec.BasePath), g.spec.Name, filepath.FromSlash(rel))
}
