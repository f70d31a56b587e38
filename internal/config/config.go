// Package config loads nodegen settings from an optional YAML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"shireesh.com/nodegen/internal/generator"
)

const (
	// DefaultFile is read from the working directory when no path is given.
	DefaultFile = "nodegen.yaml"
	// DefaultOutputRoot holds one directory per generated project.
	DefaultOutputRoot = "dist"

	EnvOutputRoot = "NODEGEN_OUTPUT_ROOT"
	EnvRollback   = "NODEGEN_ROLLBACK"
)

type Config struct {
	OutputRoot       string `yaml:"output_root"`
	ProjectVersion   string `yaml:"project_version"`
	FrameworkVersion string `yaml:"framework_version"`
	WatcherVersion   string `yaml:"watcher_version"`
	Rollback         bool   `yaml:"rollback"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		OutputRoot:       DefaultOutputRoot,
		ProjectVersion:   generator.DefaultProjectVersion,
		FrameworkVersion: generator.DefaultFrameworkVersion,
		WatcherVersion:   generator.DefaultWatcherVersion,
	}
}

// Load reads path over the defaults, then applies environment overrides. An
// empty path means DefaultFile, which may be absent; an explicit path must
// exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(bytes.NewReader(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvOutputRoot); ok && v != "" {
		c.OutputRoot = v
	}
	if v, ok := lookup(EnvRollback); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRollback, err)
		}
		c.Rollback = b
	}
	return nil
}

// Validate rejects settings that would produce an unusable project.
func (c Config) Validate() error {
	if c.OutputRoot == "" {
		return errors.New("output_root must not be empty")
	}
	for name, v := range map[string]string{
		"project_version":   c.ProjectVersion,
		"framework_version": c.FrameworkVersion,
		"watcher_version":   c.WatcherVersion,
	} {
		if v == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return nil
}

// BasePath resolves OutputRoot against workDir.
func (c Config) BasePath(workDir string) string {
	if filepath.IsAbs(c.OutputRoot) {
		return filepath.Clean(c.OutputRoot)
	}
	return filepath.Join(workDir, c.OutputRoot)
}

// FrameworkOptions carries the version settings into the express archetype.
func (c Config) FrameworkOptions() []generator.FrameworkOption {
	return []generator.FrameworkOption{
		generator.WithVersions(c.ProjectVersion, c.FrameworkVersion, c.WatcherVersion),
	}
}
