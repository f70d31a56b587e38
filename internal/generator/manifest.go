package generator

// Default manifest values for the express archetype.
const (
	DefaultProjectVersion   = "1.0.0"
	FrameworkPackage        = "express"
	DefaultFrameworkVersion = "^4.21.0"
	WatcherPackage          = "nodemon"
	DefaultWatcherVersion   = "^3.1.7"

	// ModuleType marks the package as ES modules.
	ModuleType = "module"
)

// Manifest is the package.json of a generated express project. Fields are
// emitted in declaration order and map keys sorted, so output is stable.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Main            string            `json:"main"`
	Type            string            `json:"type"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// NewManifest builds the manifest for a project named name. Main always
// points at ServerEntryFile.
func NewManifest(name, version, frameworkVersion, watcherVersion string) Manifest {
	return Manifest{
		Name:    name,
		Version: version,
		Main:    ServerEntryFile,
		Type:    ModuleType,
		Scripts: map[string]string{
			"start": "node " + ServerEntryFile,
			"dev":   WatcherPackage + " " + ServerEntryFile,
		},
		Dependencies: map[string]string{
			FrameworkPackage: frameworkVersion,
		},
		DevDependencies: map[string]string{
			WatcherPackage: watcherVersion,
		},
	}
}
