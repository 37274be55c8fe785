package models

// Module represents a Go module discovered in the workspace.
type Module struct {
	// Name is the module identifier (unique within the workspace)
	Name string

	// RootPath is the absolute path to the module root
	RootPath string

	// ModulePath is the full module path from go.mod
	ModulePath string

	// ManifestPath is the path to the go.mod file.
	ManifestPath string
}

// NewModule creates a new Module instance
func NewModule(name, rootPath, modulePath, manifestPath string) *Module {
	return &Module{
		Name:         name,
		RootPath:     rootPath,
		ModulePath:   modulePath,
		ManifestPath: manifestPath,
	}
}
