package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/jakoblorz/go-aptprofile/internal/models"
	"golang.org/x/mod/modfile"
)

var (
	// ErrNotFound is returned when neither go.work nor go.mod is found.
	ErrNotFound = errors.New("workspace not found")

	// ErrNoModules is returned when a workspace contains no modules.
	ErrNoModules = errors.New("no modules found in workspace")
)

// Workspace is a Go workspace and the modules it contains. It is the
// module universe profiles partition.
type Workspace struct {
	fs     filesystem.FileSystem
	env    GoEnvReader
	logger *slog.Logger

	RootPath     string
	WorkFilePath string
	Modules      []*models.Module

	nested bool
}

// Option configures workspace behavior.
type Option func(*Workspace)

// WithGoEnvReader sets how the active go.work or go.mod is located.
func WithGoEnvReader(reader GoEnvReader) Option {
	return func(w *Workspace) {
		w.env = reader
	}
}

// WithNestedModules controls whether a single-module workspace also picks
// up go.mod files in subdirectories. Enabled by default.
func WithNestedModules(enabled bool) Option {
	return func(w *Workspace) {
		w.nested = enabled
	}
}

// WithLogger sets the logger for discovery diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem, options ...Option) *Workspace {
	ws := &Workspace{
		fs:      fs,
		logger:  slog.Default(),
		Modules: []*models.Module{},
		nested:  true,
	}

	for _, option := range options {
		option(ws)
	}

	if ws.env == nil {
		ws.env = NewFileEnvReader(fs)
	}

	return ws
}

// Detect locates the workspace from the current directory and loads its
// modules. A go.work wins over a go.mod.
func (w *Workspace) Detect() error {
	env, err := w.env.Read()
	if err != nil {
		return fmt.Errorf("failed to locate workspace: %w", err)
	}

	var modules []*models.Module
	switch {
	case env.GoWork != "":
		w.RootPath = env.Root()
		w.WorkFilePath = env.GoWork
		modules, err = w.loadWorkModules()
	case env.GoMod != "":
		w.RootPath = env.Root()
		modules, err = w.loadModuleTree(env.GoMod)
	default:
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load modules: %w", err)
	}

	modules = dedupeModuleNames(modules)
	if len(modules) == 0 {
		return ErrNoModules
	}

	w.Modules = modules
	w.logger.Debug("detected workspace", "root", w.RootPath, "modules", len(modules))
	return nil
}

// loadWorkModules loads every module named by a use directive in go.work.
func (w *Workspace) loadWorkModules() ([]*models.Module, error) {
	data, err := w.fs.ReadFile(w.WorkFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.work: %w", err)
	}

	workFile, err := modfile.ParseWork(w.WorkFilePath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.work: %w", err)
	}

	var modules []*models.Module
	for _, use := range workFile.Use {
		modulePath := use.Path
		if !filepath.IsAbs(modulePath) {
			modulePath = filepath.Join(w.RootPath, modulePath)
		}

		module, err := w.loadModule(filepath.Join(modulePath, "go.mod"))
		if err != nil {
			return nil, fmt.Errorf("failed to load module at %s: %w", modulePath, err)
		}
		modules = append(modules, module)
	}

	return modules, nil
}

// loadModuleTree loads the root module and, unless disabled, every nested
// module below it that is neither gitignored nor in a directory the go
// command skips.
func (w *Workspace) loadModuleTree(rootGoMod string) ([]*models.Module, error) {
	root, err := w.loadModule(rootGoMod)
	if err != nil {
		return nil, err
	}
	modules := []*models.Module{root}

	if !w.nested {
		return modules, nil
	}

	ignore, err := w.loadRootGitIgnore()
	if err != nil {
		return nil, err
	}

	err = w.fs.WalkDir(w.RootPath, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == w.RootPath {
			return nil
		}

		rel, relErr := filepath.Rel(w.RootPath, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			skip := skipDirName(entry.Name())
			if !skip && ignore != nil {
				if match := ignore.Relative(rel, true); match != nil && match.Ignore() {
					skip = true
				}
			}
			if skip {
				w.logger.Debug("skipping directory", "dir", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Name() != "go.mod" || path == rootGoMod {
			return nil
		}

		module, err := w.loadModule(path)
		if err != nil {
			return fmt.Errorf("failed to load module at %s: %w", filepath.Dir(path), err)
		}
		modules = append(modules, module)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return modules, nil
}

// skipDirName reports directories the go command ignores when matching
// ./... patterns.
func skipDirName(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// loadModule parses a go.mod file.
func (w *Workspace) loadModule(goModPath string) (*models.Module, error) {
	if !w.fs.Exists(goModPath) {
		return nil, fmt.Errorf("go.mod not found at %s", goModPath)
	}

	data, err := w.fs.ReadFile(goModPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod: %w", err)
	}

	modFile, err := modfile.ParseLax(goModPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod: %w", err)
	}
	if modFile.Module == nil {
		return nil, fmt.Errorf("go.mod at %s has no module directive", goModPath)
	}

	modulePath := modFile.Module.Mod.Path
	return models.NewModule(moduleName(modulePath), filepath.Dir(goModPath), modulePath, goModPath), nil
}

func (w *Workspace) loadRootGitIgnore() (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(w.RootPath, ".gitignore")
	if !w.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := w.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), w.RootPath, nil), nil
}

// ModuleNames returns the module names in discovery order.
func (w *Workspace) ModuleNames() []string {
	names := make([]string, len(w.Modules))
	for i, m := range w.Modules {
		names[i] = m.Name
	}
	return names
}

// GetModule returns a module by name.
func (w *Workspace) GetModule(name string) (*models.Module, error) {
	for _, m := range w.Modules {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("module %s not found in workspace", name)
}

// ProfilesDir resolves the profile directory against the workspace root.
func (w *Workspace) ProfilesDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(w.RootPath, dir)
}

// Universe adapts the workspace to partition.UniverseProvider.
type Universe struct {
	ws *Workspace
}

// Universe returns the live module universe of the workspace.
func (w *Workspace) Universe() Universe {
	return Universe{ws: w}
}

// Modules returns the names of the currently detected modules.
func (u Universe) Modules() []string {
	return u.ws.ModuleNames()
}

// moduleName returns the last element of a module path, skipping a major
// version suffix: "github.com/user/svc/v2" -> "svc".
func moduleName(modulePath string) string {
	parts := strings.Split(modulePath, "/")
	name := parts[len(parts)-1]
	if len(parts) > 1 && isMajorSuffix(name) {
		name = parts[len(parts)-2]
	}
	return name
}

func isMajorSuffix(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}
	for _, r := range elem[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// dedupeModuleNames keeps the first use of a name and suffixes later ones
// with -2, -3, ...
func dedupeModuleNames(modules []*models.Module) []*models.Module {
	taken := make(map[string]struct{}, len(modules))
	for _, m := range modules {
		taken[m.Name] = struct{}{}
	}

	seen := make(map[string]bool, len(modules))
	for _, m := range modules {
		if !seen[m.Name] {
			seen[m.Name] = true
			continue
		}

		base := m.Name
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s-%d", base, n)
			if _, exists := taken[candidate]; !exists {
				m.Name = candidate
				break
			}
		}
		taken[m.Name] = struct{}{}
		seen[m.Name] = true
	}

	return modules
}
