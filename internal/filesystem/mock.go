package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests. Paths are cleaned
// before use; parent directories of added files are created implicitly.
type MockFileSystem struct {
	entries    map[string]*MockFile
	currentDir string
}

// MockFile is a file or directory in the mock filesystem.
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

type mockFileInfo struct {
	name string
	file *MockFile
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return int64(len(m.file.Content)) }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.file.Mode }
func (m *mockFileInfo) ModTime() time.Time { return m.file.ModTime }
func (m *mockFileInfo) IsDir() bool        { return m.file.IsDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// NewMockFileSystem creates an empty MockFileSystem rooted at /workspace.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		entries:    make(map[string]*MockFile),
		currentDir: "/workspace",
	}
}

// AddFile adds a file, creating missing parent directories.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.ensureParents(cleanPath)
	mfs.entries[cleanPath] = &MockFile{
		Content: content,
		Mode:    0o644,
		ModTime: time.Now(),
	}
}

// AddDir adds a directory and its missing parents.
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	mfs.ensureParents(cleanPath)
	if _, exists := mfs.entries[cleanPath]; !exists {
		mfs.entries[cleanPath] = newMockDir(0o755)
	}
}

func (mfs *MockFileSystem) ensureParents(path string) {
	for dir := filepath.Dir(path); dir != "." && dir != "/" && dir != path; dir = filepath.Dir(dir) {
		if _, exists := mfs.entries[dir]; !exists {
			mfs.entries[dir] = newMockDir(0o755)
		}
	}
}

func newMockDir(perm fs.FileMode) *MockFile {
	return &MockFile{
		Mode:    perm | fs.ModeDir,
		ModTime: time.Now(),
		IsDir:   true,
	}
}

func (mfs *MockFileSystem) lookup(op, path string) (string, *MockFile, error) {
	cleanPath := filepath.Clean(path)
	file, exists := mfs.entries[cleanPath]
	if !exists {
		return cleanPath, nil, &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
	}
	return cleanPath, file, nil
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	_, file, err := mfs.lookup("open", path)
	if err != nil {
		return nil, err
	}
	if file.IsDir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	return append([]byte(nil), file.Content...), nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)

	if dir := filepath.Dir(cleanPath); dir != "." && dir != "/" {
		parent, exists := mfs.entries[dir]
		if !exists || !parent.IsDir {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
	}
	if existing, exists := mfs.entries[cleanPath]; exists && existing.IsDir {
		return &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}

	mfs.entries[cleanPath] = &MockFile{
		Content: append([]byte(nil), data...),
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

// Rename moves a file. Directories are not supported.
func (mfs *MockFileSystem) Rename(oldPath, newPath string) error {
	oldClean, file, err := mfs.lookup("rename", oldPath)
	if err != nil {
		return err
	}
	if file.IsDir {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: errors.New("is a directory")}
	}

	newClean := filepath.Clean(newPath)
	if parent, exists := mfs.entries[filepath.Dir(newClean)]; !exists || !parent.IsDir {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}

	delete(mfs.entries, oldClean)
	mfs.entries[newClean] = file
	return nil
}

func (mfs *MockFileSystem) Remove(path string) error {
	cleanPath, file, err := mfs.lookup("remove", path)
	if err != nil {
		return err
	}
	if file.IsDir && len(mfs.children(cleanPath)) > 0 {
		return &fs.PathError{Op: "remove", Path: path, Err: errors.New("directory not empty")}
	}
	delete(mfs.entries, cleanPath)
	return nil
}

func (mfs *MockFileSystem) children(dir string) []string {
	var out []string
	for p := range mfs.entries {
		if p != dir && filepath.Dir(p) == dir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	cleanPath, file, err := mfs.lookup("open", path)
	if err != nil {
		return nil, err
	}
	if !file.IsDir {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: errors.New("not a directory")}
	}

	children := mfs.children(cleanPath)
	entries := make([]fs.DirEntry, 0, len(children))
	for _, p := range children {
		entries = append(entries, fs.FileInfoToDirEntry(&mockFileInfo{name: filepath.Base(p), file: mfs.entries[p]}))
	}
	return entries, nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)
	if file, exists := mfs.entries[cleanPath]; exists {
		if !file.IsDir {
			return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
		}
		return nil
	}

	mfs.ensureParents(cleanPath)
	mfs.entries[cleanPath] = newMockDir(perm)
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	_, file, err := mfs.lookup("stat", path)
	if err != nil {
		return nil, err
	}
	return &mockFileInfo{name: filepath.Base(path), file: file}, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.entries[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

// WalkDir visits root and everything below it in lexical order. Returning
// filepath.SkipDir from a directory skips its contents; fs.SkipAll stops
// the walk.
func (mfs *MockFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	cleanRoot, _, err := mfs.lookup("lstat", root)
	if err != nil {
		return fn(root, nil, err)
	}

	var paths []string
	for p := range mfs.entries {
		if p == cleanRoot || strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) || cleanRoot == "/" {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var skipped []string
	for _, p := range paths {
		if underAny(p, skipped) {
			continue
		}

		file := mfs.entries[p]
		entry := fs.FileInfoToDirEntry(&mockFileInfo{name: filepath.Base(p), file: file})

		if err := fn(p, entry, nil); err != nil {
			switch {
			case errors.Is(err, fs.SkipAll):
				return nil
			case errors.Is(err, filepath.SkipDir):
				if file.IsDir {
					skipped = append(skipped, p)
					continue
				}
				// SkipDir on a file skips the rest of its directory.
				skipped = append(skipped, filepath.Dir(p))
				continue
			}
			return err
		}
	}

	return nil
}

func underAny(path string, dirs []string) bool {
	for _, dir := range dirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// SetCurrentDir sets the directory Getwd reports.
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = filepath.Clean(dir)
}

// Files returns the sorted paths of all regular files under dir.
func (mfs *MockFileSystem) Files(dir string) []string {
	cleanDir := filepath.Clean(dir)

	var out []string
	for p, file := range mfs.entries {
		if file.IsDir {
			continue
		}
		if strings.HasPrefix(p, cleanDir+string(filepath.Separator)) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
