package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
)

// WorkspaceBuilder helps create test workspaces
type WorkspaceBuilder struct {
	fs      *filesystem.MockFileSystem
	root    string
	modules []string
}

// NewWorkspaceBuilder creates a builder whose current directory is root.
func NewWorkspaceBuilder(root string) *WorkspaceBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	return &WorkspaceBuilder{
		fs:   fs,
		root: root,
	}
}

// AddModule adds a go.mod for modulePath at path, relative to the root.
func (wb *WorkspaceBuilder) AddModule(path, modulePath string) *WorkspaceBuilder {
	wb.modules = append(wb.modules, path)

	goMod := fmt.Sprintf("module %s\n\ngo 1.24\n", modulePath)
	wb.fs.AddFile(filepath.Join(wb.root, path, "go.mod"), []byte(goMod))

	return wb
}

// AddProfile writes a profile file with the given frontmatter fields and
// description into .aptprofiles.
func (wb *WorkspaceBuilder) AddProfile(id, frontmatter, description string) *WorkspaceBuilder {
	content := fmt.Sprintf("---\n%s\n---\n\n%s\n", strings.TrimSpace(frontmatter), description)
	wb.fs.AddFile(filepath.Join(wb.root, ".aptprofiles", id+".md"), []byte(content))
	return wb
}

// AddFile writes an arbitrary file relative to the root.
func (wb *WorkspaceBuilder) AddFile(path, content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, path), []byte(content))
	return wb
}

// Build writes a go.work using every added module and returns the
// filesystem.
func (wb *WorkspaceBuilder) Build() *filesystem.MockFileSystem {
	var b strings.Builder
	b.WriteString("go 1.24\n\nuse (\n")
	for _, path := range wb.modules {
		fmt.Fprintf(&b, "\t./%s\n", filepath.ToSlash(path))
	}
	b.WriteString(")\n")

	wb.fs.AddFile(filepath.Join(wb.root, "go.work"), []byte(b.String()))

	return wb.fs
}

// FileSystem returns the filesystem without writing a go.work.
func (wb *WorkspaceBuilder) FileSystem() *filesystem.MockFileSystem {
	return wb.fs
}
