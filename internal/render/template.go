package render

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
)

// TemplateFileName is the tree template looked up in the profile directory.
const TemplateFileName = "tree.tmpl"

// TemplateData is the value a tree template is executed with.
type TemplateData struct {
	Profiles []partition.Node
	Default  partition.Node
	Explicit []partition.Node
	Modules  int
}

func newTemplateData(tree *partition.Tree) TemplateData {
	data := TemplateData{
		Profiles: tree.Nodes,
		Modules:  tree.ModuleCount(),
	}
	for _, node := range tree.Nodes {
		if node.Default {
			data.Default = node
			continue
		}
		data.Explicit = append(data.Explicit, node)
	}
	return data
}

// ParseTemplate parses text with the sprig function map.
func ParseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// LoadTemplate reads and parses a template file.
func LoadTemplate(fs filesystem.FileSystem, path string) (*template.Template, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return ParseTemplate(filepath.Base(path), string(data))
}

// FindTemplate returns the tree template in profilesDir, if there is one.
func FindTemplate(fs filesystem.FileSystem, profilesDir string) (string, bool) {
	path := filepath.Join(profilesDir, TemplateFileName)
	return path, fs.Exists(path)
}

// Template executes tmpl for the tree and writes the result.
func Template(w io.Writer, tmpl *template.Template, tree *partition.Tree) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newTemplateData(tree)); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", tmpl.Name(), err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
