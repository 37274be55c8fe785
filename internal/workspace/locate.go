package workspace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
)

// GoEnv names the go.work and go.mod files that bound the module universe.
// Either may be empty.
type GoEnv struct {
	GoWork string
	GoMod  string
}

// Root returns the directory profiles are stored relative to: the go.work
// directory when there is one, else the go.mod directory. It is empty when
// neither file was found.
func (e GoEnv) Root() string {
	switch {
	case e.GoWork != "":
		return filepath.Dir(e.GoWork)
	case e.GoMod != "":
		return filepath.Dir(e.GoMod)
	}
	return ""
}

// normalized drops the values go env reports for "no file" and cleans the
// rest.
func (e GoEnv) normalized() GoEnv {
	clean := func(path string, unset ...string) string {
		path = strings.TrimSpace(path)
		for _, u := range unset {
			if strings.EqualFold(path, u) {
				return ""
			}
		}
		if path == "" {
			return ""
		}
		return filepath.Clean(path)
	}

	return GoEnv{
		GoWork: clean(e.GoWork, "off"),
		GoMod:  clean(e.GoMod, os.DevNull, "NUL"),
	}
}

// GoEnvReader locates the go.work and go.mod in effect for the current
// directory.
type GoEnvReader interface {
	Read() (GoEnv, error)
}

// GoEnvReaderFunc adapts a function to GoEnvReader.
type GoEnvReaderFunc func() (GoEnv, error)

// Read calls f.
func (f GoEnvReaderFunc) Read() (GoEnv, error) {
	return f()
}

// NewFileEnvReader searches the current directory of fs and its parents
// for the nearest go.work and go.mod. It needs no go toolchain.
func NewFileEnvReader(fs filesystem.FileSystem) GoEnvReader {
	return GoEnvReaderFunc(func() (GoEnv, error) {
		cwd, err := fs.Getwd()
		if err != nil {
			return GoEnv{}, fmt.Errorf("failed to get working directory: %w", err)
		}

		var env GoEnv
		for dir := filepath.Clean(cwd); ; {
			if env.GoWork == "" && fs.Exists(filepath.Join(dir, "go.work")) {
				env.GoWork = filepath.Join(dir, "go.work")
			}
			if env.GoMod == "" && fs.Exists(filepath.Join(dir, "go.mod")) {
				env.GoMod = filepath.Join(dir, "go.mod")
			}

			parent := filepath.Dir(dir)
			if env.GoWork != "" || parent == dir {
				return env, nil
			}
			dir = parent
		}
	})
}

// NewGoCommandEnvReader asks `go env` in the current directory of fs, so
// GOWORK overrides and GOFLAGS are honored.
func NewGoCommandEnvReader(fs filesystem.FileSystem) GoEnvReader {
	return GoEnvReaderFunc(func() (GoEnv, error) {
		cwd, err := fs.Getwd()
		if err != nil {
			return GoEnv{}, fmt.Errorf("failed to get working directory: %w", err)
		}

		vars, err := goEnv(cwd, "GOWORK", "GOMOD")
		if err != nil {
			return GoEnv{}, err
		}

		return GoEnv{GoWork: vars["GOWORK"], GoMod: vars["GOMOD"]}.normalized(), nil
	})
}

// goEnv runs `go env -json` for the given variables in dir.
func goEnv(dir string, names ...string) (map[string]string, error) {
	cmd := exec.Command("go", append([]string{"env", "-json"}, names...)...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("go env failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("go env failed: %w", err)
	}

	vars := make(map[string]string, len(names))
	if err := json.Unmarshal(stdout.Bytes(), &vars); err != nil {
		return nil, fmt.Errorf("failed to parse go env output: %w", err)
	}
	return vars, nil
}
