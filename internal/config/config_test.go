package config

import (
	"testing"

	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/repo")

	cfg, err := Load(fs, "/repo", "")
	require.NoError(t, err)
	require.Equal(t, &Config{
		ProfilesDir: ".aptprofiles",
		Format:      "text",
		Nested:      true,
	}, cfg)
}

func TestLoad_WorkspaceFile(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/repo/.aptprofiles.yaml", []byte("profiles_dir: build/profiles\nformat: json\nrelease: 23\nnested: false\n"))

	cfg, err := Load(fs, "/repo", "")
	require.NoError(t, err)
	require.Equal(t, "build/profiles", cfg.ProfilesDir)
	require.Equal(t, "json", cfg.Format)
	require.Equal(t, 23, cfg.Release)
	require.False(t, cfg.Nested)
	require.Equal(t, "/repo/.aptprofiles.yaml", cfg.File)
}

func TestLoad_ExplicitFile(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/etc/aptprofile.json", []byte(`{"release": 17}`))

	cfg, err := Load(fs, "/repo", "/etc/aptprofile.json")
	require.NoError(t, err)
	require.Equal(t, 17, cfg.Release)

	_, err = Load(fs, "/repo", "/etc/missing.yaml")
	require.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("APTPROFILE_FORMAT", "json")
	t.Setenv("APTPROFILE_RELEASE", "24")

	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/repo/.aptprofiles.yaml", []byte("format: text\n"))

	cfg, err := Load(fs, "/repo", "")
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Format)
	require.Equal(t, 24, cfg.Release)
}

func TestLoad_Invalid(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/repo/.aptprofiles.yaml", []byte("format: xml\n"))

	_, err := Load(fs, "/repo", "")
	require.ErrorContains(t, err, "invalid config")

	fs.AddFile("/repo/.aptprofiles.yaml", []byte("format: [\n"))
	_, err = Load(fs, "/repo", "")
	require.ErrorContains(t, err, "failed to parse config file")
}
