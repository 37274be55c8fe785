package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/jakoblorz/go-aptprofile/internal/models"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
	"github.com/stretchr/testify/require"
)

func sampleTree(t *testing.T) *partition.Tree {
	t.Helper()

	store := partition.NewStore(partition.StaticUniverse{"web", "api", "Billing", "core"})
	lombok, err := store.CreateProfile("Lombok")
	require.NoError(t, err)
	_, err = store.CreateProfile("MapStruct")
	require.NoError(t, err)
	require.NoError(t, store.UpdateSettings(lombok, models.ProcessorSettings{Enabled: true, ObtainFromClasspath: true}))
	_, err = store.MoveMembers([]string{"api", "core"}, store.DefaultProfile(), lombok)
	require.NoError(t, err)

	return store.View()
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleTree(t), TextOptions{Plain: true}))
	snaps.MatchSnapshot(t, buf.String())
}

func TestText_Highlight(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleTree(t), TextOptions{Plain: true, Highlight: "core"}))
	require.Contains(t, buf.String(), "└─ core ←\n")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleTree(t)))

	var decoded struct {
		Profiles []struct {
			Name    string   `json:"name"`
			Default bool     `json:"default"`
			Enabled bool     `json:"enabled"`
			Modules []string `json:"modules"`
		} `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Profiles, 3)
	require.True(t, decoded.Profiles[0].Default)
	require.Equal(t, []string{"Billing", "web"}, decoded.Profiles[0].Modules)
	require.True(t, decoded.Profiles[1].Enabled)
	require.Equal(t, []string{}, decoded.Profiles[2].Modules)
}

func TestTemplate(t *testing.T) {
	tmpl, err := ParseTemplate("tree", `{{range .Explicit}}{{.Name | upper}}={{join "," .Modules}};{{end}}default={{len .Default.Modules}} total={{.Modules}}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Template(&buf, tmpl, sampleTree(t)))
	require.Equal(t, "LOMBOK=api,core;MAPSTRUCT=;default=2 total=4", buf.String())
}

func TestTemplate_Errors(t *testing.T) {
	_, err := ParseTemplate("bad", "{{range}}")
	require.ErrorContains(t, err, "failed to parse template bad")

	tmpl, err := ParseTemplate("missing", "{{.Nope}}")
	require.NoError(t, err)
	require.ErrorContains(t, Template(&bytes.Buffer{}, tmpl, sampleTree(t)), "failed to execute template missing")
}

func TestFindAndLoadTemplate(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/repo/.aptprofiles")

	_, ok := FindTemplate(fs, "/repo/.aptprofiles")
	require.False(t, ok)

	fs.AddFile("/repo/.aptprofiles/tree.tmpl", []byte(`{{len .Profiles}}`))
	path, ok := FindTemplate(fs, "/repo/.aptprofiles")
	require.True(t, ok)

	tmpl, err := LoadTemplate(fs, path)
	require.NoError(t, err)
	require.Equal(t, "tree.tmpl", tmpl.Name())

	var buf bytes.Buffer
	require.NoError(t, Template(&buf, tmpl, sampleTree(t)))
	require.Equal(t, "3", buf.String())
}
