package partition

import (
	"errors"
	"testing"

	"github.com/jakoblorz/go-aptprofile/internal/models"
	"github.com/stretchr/testify/require"
)

func TestInitFrom(t *testing.T) {
	s, views := newTestStore(t, "api", "core", "web")
	def := s.DefaultProfile()

	err := s.InitFrom(Snapshot{
		Default: State{
			Name:     "Fallback",
			Modules:  []string{"web"},
			Settings: models.ProcessorSettings{Enabled: true, ObtainFromClasspath: true},
		},
		Profiles: []State{
			{ID: "lombok", Name: "Lombok", Description: "code generation", Modules: []string{"api", "core"}},
			{ID: "mapstruct", Name: "MapStruct", Modules: []string{"core", "web"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, *views, 1)

	require.Same(t, def, s.DefaultProfile(), "default identity must survive a reload")
	require.Equal(t, "Fallback", def.Name)
	require.True(t, def.Settings.Enabled)

	profiles := s.ExplicitProfiles()
	require.Len(t, profiles, 2)
	require.Equal(t, "lombok", profiles[0].ID)
	require.Equal(t, "code generation", profiles[0].Description)
	require.Equal(t, []string{"api", "core"}, profiles[0].Members())
	require.Equal(t, []string{"web"}, profiles[1].Members(), "first claim wins")

	tree := s.View()
	require.Equal(t, []string{}, modulesOf(t, tree, "Fallback"))
	requirePartition(t, s)
}

func TestInitFrom_RejectsInvalidNames(t *testing.T) {
	s, views := newTestStore(t, "api")
	_, _ = s.CreateProfile("existing")
	before := s.Export()
	rebuilds := len(*views)

	err := s.InitFrom(Snapshot{Profiles: []State{{ID: "a", Name: "A"}, {ID: "b", Name: "A"}}})
	require.ErrorIs(t, err, ErrDuplicateName)

	var nameErr *NameError
	require.True(t, errors.As(err, &nameErr))
	require.Equal(t, "init", nameErr.Op)

	err = s.InitFrom(Snapshot{Profiles: []State{{ID: "a", Name: ""}}})
	require.ErrorIs(t, err, ErrInvalidName)

	err = s.InitFrom(Snapshot{Profiles: []State{{ID: "a", Name: DefaultProfileName}}})
	require.ErrorIs(t, err, ErrDuplicateName)

	require.Equal(t, before, s.Export())
	require.Len(t, *views, rebuilds)
}

func TestInitFrom_AssignsMissingAndDuplicateIDs(t *testing.T) {
	s := NewStore(StaticUniverse{"api"}, WithIDGenerator(func() (string, error) {
		return "generated", nil
	}))

	require.NoError(t, s.InitFrom(Snapshot{Profiles: []State{
		{ID: "a", Name: "A"},
		{ID: "a", Name: "B"},
	}}))

	profiles := s.ExplicitProfiles()
	require.Equal(t, "a", profiles[0].ID)
	require.Equal(t, "generated", profiles[1].ID)
}

func TestExport_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t, "api", "core", "web")
	a, _ := s.CreateProfile("A")
	b, _ := s.CreateProfile("B")
	_, _ = s.MoveMembers([]string{"api"}, s.DefaultProfile(), a)
	_, _ = s.MoveMembers([]string{"web", "core"}, s.DefaultProfile(), b)
	require.NoError(t, s.UpdateSettings(b, models.ProcessorSettings{
		Enabled:             true,
		ObtainFromClasspath: true,
		Options:             map[string]string{"mapstruct.defaultComponentModel": "spring"},
	}))

	snap := s.Export()
	require.Nil(t, snap.Default.Modules)
	require.Equal(t, []string{"core", "web"}, snap.Profiles[1].Modules)

	restored := NewStore(StaticUniverse{"api", "core", "web"})
	require.NoError(t, restored.InitFrom(snap))
	require.Equal(t, snap, restored.Export())
	require.Equal(t, s.View(), restored.View())

	snap.Profiles[1].Settings.Options["mapstruct.defaultComponentModel"] = "cdi"
	require.Equal(t, "spring", b.Settings.Options["mapstruct.defaultComponentModel"])
}
