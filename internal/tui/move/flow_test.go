package move

import (
	"testing"

	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*partition.Store, *partition.Profile) {
	t.Helper()

	store := partition.NewStore(partition.StaticUniverse{"api", "core", "web"})
	require.NoError(t, store.InitFrom(partition.Snapshot{
		Profiles: []partition.State{
			{ID: "backend", Name: "Backend", Modules: []string{"api", "ghost"}},
		},
	}))
	return store, store.Lookup("Backend")
}

func optionValues(opts []huh.Option[string]) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

func optionKeys(opts []huh.Option[string]) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Key
	}
	return out
}

func TestSourceOptions(t *testing.T) {
	store, backend := newTestStore(t)
	_, err := store.CreateProfile("Empty")
	require.NoError(t, err)

	opts := sourceOptions(store)
	require.Equal(t, []string{partition.DefaultProfileID, backend.ID}, optionValues(opts))
	require.Equal(t, []string{"Default (2)", "Backend (2)"}, optionKeys(opts))
}

func TestModuleOptions_MarksMissing(t *testing.T) {
	store, backend := newTestStore(t)

	opts := moduleOptions(store, backend)
	require.Equal(t, []string{"api", "ghost"}, optionValues(opts))
	require.Equal(t, []string{"api", "ghost (missing)"}, optionKeys(opts))

	opts = moduleOptions(store, store.DefaultProfile())
	require.Equal(t, []string{"core", "web"}, optionValues(opts))
}

func TestTargetOptions_ExcludesSource(t *testing.T) {
	store, backend := newTestStore(t)

	opts := targetOptions(store, backend)
	require.Equal(t, []string{partition.DefaultProfileID, newProfileValue}, optionValues(opts))

	opts = targetOptions(store, store.DefaultProfile())
	require.Equal(t, []string{backend.ID, newProfileValue}, optionValues(opts))
}

func TestApply_ExistingTarget(t *testing.T) {
	store, backend := newTestStore(t)
	flow := NewFlow(store)

	result, err := flow.apply(store.DefaultProfile(), []string{"core", "api"}, backend.ID, "")
	require.NoError(t, err)
	require.Equal(t, &Result{
		From:    "Default",
		To:      "Backend",
		Moved:   []string{"core"},
		Skipped: []string{"api"},
	}, result)
	require.Equal(t, backend, store.ProfileFor("core"))
}

func TestApply_NewTarget(t *testing.T) {
	store, backend := newTestStore(t)
	flow := NewFlow(store)

	result, err := flow.apply(backend, []string{"ghost"}, newProfileValue, "Cleanup")
	require.NoError(t, err)
	require.True(t, result.Created)
	require.Equal(t, "Cleanup", result.To)
	require.Equal(t, []string{"ghost"}, result.Moved)

	cleanup := store.Lookup("Cleanup")
	require.NotNil(t, cleanup)
	require.True(t, cleanup.HasMember("ghost"))
	require.False(t, backend.HasMember("ghost"))
}

func TestApply_DuplicateNewTarget(t *testing.T) {
	store, _ := newTestStore(t)
	flow := NewFlow(store)

	_, err := flow.apply(store.DefaultProfile(), []string{"core"}, newProfileValue, "Backend")
	require.ErrorIs(t, err, partition.ErrDuplicateName)
	require.Len(t, store.ExplicitProfiles(), 1)
}

func TestRun_AbortReturnsNil(t *testing.T) {
	store, _ := newTestStore(t)
	flow := NewFlow(store)
	flow.run = func(*huh.Form) error { return huh.ErrUserAborted }

	result, err := flow.Run(nil)
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestRun_NothingToMove(t *testing.T) {
	store := partition.NewStore(nil)
	flow := NewFlow(store)
	flow.run = func(*huh.Form) error { return nil }

	_, err := flow.Run(nil)
	require.ErrorContains(t, err, "no profile has modules to move")
}
