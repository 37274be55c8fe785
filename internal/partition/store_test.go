package partition

import (
	"errors"
	"sort"
	"testing"

	"github.com/jakoblorz/go-aptprofile/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, modules ...string) (*Store, *[]*Tree) {
	t.Helper()

	var views []*Tree
	s := NewStore(StaticUniverse(modules), WithViewListener(func(tree *Tree) {
		views = append(views, tree)
	}))
	return s, &views
}

func modulesOf(t *testing.T, tree *Tree, name string) []string {
	t.Helper()

	node := tree.Find(name)
	require.NotNil(t, node, "profile %s not in tree", name)
	return node.Modules
}

// requirePartition checks that every universe module appears in exactly
// one node of the view.
func requirePartition(t *testing.T, s *Store) {
	t.Helper()

	seen := map[string]string{}
	for _, node := range s.View().Nodes {
		for _, m := range node.Modules {
			prev, dup := seen[m]
			require.Falsef(t, dup, "module %s shown in %s and %s", m, prev, node.Name)
			seen[m] = node.Name
		}
	}

	var got []string
	for m := range seen {
		got = append(got, m)
	}
	want := append([]string(nil), s.Universe()...)
	sort.Strings(got)
	sort.Strings(want)
	require.Equal(t, want, got)
}

func TestCreateProfile_Validation(t *testing.T) {
	s, _ := newTestStore(t, "mod1")

	_, err := s.CreateProfile("")
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = s.CreateProfile(DefaultProfileName)
	require.ErrorIs(t, err, ErrDuplicateName)

	p, err := s.CreateProfile("X")
	require.NoError(t, err)
	require.Equal(t, "X", p.Name)
	require.Zero(t, p.MemberCount())

	_, err = s.CreateProfile("X")
	require.ErrorIs(t, err, ErrDuplicateName)

	var nameErr *NameError
	require.True(t, errors.As(err, &nameErr))
	require.Equal(t, "create", nameErr.Op)
	require.Equal(t, "X", nameErr.Name)

	// case-sensitive: only exact duplicates collide
	_, err = s.CreateProfile("x")
	require.NoError(t, err)

	require.Len(t, s.ExplicitProfiles(), 2)
}

func TestCreateProfile_TriggersRebuild(t *testing.T) {
	s, views := newTestStore(t, "mod1", "mod2")

	_, err := s.CreateProfile("Lombok")
	require.NoError(t, err)
	require.Len(t, *views, 1)

	_, err = s.CreateProfile("")
	require.Error(t, err)
	require.Len(t, *views, 1, "failed create must not rebuild")
}

func TestCreateProfile_IDGenerator(t *testing.T) {
	ids := []string{"first", "second"}
	s := NewStore(StaticUniverse{"a"}, WithIDGenerator(func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}))

	p1, err := s.CreateProfile("one")
	require.NoError(t, err)
	require.Equal(t, "first", p1.ID)

	p2, err := s.CreateProfile("two")
	require.NoError(t, err)
	require.Equal(t, "second", p2.ID)

	failing := NewStore(nil, WithIDGenerator(func() (string, error) {
		return "", errors.New("entropy exhausted")
	}))
	_, err = failing.CreateProfile("one")
	require.ErrorContains(t, err, "entropy exhausted")
	require.Empty(t, failing.ExplicitProfiles())
}

func TestCreateProfile_RetriesTakenIDs(t *testing.T) {
	ids := []string{"taken", "taken", "fresh"}
	s := NewStore(StaticUniverse{"a"}, WithIDGenerator(func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}))

	first, err := s.CreateProfile("one")
	require.NoError(t, err)
	require.Equal(t, "taken", first.ID)

	second, err := s.CreateProfile("two")
	require.NoError(t, err)
	require.Equal(t, "fresh", second.ID)
	require.Empty(t, ids)

	stuck := NewStore(nil, WithIDGenerator(func() (string, error) { return "same", nil }))
	_, err = stuck.CreateProfile("one")
	require.NoError(t, err)
	_, err = stuck.CreateProfile("two")
	require.ErrorContains(t, err, "generated profile ID same is already in use")
	require.Len(t, stuck.ExplicitProfiles(), 1)
}

func TestDeleteProfiles_DefaultIsNoOp(t *testing.T) {
	s, views := newTestStore(t, "mod1", "mod2")

	lombok, err := s.CreateProfile("Lombok")
	require.NoError(t, err)
	_, err = s.MoveMembers([]string{"mod1"}, s.DefaultProfile(), lombok)
	require.NoError(t, err)

	before := s.Export()
	rebuilds := len(*views)

	removed := s.DeleteProfiles(s.DefaultProfile())
	require.Zero(t, removed)
	require.Equal(t, before, s.Export())
	require.Len(t, *views, rebuilds, "no-op delete must not rebuild")

	other := NewStore(nil)
	stranger, err := other.CreateProfile("Stranger")
	require.NoError(t, err)
	require.Zero(t, s.DeleteProfiles(stranger, nil))
	require.Equal(t, before, s.Export())
}

func TestDeleteProfiles_MembersReturnToDefault(t *testing.T) {
	s, views := newTestStore(t, "a", "b", "c")

	p1, _ := s.CreateProfile("one")
	p2, _ := s.CreateProfile("two")
	_, err := s.MoveMembers([]string{"a"}, s.DefaultProfile(), p1)
	require.NoError(t, err)
	_, err = s.MoveMembers([]string{"b"}, s.DefaultProfile(), p2)
	require.NoError(t, err)

	rebuilds := len(*views)
	require.Equal(t, 2, s.DeleteProfiles(p1, s.DefaultProfile(), p2, p1))
	require.Len(t, *views, rebuilds+1)

	require.Empty(t, s.ExplicitProfiles())
	require.Equal(t, []string{"a", "b", "c"}, modulesOf(t, s.View(), DefaultProfileName))
	requirePartition(t, s)
}

func TestRenameProfile(t *testing.T) {
	s, _ := newTestStore(t, "a")

	p1, _ := s.CreateProfile("one")
	_, _ = s.CreateProfile("two")

	require.NoError(t, s.RenameProfile(p1, "one"), "same name is a no-op")
	require.ErrorIs(t, s.RenameProfile(p1, ""), ErrInvalidName)
	require.ErrorIs(t, s.RenameProfile(p1, "two"), ErrDuplicateName)
	require.ErrorIs(t, s.RenameProfile(p1, DefaultProfileName), ErrDuplicateName)
	require.Equal(t, "one", p1.Name)

	id := p1.ID
	require.NoError(t, s.RenameProfile(p1, "uno"))
	require.Equal(t, "uno", p1.Name)
	require.Equal(t, id, p1.ID)
	require.Same(t, p1, s.Lookup("uno"))
	require.Nil(t, s.Lookup("one"))

	require.NoError(t, s.RenameProfile(s.DefaultProfile(), "Fallback"))
	require.ErrorIs(t, s.RenameProfile(s.DefaultProfile(), "two"), ErrDuplicateName)
	require.Same(t, s.DefaultProfile(), s.Lookup("Fallback"))

	_, err := s.CreateProfile("Fallback")
	require.ErrorIs(t, err, ErrDuplicateName)

	other := NewStore(nil)
	stranger, _ := other.CreateProfile("stranger")
	require.ErrorIs(t, s.RenameProfile(stranger, "new"), ErrUnknownProfile)
}

func TestReorderProfile(t *testing.T) {
	s, _ := newTestStore(t)

	a, _ := s.CreateProfile("a")
	b, _ := s.CreateProfile("b")
	c, _ := s.CreateProfile("c")

	require.NoError(t, s.ReorderProfile(c, 0))
	require.Equal(t, []*Profile{c, a, b}, s.ExplicitProfiles())

	require.NoError(t, s.ReorderProfile(c, 2))
	require.Equal(t, []*Profile{a, b, c}, s.ExplicitProfiles())

	require.Error(t, s.ReorderProfile(a, 3))
	require.ErrorIs(t, s.ReorderProfile(s.DefaultProfile(), 0), ErrUnknownProfile)

	names := []string{}
	for _, n := range s.View().Nodes {
		names = append(names, n.Name)
	}
	require.Equal(t, []string{DefaultProfileName, "a", "b", "c"}, names)
}

func TestExplicitProfiles_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	_, _ = s.CreateProfile("a")

	list := s.ExplicitProfiles()
	list[0] = nil

	require.NotNil(t, s.ExplicitProfiles()[0])
}

func TestProfileFor(t *testing.T) {
	s, _ := newTestStore(t, "a", "b")
	p, _ := s.CreateProfile("one")
	_, err := s.MoveMembers([]string{"a"}, s.DefaultProfile(), p)
	require.NoError(t, err)

	require.Same(t, p, s.ProfileFor("a"))
	require.Same(t, s.DefaultProfile(), s.ProfileFor("b"))
	require.Same(t, s.DefaultProfile(), s.ProfileFor("unknown"))
}

func TestUpdateSettings(t *testing.T) {
	s, views := newTestStore(t, "a")
	p, _ := s.CreateProfile("one")

	settings := models.ProcessorSettings{Enabled: true, ObtainFromClasspath: true, Processors: []string{"lombok.launch.AnnotationProcessorHider$AnnotationProcessor"}}
	require.NoError(t, s.UpdateSettings(p, settings))

	settings.Processors[0] = "mutated"
	require.Equal(t, "lombok.launch.AnnotationProcessorHider$AnnotationProcessor", p.Settings.Processors[0])

	last := (*views)[len(*views)-1]
	require.True(t, last.Find("one").Enabled)

	other := NewStore(nil)
	stranger, _ := other.CreateProfile("stranger")
	require.ErrorIs(t, s.UpdateSettings(stranger, settings), ErrUnknownProfile)
}

func TestEndToEndScenario(t *testing.T) {
	s, _ := newTestStore(t, "mod1", "mod2", "mod3")

	require.Empty(t, s.ExplicitProfiles())
	require.Equal(t, []string{"mod1", "mod2", "mod3"}, modulesOf(t, s.View(), DefaultProfileName))

	lombok, err := s.CreateProfile("Lombok")
	require.NoError(t, err)
	require.Len(t, s.ExplicitProfiles(), 1)
	require.Empty(t, lombok.Members())
	require.Equal(t, []string{"mod1", "mod2", "mod3"}, modulesOf(t, s.View(), DefaultProfileName))

	_, err = s.MoveMembers([]string{"mod2"}, s.DefaultProfile(), lombok)
	require.NoError(t, err)
	require.Equal(t, []string{"mod1", "mod3"}, modulesOf(t, s.View(), DefaultProfileName))
	require.Equal(t, []string{"mod2"}, modulesOf(t, s.View(), "Lombok"))
	requirePartition(t, s)

	require.Equal(t, 1, s.DeleteProfiles(lombok))
	require.Empty(t, s.ExplicitProfiles())
	require.Equal(t, []string{"mod1", "mod2", "mod3"}, modulesOf(t, s.View(), DefaultProfileName))
}

func TestPartitionTotality_OperationSequence(t *testing.T) {
	universe := []string{"api", "auth", "billing", "core", "web"}
	s, _ := newTestStore(t, universe...)
	def := s.DefaultProfile()

	a, _ := s.CreateProfile("A")
	b, _ := s.CreateProfile("B")
	requirePartition(t, s)

	steps := []func(){
		func() { _, _ = s.MoveMembers([]string{"api", "auth"}, def, a) },
		func() { _, _ = s.MoveMembers([]string{"auth", "core"}, a, b) },
		func() { _, _ = s.MoveMembers([]string{"web", "api"}, def, b) },
		func() { _, _ = s.Assign([]string{"api", "billing"}, a) },
		func() { _, _ = s.MoveMembers([]string{"billing"}, a, def) },
		func() { s.DeleteProfiles(b) },
		func() { _, _ = s.CreateProfile("C") },
		func() { _, _ = s.Assign(universe, s.Lookup("C")) },
		func() { s.DeleteProfiles(a) },
	}

	for _, step := range steps {
		step()
		requirePartition(t, s)
	}
}
