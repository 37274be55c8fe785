// Package partition maintains annotation processor profiles that partition
// the modules of a workspace. Every known module belongs to exactly one
// profile: an explicit profile that claims it, or the default profile.
package partition

import (
	"fmt"
	"log/slog"

	"github.com/jakoblorz/go-aptprofile/internal/models"
)

// UniverseProvider returns the modules currently known to the workspace.
type UniverseProvider interface {
	Modules() []string
}

// StaticUniverse is a fixed module list.
type StaticUniverse []string

// Modules returns the list as-is.
func (u StaticUniverse) Modules() []string {
	return u
}

// Store owns the default profile and the ordered explicit profiles of one
// configuration session. It is not safe for concurrent use.
type Store struct {
	universe UniverseProvider
	def      *Profile
	profiles []*Profile

	onView func(*Tree)
	nextID func() (string, error)
	logger *slog.Logger
	seq    int
}

// Option configures a Store.
type Option func(*Store)

// WithViewListener registers fn to receive a freshly projected tree after
// every mutation that changed the partition.
func WithViewListener(fn func(*Tree)) Option {
	return func(s *Store) {
		s.onView = fn
	}
}

// WithIDGenerator sets the generator used for new profile IDs.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Store) {
		s.nextID = fn
	}
}

// WithLogger sets the logger for store diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty store backed by the given module universe.
func NewStore(universe UniverseProvider, options ...Option) *Store {
	if universe == nil {
		universe = StaticUniverse(nil)
	}

	s := &Store{
		universe: universe,
		def:      newDefaultProfile(),
		logger:   slog.Default(),
	}

	for _, option := range options {
		option(s)
	}

	if s.nextID == nil {
		s.nextID = s.sequentialID
	}

	return s
}

func (s *Store) sequentialID() (string, error) {
	for {
		s.seq++
		id := fmt.Sprintf("profile-%d", s.seq)
		if s.byID(id) == nil {
			return id, nil
		}
	}
}

// DefaultProfile returns the default profile. The pointer stays the same
// for the lifetime of the store.
func (s *Store) DefaultProfile() *Profile {
	return s.def
}

// ExplicitProfiles returns the explicit profiles in display order. The
// returned slice is a copy.
func (s *Store) ExplicitProfiles() []*Profile {
	out := make([]*Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// Universe returns the modules currently reported by the universe provider.
func (s *Store) Universe() []string {
	return s.universe.Modules()
}

// Lookup returns the profile with the given name, or nil.
func (s *Store) Lookup(name string) *Profile {
	if s.def.Name == name {
		return s.def
	}
	for _, p := range s.profiles {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ProfileFor returns the profile that owns module: the explicit profile
// that stores it, or the default profile.
func (s *Store) ProfileFor(module string) *Profile {
	for _, p := range s.profiles {
		if p.HasMember(module) {
			return p
		}
	}
	return s.def
}

func (s *Store) byID(id string) *Profile {
	if s.def.ID == id {
		return s.def
	}
	for _, p := range s.profiles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Store) owns(p *Profile) bool {
	return p != nil && (p == s.def || s.indexOf(p) >= 0)
}

func (s *Store) indexOf(p *Profile) int {
	for i, candidate := range s.profiles {
		if candidate == p {
			return i
		}
	}
	return -1
}

// maxIDAttempts bounds retries when the generator returns IDs already
// held by profiles of this store, e.g. ones not saved to disk yet.
const maxIDAttempts = 16

func (s *Store) newID() (string, error) {
	var id string
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		var err error
		id, err = s.nextID()
		if err != nil {
			return "", fmt.Errorf("failed to generate profile ID: %w", err)
		}
		if s.byID(id) == nil {
			return id, nil
		}
		s.logger.Debug("generated profile ID already in use", "id", id)
	}
	return "", fmt.Errorf("generated profile ID %s is already in use", id)
}

// CreateProfile appends a new, empty explicit profile. Unassigned modules
// stay with the default profile until they are moved.
func (s *Store) CreateProfile(name string) (*Profile, error) {
	if err := s.ValidateName(name, nil); err != nil {
		return nil, &NameError{Op: "create", Name: name, Err: err}
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	p := newProfile(id, name)
	s.profiles = append(s.profiles, p)
	s.logger.Debug("created profile", "profile", name, "id", id)

	s.rebuild()
	return p, nil
}

// DeleteProfiles removes the given explicit profiles and returns how many
// were removed. The default profile and profiles not owned by the store
// are skipped. Members of removed profiles fall back to the default.
func (s *Store) DeleteProfiles(profiles ...*Profile) int {
	remove := make(map[*Profile]struct{}, len(profiles))
	for _, p := range profiles {
		if p == nil || p == s.def {
			continue
		}
		remove[p] = struct{}{}
	}

	kept := s.profiles[:0:0]
	removed := 0
	for _, p := range s.profiles {
		if _, ok := remove[p]; ok {
			removed++
			s.logger.Debug("deleted profile", "profile", p.Name, "released", p.MemberCount())
			continue
		}
		kept = append(kept, p)
	}

	if removed == 0 {
		return 0
	}

	s.profiles = kept
	s.rebuild()
	return removed
}

// RenameProfile changes the name of p. Renaming to the current name is a
// no-op.
func (s *Store) RenameProfile(p *Profile, name string) error {
	if !s.owns(p) {
		return &NameError{Op: "rename", Name: name, Err: ErrUnknownProfile}
	}
	if p.Name == name {
		return nil
	}
	if err := s.ValidateName(name, p); err != nil {
		return &NameError{Op: "rename", Name: name, Err: err}
	}

	s.logger.Debug("renamed profile", "from", p.Name, "to", name)
	p.Name = name
	s.rebuild()
	return nil
}

// ReorderProfile moves the explicit profile p to index in the display order.
func (s *Store) ReorderProfile(p *Profile, index int) error {
	from := s.indexOf(p)
	if from < 0 {
		return fmt.Errorf("failed to reorder: %w", ErrUnknownProfile)
	}
	if index < 0 || index >= len(s.profiles) {
		return fmt.Errorf("failed to reorder %s: index %d out of range [0,%d)", p.Name, index, len(s.profiles))
	}
	if from == index {
		return nil
	}

	s.profiles = append(s.profiles[:from], s.profiles[from+1:]...)
	s.profiles = append(s.profiles[:index], append([]*Profile{p}, s.profiles[index:]...)...)
	s.rebuild()
	return nil
}

// UpdateSettings replaces the settings of p.
func (s *Store) UpdateSettings(p *Profile, settings models.ProcessorSettings) error {
	if !s.owns(p) {
		return fmt.Errorf("failed to update settings: %w", ErrUnknownProfile)
	}

	p.Settings = settings.Clone()
	s.rebuild()
	return nil
}

// View projects the current partition against the current universe.
func (s *Store) View() *Tree {
	return Project(s, s.universe.Modules())
}

func (s *Store) rebuild() {
	if s.onView == nil {
		return
	}
	s.onView(s.View())
}
