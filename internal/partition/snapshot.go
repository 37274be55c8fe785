package partition

import (
	"fmt"

	"github.com/jakoblorz/go-aptprofile/internal/models"
)

// Snapshot is the persisted form of a store. Only Name and Modules matter
// to the partition; the rest is carried through unchanged.
type Snapshot struct {
	Default  State
	Profiles []State
}

// State describes a single profile in a Snapshot.
type State struct {
	ID          string
	Name        string
	Description string
	Modules     []string
	Settings    models.ProcessorSettings
}

// InitFrom replaces the contents of the store with fresh profiles built
// from snap. Explicit names are validated like CreateProfile; a module
// claimed by more than one explicit profile stays with the first. On error
// the store is left unchanged.
func (s *Store) InitFrom(snap Snapshot) error {
	def := newDefaultProfile()
	if snap.Default.Name != "" {
		def.Name = snap.Default.Name
	}
	def.Description = snap.Default.Description
	def.Settings = snap.Default.Settings.Clone()
	if len(snap.Default.Modules) > 0 {
		s.logger.Debug("ignoring stored default profile members", "count", len(snap.Default.Modules))
	}

	staged := &Store{def: def, logger: s.logger}
	ids := map[string]struct{}{DefaultProfileID: {}}
	owners := make(map[string]string)

	for _, st := range snap.Profiles {
		if err := staged.ValidateName(st.Name, nil); err != nil {
			return &NameError{Op: "init", Name: st.Name, Err: err}
		}

		id := st.ID
		for {
			if _, taken := ids[id]; id != "" && !taken {
				break
			}
			generated, err := s.nextID()
			if err != nil {
				return fmt.Errorf("failed to generate profile ID for %s: %w", st.Name, err)
			}
			id = generated
		}
		ids[id] = struct{}{}

		p := newProfile(id, st.Name)
		p.Description = st.Description
		p.Settings = st.Settings.Clone()
		for _, m := range st.Modules {
			if owner, claimed := owners[m]; claimed {
				s.logger.Warn("module claimed by more than one profile", "module", m, "kept", owner, "dropped", st.Name)
				continue
			}
			owners[m] = st.Name
			p.members[m] = struct{}{}
		}

		staged.profiles = append(staged.profiles, p)
	}

	s.def.Name = def.Name
	s.def.Description = def.Description
	s.def.Settings = def.Settings
	s.profiles = staged.profiles
	s.rebuild()
	return nil
}

// Export returns a deep copy of the store contents in display order.
func (s *Store) Export() Snapshot {
	snap := Snapshot{
		Default:  exportState(s.def),
		Profiles: make([]State, 0, len(s.profiles)),
	}
	for _, p := range s.profiles {
		snap.Profiles = append(snap.Profiles, exportState(p))
	}
	return snap
}

func exportState(p *Profile) State {
	st := State{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Settings:    p.Settings.Clone(),
	}
	if !p.isDefault {
		st.Modules = p.Members()
	}
	return st
}
