package partition

import (
	"sort"

	"github.com/jakoblorz/go-aptprofile/internal/models"
)

const (
	// DefaultProfileID is the fixed identity of the default profile.
	DefaultProfileID = "default"

	// DefaultProfileName is the display name the default profile starts with.
	DefaultProfileName = "Default"
)

// Profile is a named bucket of modules plus the processor settings that
// apply to them.
//
// Explicit profiles store their members. The default profile never does:
// its members are whatever the explicit profiles leave unclaimed.
type Profile struct {
	// ID is stable for the lifetime of the profile, across renames.
	ID string

	// Name is the user visible, unique profile name.
	Name string

	// Description is free text kept alongside the profile.
	Description string

	// Settings is carried for the caller and never interpreted here.
	Settings models.ProcessorSettings

	members   map[string]struct{}
	isDefault bool
}

func newProfile(id, name string) *Profile {
	return &Profile{
		ID:       id,
		Name:     name,
		Settings: models.DefaultProcessorSettings(),
		members:  make(map[string]struct{}),
	}
}

func newDefaultProfile() *Profile {
	p := newProfile(DefaultProfileID, DefaultProfileName)
	p.isDefault = true
	p.members = nil
	return p
}

// IsDefault reports whether p is the default profile.
func (p *Profile) IsDefault() bool {
	return p.isDefault
}

// Members returns the stored members sorted by name. The default profile
// has no stored members; use Store.ComputedMembers for its view.
func (p *Profile) Members() []string {
	out := make([]string, 0, len(p.members))
	for m := range p.members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// HasMember reports whether module is stored as a member of p.
func (p *Profile) HasMember(module string) bool {
	_, ok := p.members[module]
	return ok
}

// MemberCount returns the number of stored members.
func (p *Profile) MemberCount() int {
	return len(p.members)
}
