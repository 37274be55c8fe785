// Package profilestore persists processor profiles as markdown files with
// YAML frontmatter, one file per profile.
package profilestore

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"
	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/jakoblorz/go-aptprofile/internal/models"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
)

const (
	// DefaultDir is the profile directory relative to the workspace root.
	DefaultDir = ".aptprofiles"

	defaultFile = partition.DefaultProfileID + ".md"
)

// profileFile is the frontmatter of a profile file. The description is
// the markdown body.
type profileFile struct {
	Name    string   `yaml:"name"`
	Default bool     `yaml:"default,omitempty"`
	Order   int      `yaml:"order,omitempty"`
	Modules []string `yaml:"modules,omitempty"`

	models.ProcessorSettings `yaml:",inline"`
}

// Manager reads and writes the profile directory.
type Manager struct {
	fs     filesystem.FileSystem
	dir    string
	logger *slog.Logger
}

// NewManager creates a manager for the profile directory dir.
func NewManager(fs filesystem.FileSystem, dir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		fs:     fs,
		dir:    dir,
		logger: logger,
	}
}

// Dir returns the profile directory.
func (m *Manager) Dir() string {
	return m.dir
}

// GenerateID generates a unique, human-friendly profile ID that does not
// collide with an existing file.
func (m *Manager) GenerateID() (string, error) {
	for {
		id, err := generateHumanFriendlyID()
		if err != nil {
			return "", fmt.Errorf("failed to generate ID: %w", err)
		}
		if !m.fs.Exists(m.path(id)) {
			return id, nil
		}
	}
}

func (m *Manager) path(id string) string {
	return filepath.Join(m.dir, id+".md")
}

// Load reads every profile file. A missing directory yields an empty
// snapshot. Explicit profiles are returned by their order field, then ID.
func (m *Manager) Load() (partition.Snapshot, error) {
	var snap partition.Snapshot
	if !m.fs.Exists(m.dir) {
		return snap, nil
	}

	entries, err := m.fs.ReadDir(m.dir)
	if err != nil {
		return snap, fmt.Errorf("failed to read profile directory: %w", err)
	}

	type ordered struct {
		order int
		state partition.State
	}
	var explicit []ordered
	seenDefault := false

	for _, entry := range entries {
		if entry.IsDir() || !isProfileFile(entry.Name()) {
			continue
		}

		filePath := filepath.Join(m.dir, entry.Name())
		data, err := m.fs.ReadFile(filePath)
		if err != nil {
			return snap, fmt.Errorf("failed to read profile %s: %w", entry.Name(), err)
		}

		record, state, err := parse(filePath, data)
		if err != nil {
			return snap, err
		}

		if record.Default || state.ID == partition.DefaultProfileID {
			if seenDefault {
				return snap, fmt.Errorf("profile %s: more than one default profile", entry.Name())
			}
			seenDefault = true
			state.ID = partition.DefaultProfileID
			snap.Default = state
			continue
		}

		explicit = append(explicit, ordered{order: record.Order, state: state})
	}

	sort.SliceStable(explicit, func(i, j int) bool {
		if explicit[i].order != explicit[j].order {
			return explicit[i].order < explicit[j].order
		}
		return explicit[i].state.ID < explicit[j].state.ID
	})
	for _, e := range explicit {
		snap.Profiles = append(snap.Profiles, e.state)
	}

	m.logger.Debug("loaded profiles", "dir", m.dir, "count", len(snap.Profiles))
	return snap, nil
}

// parse decodes a profile file. The ID is the file name without extension.
func parse(filePath string, data []byte) (profileFile, partition.State, error) {
	var record profileFile
	rest, err := frontmatter.Parse(bytes.NewReader(data), &record)
	if err != nil {
		return record, partition.State{}, fmt.Errorf("failed to parse frontmatter of %s: %w", filepath.Base(filePath), err)
	}

	if err := record.ProcessorSettings.Validate(); err != nil {
		return record, partition.State{}, fmt.Errorf("profile %s: %w", filepath.Base(filePath), err)
	}

	state := partition.State{
		ID:          strings.TrimSuffix(filepath.Base(filePath), ".md"),
		Name:        record.Name,
		Description: strings.TrimSpace(string(rest)),
		Modules:     record.Modules,
		Settings:    record.ProcessorSettings,
	}
	return record, state, nil
}

// Save writes every profile of snap and removes files of profiles that no
// longer exist. Files are replaced through a temporary file and rename.
func (m *Manager) Save(snap partition.Snapshot) error {
	if err := m.fs.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	keep := map[string]struct{}{defaultFile: {}}
	def := snap.Default
	def.ID = partition.DefaultProfileID
	def.Modules = nil
	if err := m.write(def, profileFile{Default: true}); err != nil {
		return err
	}

	for i, st := range snap.Profiles {
		if st.ID == "" || st.ID == partition.DefaultProfileID || strings.ContainsAny(st.ID, `/\`) {
			return fmt.Errorf("profile %s has invalid ID %q", st.Name, st.ID)
		}
		if err := m.write(st, profileFile{Order: i + 1}); err != nil {
			return err
		}
		keep[st.ID+".md"] = struct{}{}
	}

	entries, err := m.fs.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("failed to read profile directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isProfileFile(entry.Name()) {
			continue
		}
		if _, ok := keep[entry.Name()]; ok {
			continue
		}
		if err := m.fs.Remove(filepath.Join(m.dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove profile %s: %w", entry.Name(), err)
		}
		m.logger.Debug("removed profile file", "file", entry.Name())
	}

	return nil
}

func (m *Manager) write(st partition.State, record profileFile) error {
	record.Name = st.Name
	record.Modules = st.Modules
	record.ProcessorSettings = st.Settings

	data, err := render(record, st.Description)
	if err != nil {
		return fmt.Errorf("failed to render profile %s: %w", st.Name, err)
	}

	target := m.path(st.ID)
	tmp := filepath.Join(m.dir, "."+st.ID+".md.tmp")
	if err := m.fs.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", st.Name, err)
	}
	if err := m.fs.Rename(tmp, target); err != nil {
		_ = m.fs.Remove(tmp)
		return fmt.Errorf("failed to write profile %s: %w", st.Name, err)
	}
	return nil
}

// render formats a profile file: YAML frontmatter followed by the
// description.
func render(record profileFile, description string) ([]byte, error) {
	matter, err := yaml.MarshalWithOptions(record, yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(matter)
	buf.WriteString("---\n")
	if description = strings.TrimSpace(description); description != "" {
		buf.WriteString("\n")
		buf.WriteString(description)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

func isProfileFile(name string) bool {
	return strings.HasSuffix(name, ".md") && !strings.HasPrefix(name, ".")
}
