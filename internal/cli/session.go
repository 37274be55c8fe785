package cli

import (
	"fmt"
	"log/slog"

	"github.com/jakoblorz/go-aptprofile/internal/config"
	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
	"github.com/jakoblorz/go-aptprofile/internal/profilestore"
	"github.com/jakoblorz/go-aptprofile/internal/workspace"
	"github.com/spf13/cobra"
)

// session is one configuration session: the detected workspace, the
// profiles loaded from disk and the store that edits them.
type session struct {
	cfg     *config.Config
	ws      *workspace.Workspace
	manager *profilestore.Manager
	store   *partition.Store
}

func openSession(cmd *cobra.Command, fs filesystem.FileSystem) (*session, error) {
	logger := slog.Default()

	env, err := workspace.NewFileEnvReader(fs).Read()
	if err != nil {
		return nil, err
	}
	root := env.Root()
	if root == "" {
		return nil, fmt.Errorf("failed to detect workspace: %w", workspace.ErrNotFound)
	}

	cfg, err := config.Load(fs, root, stringFlag(cmd, configFlag))
	if err != nil {
		return nil, err
	}
	if boolFlag(cmd, noColorFlag) {
		cfg.NoColor = true
	}

	options := []workspace.Option{
		workspace.WithNestedModules(cfg.Nested),
		workspace.WithLogger(logger),
	}
	if cfg.GoEnv {
		options = append(options, workspace.WithGoEnvReader(workspace.NewGoCommandEnvReader(fs)))
	}

	ws := workspace.New(fs, options...)
	if err := ws.Detect(); err != nil {
		return nil, fmt.Errorf("failed to detect workspace: %w", err)
	}

	manager := profilestore.NewManager(fs, ws.ProfilesDir(cfg.ProfilesDir), logger)
	snap, err := manager.Load()
	if err != nil {
		return nil, err
	}

	store := partition.NewStore(ws.Universe(),
		partition.WithIDGenerator(manager.GenerateID),
		partition.WithLogger(logger),
	)
	if err := store.InitFrom(snap); err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", manager.Dir(), err)
	}

	return &session{
		cfg:     cfg,
		ws:      ws,
		manager: manager,
		store:   store,
	}, nil
}

// lookup resolves a profile by name.
func (s *session) lookup(name string) (*partition.Profile, error) {
	p := s.store.Lookup(name)
	if p == nil {
		return nil, fmt.Errorf("profile %s not found", name)
	}
	return p, nil
}

func (s *session) save() error {
	if err := s.manager.Save(s.store.Export()); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}
	return nil
}

func stringFlag(cmd *cobra.Command, name string) string {
	if cmd == nil {
		return ""
	}
	flag := cmd.Flag(name)
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

func boolFlag(cmd *cobra.Command, name string) bool {
	return stringFlag(cmd, name) == "true"
}
