package cli

import (
	"fmt"
	"log/slog"

	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/spf13/cobra"
)

const (
	configFlag  = "config"
	verboseFlag = "verbose"
	noColorFlag = "no-color"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aptprofile",
		Short: "Manage annotation processor profiles for Go workspaces",
		Long: `A CLI tool for partitioning the modules of a workspace into annotation
processor profiles.

Every module belongs to exactly one profile: an explicit profile that claims
it, or the default profile. Profiles are stored in .aptprofiles as markdown
files with YAML frontmatter.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if boolFlag(cmd, verboseFlag) {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `aptprofile tree` when no subcommand is provided.
			return (&TreeCommand{fs: fs}).Run(cmd, args)
		},
	}

	rootCmd.PersistentFlags().String(configFlag, "", "Config file (default .aptprofiles.yaml in the workspace root)")
	rootCmd.PersistentFlags().BoolP(verboseFlag, "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool(noColorFlag, false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(NewTreeCommand(fs))
	rootCmd.AddCommand(NewCreateCommand(fs))
	rootCmd.AddCommand(NewDeleteCommand(fs))
	rootCmd.AddCommand(NewRenameCommand(fs))
	rootCmd.AddCommand(NewMoveCommand(fs))
	rootCmd.AddCommand(NewReorderCommand(fs))
	rootCmd.AddCommand(NewShowCommand(fs))
	rootCmd.AddCommand(NewConfigureCommand(fs))
	rootCmd.AddCommand(NewOptionsCommand(fs))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(fs)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
