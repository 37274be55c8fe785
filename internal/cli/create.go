package cli

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
	"github.com/spf13/cobra"
)

// CreateCommand handles the create command
type CreateCommand struct {
	fs filesystem.FileSystem
}

// NewCreateCommand creates a new create command
func NewCreateCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &CreateCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new profile",
		Long: `Creates an empty explicit profile at the end of the profile order.

Modules passed with --module are moved into the new profile from whichever
profile owns them now.`,
		Example: `  aptprofile create Lombok --module api --module core`,
		Args:    cobra.ExactArgs(1),
		RunE:    cmd.Run,
	}

	cobraCmd.Flags().StringSliceP("module", "m", nil, "Module to move into the new profile (repeatable)")
	cobraCmd.Flags().StringP("description", "d", "", "Free text description")

	return cobraCmd
}

// Run executes the create command
func (c *CreateCommand) Run(cmd *cobra.Command, args []string) error {
	modules, _ := cmd.Flags().GetStringSlice("module")
	description, _ := cmd.Flags().GetString("description")

	sess, err := openSession(cmd, c.fs)
	if err != nil {
		return err
	}

	profile, err := sess.store.CreateProfile(args[0])
	if err != nil {
		return err
	}
	profile.Description = description

	result, err := sess.store.Assign(modules, profile)
	if err != nil {
		return err
	}
	partition.SortModules(result.Moved)
	partition.SortModules(result.Skipped)

	if err := sess.save(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created profile %s (%s)\n", profile.Name, profile.ID)
	if len(result.Moved) > 0 {
		fmt.Fprintf(out, "✓ Moved %d module(s): %s\n", len(result.Moved), strings.Join(result.Moved, ", "))
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "⚠️  Skipped unknown module(s): %s\n", strings.Join(result.Skipped, ", "))
	}

	return nil
}
