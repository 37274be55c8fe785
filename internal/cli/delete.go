package cli

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
	"github.com/jakoblorz/go-aptprofile/internal/tui"
	"github.com/spf13/cobra"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	fs      filesystem.FileSystem
	confirm func(title, description string) (bool, error)
}

// NewDeleteCommand creates a new delete command
func NewDeleteCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &DeleteCommand{fs: fs, confirm: tui.Confirm}

	cobraCmd := &cobra.Command{
		Use:   "delete NAME...",
		Short: "Delete profiles",
		Long: `Deletes explicit profiles. Their modules fall back to the default
profile. The default profile itself cannot be deleted and is skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cobraCmd
}

// Run executes the delete command
func (c *DeleteCommand) Run(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	sess, err := openSession(cmd, c.fs)
	if err != nil {
		return err
	}

	profiles := make([]*partition.Profile, 0, len(args))
	released := 0
	for _, name := range args {
		p, err := sess.lookup(name)
		if err != nil {
			return err
		}
		if p.IsDefault() {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  Skipping %s: the default profile cannot be deleted\n", p.Name)
			continue
		}
		profiles = append(profiles, p)
		released += len(sess.store.ComputedMembers(p))
	}

	if len(profiles) == 0 {
		return nil
	}

	if !yes {
		names := make([]string, len(profiles))
		for i, p := range profiles {
			names[i] = p.Name
		}
		ok, err := c.confirm(
			fmt.Sprintf("Delete %s?", strings.Join(names, ", ")),
			fmt.Sprintf("%d module(s) will move to %s.", released, sess.store.DefaultProfile().Name),
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}

	removed := sess.store.DeleteProfiles(profiles...)
	if err := sess.save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %d profile(s)\n", removed)
	return nil
}
