package cli

import (
	"fmt"

	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/spf13/cobra"
)

// RenameCommand handles the rename command
type RenameCommand struct {
	fs filesystem.FileSystem
}

// NewRenameCommand creates a new rename command
func NewRenameCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &RenameCommand{fs: fs}

	return &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a profile",
		Long: `Renames a profile. The default profile can be renamed too. The profile
keeps its ID, so the file on disk does not change name.`,
		Args: cobra.ExactArgs(2),
		RunE: cmd.Run,
	}
}

// Run executes the rename command
func (c *RenameCommand) Run(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, c.fs)
	if err != nil {
		return err
	}

	p, err := sess.lookup(args[0])
	if err != nil {
		return err
	}
	if err := sess.store.RenameProfile(p, args[1]); err != nil {
		return err
	}

	if err := sess.save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Renamed %s to %s\n", args[0], p.Name)
	return nil
}
