package cli

import (
	"fmt"
	"strconv"

	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/spf13/cobra"
)

// ReorderCommand handles the reorder command
type ReorderCommand struct {
	fs filesystem.FileSystem
}

// NewReorderCommand creates a new reorder command
func NewReorderCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ReorderCommand{fs: fs}

	return &cobra.Command{
		Use:     "reorder NAME POSITION",
		Short:   "Move a profile to a position in the profile order",
		Long:    `Moves an explicit profile to POSITION (1-based) among the explicit profiles.`,
		Example: `  aptprofile reorder Lombok 1`,
		Args:    cobra.ExactArgs(2),
		RunE:    cmd.Run,
	}
}

// Run executes the reorder command
func (c *ReorderCommand) Run(cmd *cobra.Command, args []string) error {
	position, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid position %q: %w", args[1], err)
	}

	sess, err := openSession(cmd, c.fs)
	if err != nil {
		return err
	}

	p, err := sess.lookup(args[0])
	if err != nil {
		return err
	}
	if p.IsDefault() {
		return fmt.Errorf("the default profile is always listed first")
	}
	if err := sess.store.ReorderProfile(p, position-1); err != nil {
		return err
	}

	if err := sess.save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Moved %s to position %d\n", p.Name, position)
	return nil
}
