package cli

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
	"github.com/jakoblorz/go-aptprofile/internal/tui/move"
	"github.com/spf13/cobra"
)

// MoveCommand handles the move command
type MoveCommand struct {
	fs filesystem.FileSystem
}

// NewMoveCommand creates a new move command
func NewMoveCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &MoveCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "move [MODULE...]",
		Short: "Move modules between profiles",
		Long: `Moves modules into the profile given by --to.

With --from, only modules that currently reside in that profile move; the
rest are reported as skipped. Without --from, each module is taken from
whichever profile owns it now. Without any modules an interactive flow asks
for the source profile, the modules and the target.`,
		Example: `  # Interactive
  aptprofile move

  # Move two modules into Lombok
  aptprofile move api core --to Lombok

  # Drop a module that no longer exists from a profile
  aptprofile move old-module --from Lombok --to Default`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("from", "", "Source profile")
	cobraCmd.Flags().String("to", "", "Target profile")

	return cobraCmd
}

// Run executes the move command
func (c *MoveCommand) Run(cmd *cobra.Command, args []string) error {
	fromName, _ := cmd.Flags().GetString("from")
	toName, _ := cmd.Flags().GetString("to")

	sess, err := openSession(cmd, c.fs)
	if err != nil {
		return err
	}

	var from *partition.Profile
	if fromName != "" {
		if from, err = sess.lookup(fromName); err != nil {
			return err
		}
	}

	if len(args) == 0 {
		return c.runInteractive(cmd, sess, from)
	}

	if toName == "" {
		return fmt.Errorf("--to is required when modules are given")
	}
	to, err := sess.lookup(toName)
	if err != nil {
		return err
	}

	var result partition.MoveResult
	if from != nil {
		result, err = sess.store.MoveMembers(args, from, to)
	} else {
		result, err = sess.store.Assign(args, to)
	}
	if err != nil {
		return err
	}
	partition.SortModules(result.Moved)
	partition.SortModules(result.Skipped)

	out := cmd.OutOrStdout()
	if len(result.Moved) > 0 {
		if err := sess.save(); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Moved %d module(s) to %s: %s\n", len(result.Moved), to.Name, strings.Join(result.Moved, ", "))
	} else {
		fmt.Fprintln(out, "Nothing moved")
	}
	if len(result.Skipped) > 0 {
		where := "the workspace"
		if from != nil {
			where = from.Name
		}
		fmt.Fprintf(out, "⚠️  Skipped (not in %s): %s\n", where, strings.Join(result.Skipped, ", "))
	}

	return nil
}

func (c *MoveCommand) runInteractive(cmd *cobra.Command, sess *session, from *partition.Profile) error {
	result, err := move.NewFlow(sess.store).Run(from)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	if len(result.Moved) > 0 || result.Created {
		if err := sess.save(); err != nil {
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), move.RenderSuccess(result))
	return nil
}
