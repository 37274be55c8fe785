package cli

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/jakoblorz/go-aptprofile/internal/tui"
	"github.com/spf13/cobra"
)

// ShowCommand handles the show command
type ShowCommand struct {
	fs filesystem.FileSystem
}

// NewShowCommand creates a new show command
func NewShowCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ShowCommand{fs: fs}

	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a profile's settings and modules",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}
}

// Run executes the show command
func (c *ShowCommand) Run(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, c.fs)
	if err != nil {
		return err
	}

	p, err := sess.lookup(args[0])
	if err != nil {
		return err
	}

	settings, err := yaml.MarshalWithOptions(p.Settings, yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to format settings: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", p.Name, p.ID)
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", strings.TrimSpace(p.Description))
	}

	b.WriteString("\nSettings:\n")
	for _, line := range strings.Split(strings.TrimRight(string(settings), "\n"), "\n") {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	modules := sess.store.ComputedMembers(p)
	fmt.Fprintf(&b, "\nModules (%d):\n", len(modules))
	for _, m := range modules {
		fmt.Fprintf(&b, "  - %s\n", m)
	}

	if !p.IsDefault() {
		if stale := sess.store.StaleMembers(p); len(stale) > 0 {
			line := fmt.Sprintf("Missing from workspace: %s", strings.Join(stale, ", "))
			if !sess.cfg.NoColor {
				line = tui.WarningStyle.Render(line)
			}
			fmt.Fprintf(&b, "\n%s\n", line)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), b.String())
	return nil
}
