package cli

import (
	"fmt"

	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/jakoblorz/go-aptprofile/internal/render"
	"github.com/spf13/cobra"
)

// TreeCommand handles the tree command
type TreeCommand struct {
	fs filesystem.FileSystem
}

// NewTreeCommand creates a new tree command
func NewTreeCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &TreeCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "tree",
		Short: "Show profiles and the modules they contain",
		Long: `Shows the default profile followed by the explicit profiles in order,
each with the modules it currently contains.

Modules that a profile still lists but which are no longer part of the
workspace are hidden. The template format renders the tree with a Go
template that has the sprig functions available; without --template the
tree.tmpl file in the profile directory is used.`,
		Example: `  # Show the tree
  aptprofile tree

  # Output JSON for scripting
  aptprofile tree --format json

  # Render with a custom template
  aptprofile tree --format template --template profiles.tmpl`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("format", "", "Output format: text, json or template (default from config)")
	cobraCmd.Flags().String("template", "", "Template file for the template format")
	cobraCmd.Flags().String("highlight", "", "Module to mark in text output")

	return cobraCmd
}

// Run executes the tree command
func (c *TreeCommand) Run(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, c.fs)
	if err != nil {
		return err
	}

	format := sess.cfg.Format
	if f := stringFlag(cmd, "format"); f != "" {
		format = f
	}
	templatePath := stringFlag(cmd, "template")
	if templatePath != "" {
		format = "template"
	}

	tree := sess.store.View()
	out := cmd.OutOrStdout()

	switch format {
	case "text":
		return render.Text(out, tree, render.TextOptions{
			Plain:     sess.cfg.NoColor,
			Highlight: stringFlag(cmd, "highlight"),
		})
	case "json":
		return render.JSON(out, tree)
	case "template":
		if templatePath == "" {
			path, ok := render.FindTemplate(c.fs, sess.manager.Dir())
			if !ok {
				return fmt.Errorf("no template given and %s not found", path)
			}
			templatePath = path
		}
		tmpl, err := render.LoadTemplate(c.fs, templatePath)
		if err != nil {
			return err
		}
		return render.Template(out, tmpl, tree)
	default:
		return fmt.Errorf("unknown format %q: expected text, json or template", format)
	}
}
