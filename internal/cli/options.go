package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jakoblorz/go-aptprofile/internal/compiler"
	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/jakoblorz/go-aptprofile/internal/models"
	"github.com/spf13/cobra"
)

// OptionsCommand handles the options command
type OptionsCommand struct {
	fs filesystem.FileSystem
}

// ModuleOptions is the JSON output of the options command.
type ModuleOptions struct {
	Module  string   `json:"module"`
	Profile string   `json:"profile"`
	Args    []string `json:"args"`
}

// NewOptionsCommand creates a new options command
func NewOptionsCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &OptionsCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "options [MODULE...]",
		Short: "Print compiler annotation processing flags per module",
		Long: `Prints the javac annotation processing flags for each module, taken from
the profile that owns it. Without arguments every module is listed.`,
		Example: `  aptprofile options api --release 23
  aptprofile options --format json`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().Int("release", 0, "Target compiler release (default from config)")
	cobraCmd.Flags().String("format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the options command
func (c *OptionsCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	sess, err := openSession(cmd, c.fs)
	if err != nil {
		return err
	}

	release := sess.cfg.Release
	if cmd.Flags().Changed("release") {
		release, _ = cmd.Flags().GetInt("release")
	}

	modules := sess.ws.Modules
	if len(args) > 0 {
		modules = make([]*models.Module, 0, len(args))
		for _, name := range args {
			m, err := sess.ws.GetModule(name)
			if err != nil {
				return err
			}
			modules = append(modules, m)
		}
	}

	out := make([]ModuleOptions, 0, len(modules))
	for _, m := range modules {
		profile, flags := compiler.ForModule(sess.store, m, release)
		out = append(out, ModuleOptions{Module: m.Name, Profile: profile.Name, Args: flags})
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal options: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "text":
		for _, o := range out {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", o.Module, o.Profile, strings.Join(o.Args, " "))
		}
	default:
		return fmt.Errorf("unknown format %q: expected text or json", format)
	}

	return nil
}
