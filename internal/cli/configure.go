package cli

import (
	"fmt"

	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/spf13/cobra"
)

// ConfigureCommand handles the configure command
type ConfigureCommand struct {
	fs filesystem.FileSystem
}

// NewConfigureCommand creates a new configure command
func NewConfigureCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ConfigureCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "configure NAME",
		Short: "Change a profile's annotation processor settings",
		Long: `Changes the processor settings of a profile. Only the flags that are
given change; everything else keeps its current value. The result is
validated before it is saved.`,
		Example: `  aptprofile configure Lombok --enabled --classpath=false \
    --processor-path libs/lombok.jar --option lombok.addNullAnnotations=jakarta`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	flags := cobraCmd.Flags()
	flags.Bool("enabled", false, "Enable annotation processing")
	flags.Bool("proc-only", false, "Only run processors, do not compile")
	flags.Bool("classpath", true, "Obtain processors from the classpath")
	flags.String("processor-path", "", "Processor path")
	flags.Bool("module-path", false, "Pass the processor path as --processor-module-path")
	flags.StringSlice("processor", nil, "Processor class names, replaces the current list")
	flags.StringToString("option", nil, "Processor options as key=value, replaces the current options")
	flags.String("generated-dir", "", "Generated sources directory")
	flags.StringP("description", "d", "", "Free text description")

	return cobraCmd
}

// Run executes the configure command
func (c *ConfigureCommand) Run(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, c.fs)
	if err != nil {
		return err
	}

	p, err := sess.lookup(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	settings := p.Settings.Clone()
	if flags.Changed("enabled") {
		settings.Enabled, _ = flags.GetBool("enabled")
	}
	if flags.Changed("proc-only") {
		settings.ProcOnly, _ = flags.GetBool("proc-only")
	}
	if flags.Changed("classpath") {
		settings.ObtainFromClasspath, _ = flags.GetBool("classpath")
	}
	if flags.Changed("processor-path") {
		settings.ProcessorPath, _ = flags.GetString("processor-path")
	}
	if flags.Changed("module-path") {
		settings.UseProcessorModulePath, _ = flags.GetBool("module-path")
	}
	if flags.Changed("processor") {
		settings.Processors, _ = flags.GetStringSlice("processor")
	}
	if flags.Changed("option") {
		settings.Options, _ = flags.GetStringToString("option")
	}
	if flags.Changed("generated-dir") {
		settings.GeneratedSourcesDir, _ = flags.GetString("generated-dir")
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := sess.store.UpdateSettings(p, settings); err != nil {
		return err
	}
	if flags.Changed("description") {
		p.Description, _ = flags.GetString("description")
	}

	if err := sess.save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated %s\n", p.Name)
	return nil
}
