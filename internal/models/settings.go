package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ProcessorSettings is the annotation processing configuration carried by a
// profile. The partition engine stores it without looking inside.
type ProcessorSettings struct {
	// Enabled turns annotation processing on for every module of the profile.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// ProcOnly runs processors without compiling (-proc:only).
	ProcOnly bool `yaml:"procOnly,omitempty" json:"procOnly,omitempty"`

	// ObtainFromClasspath discovers processors on the compile classpath
	// instead of an explicit processor path.
	ObtainFromClasspath bool `yaml:"obtainFromClasspath" json:"obtainFromClasspath"`

	// ProcessorPath is the explicit processor path, required when processing
	// is enabled and processors are not taken from the classpath.
	ProcessorPath string `yaml:"processorPath,omitempty" json:"processorPath,omitempty" validate:"required_if=Enabled true ObtainFromClasspath false"`

	// UseProcessorModulePath passes ProcessorPath as --processor-module-path.
	UseProcessorModulePath bool `yaml:"useProcessorModulePath,omitempty" json:"useProcessorModulePath,omitempty"`

	// Processors lists fully qualified processor class names to run.
	Processors []string `yaml:"processors,omitempty" json:"processors,omitempty" validate:"dive,required,classname"`

	// Options are passed to processors as -Akey=value.
	Options map[string]string `yaml:"options,omitempty" json:"options,omitempty" validate:"dive,keys,required,optionkey,endkeys"`

	// GeneratedSourcesDir is the output directory for generated sources.
	GeneratedSourcesDir string `yaml:"generatedSourcesDir,omitempty" json:"generatedSourcesDir,omitempty"`
}

var settingsValidate *validator.Validate

func init() {
	settingsValidate = validator.New()
	_ = settingsValidate.RegisterValidation("optionkey", validateOptionKey)
	_ = settingsValidate.RegisterValidation("classname", validateClassName)
}

// validateClassName rejects processor names that would split the
// comma separated -processor argument.
func validateClassName(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), ", \t\n")
}

// validateOptionKey rejects processor option keys that would break the
// -Akey=value form.
func validateOptionKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	return !strings.ContainsAny(key, "= \t\n")
}

// DefaultProcessorSettings returns the settings a fresh profile starts with.
func DefaultProcessorSettings() ProcessorSettings {
	return ProcessorSettings{
		ObtainFromClasspath: true,
	}
}

// Validate checks the settings for values the compiler would reject.
func (s ProcessorSettings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid processor settings: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid processor settings: %w", err)
	}
	return nil
}

// Clone returns a deep copy of the settings.
func (s ProcessorSettings) Clone() ProcessorSettings {
	out := s
	if s.Processors != nil {
		out.Processors = append([]string(nil), s.Processors...)
	}
	if s.Options != nil {
		out.Options = make(map[string]string, len(s.Options))
		for k, v := range s.Options {
			out.Options[k] = v
		}
	}
	return out
}

// OptionKeys returns the option keys in sorted order.
func (s ProcessorSettings) OptionKeys() []string {
	keys := make([]string, 0, len(s.Options))
	for k := range s.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
