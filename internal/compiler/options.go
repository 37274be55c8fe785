// Package compiler renders javac annotation processing flags for the
// profile that owns a module.
package compiler

import (
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-aptprofile/internal/models"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
)

// javac flags emitted by AnnotationProcessingOptions.
const (
	// ProcNone disables annotation processing.
	ProcNone = "-proc:none"
	// ProcOnly runs processors without compiling.
	ProcOnly = "-proc:only"
	// ProcFull runs discovered processors on releases that default to none.
	ProcFull = "-proc:full"
	// ProcessorPath is followed by a path-separator joined classpath.
	ProcessorPath = "-processorpath"
	// ProcessorModulePath is followed by a module path for processors.
	ProcessorModulePath = "--processor-module-path"
	// Processor is followed by a comma separated list of class names.
	Processor = "-processor"
	// GeneratedSources is followed by the generated sources directory.
	GeneratedSources = "-s"

	// ProcFullRelease is the first javac release that no longer runs
	// discovered processors unless -proc:full is given.
	ProcFullRelease = 23
)

// AnnotationProcessingOptions returns the javac flags for settings when
// compiling with the given javac release. A release of 0 means unknown.
func AnnotationProcessingOptions(settings models.ProcessorSettings, release int) []string {
	if !settings.Enabled {
		return []string{ProcNone}
	}

	var args []string
	if !settings.ObtainFromClasspath {
		flag := ProcessorPath
		if settings.UseProcessorModulePath {
			flag = ProcessorModulePath
		}
		args = append(args, flag, filepath.FromSlash(strings.TrimSpace(settings.ProcessorPath)))
	}

	if len(settings.Processors) > 0 {
		args = append(args, Processor, strings.Join(settings.Processors, ","))
	}

	for _, key := range settings.OptionKeys() {
		args = append(args, "-A"+key+"="+settings.Options[key])
	}

	switch {
	case settings.ProcOnly:
		args = append(args, ProcOnly)
	case release >= ProcFullRelease:
		args = append(args, ProcFull)
	}

	if settings.GeneratedSourcesDir != "" {
		args = append(args, GeneratedSources, filepath.FromSlash(settings.GeneratedSourcesDir))
	}

	return args
}

// ForModule resolves the profile owning module and its flags. A relative
// generated sources directory is resolved against the module root.
func ForModule(store *partition.Store, module *models.Module, release int) (*partition.Profile, []string) {
	profile := store.ProfileFor(module.Name)

	settings := profile.Settings.Clone()
	if dir := settings.GeneratedSourcesDir; dir != "" && !filepath.IsAbs(dir) && module.RootPath != "" {
		settings.GeneratedSourcesDir = filepath.Join(module.RootPath, dir)
	}

	return profile, AnnotationProcessingOptions(settings, release)
}
