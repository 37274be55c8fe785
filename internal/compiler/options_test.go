package compiler

import (
	"testing"

	"github.com/jakoblorz/go-aptprofile/internal/models"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
	"github.com/stretchr/testify/require"
)

func TestAnnotationProcessingOptions(t *testing.T) {
	tests := []struct {
		name     string
		settings models.ProcessorSettings
		release  int
		want     []string
	}{
		{
			name:     "disabled",
			settings: models.ProcessorSettings{ObtainFromClasspath: true},
			want:     []string{"-proc:none"},
		},
		{
			name:     "classpath discovery on old javac",
			settings: models.ProcessorSettings{Enabled: true, ObtainFromClasspath: true},
			release:  17,
			want:     nil,
		},
		{
			name:     "classpath discovery on javac 23",
			settings: models.ProcessorSettings{Enabled: true, ObtainFromClasspath: true},
			release:  23,
			want:     []string{"-proc:full"},
		},
		{
			name: "explicit processor path",
			settings: models.ProcessorSettings{
				Enabled:       true,
				ProcessorPath: "  libs/lombok.jar ",
				Processors:    []string{"a.First", "b.Second"},
				Options:       map[string]string{"z": "1", "a": "2"},
			},
			release: 21,
			want:    []string{"-processorpath", "libs/lombok.jar", "-processor", "a.First,b.Second", "-Aa=2", "-Az=1"},
		},
		{
			name: "processor module path",
			settings: models.ProcessorSettings{
				Enabled:                true,
				ProcessorPath:          "mods",
				UseProcessorModulePath: true,
			},
			want: []string{"--processor-module-path", "mods"},
		},
		{
			name: "proc only wins over proc full",
			settings: models.ProcessorSettings{
				Enabled:             true,
				ObtainFromClasspath: true,
				ProcOnly:            true,
				GeneratedSourcesDir: "build/generated",
			},
			release: 24,
			want:    []string{"-proc:only", "-s", "build/generated"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AnnotationProcessingOptions(tt.settings, tt.release))
		})
	}
}

func TestForModule(t *testing.T) {
	store := partition.NewStore(partition.StaticUniverse{"api", "web"})
	lombok, err := store.CreateProfile("Lombok")
	require.NoError(t, err)
	require.NoError(t, store.UpdateSettings(lombok, models.ProcessorSettings{
		Enabled:             true,
		ObtainFromClasspath: true,
		GeneratedSourcesDir: "target/generated-sources",
	}))
	_, err = store.MoveMembers([]string{"api"}, store.DefaultProfile(), lombok)
	require.NoError(t, err)

	profile, args := ForModule(store, models.NewModule("api", "/repo/api", "github.com/x/api", "/repo/api/go.mod"), 0)
	require.Same(t, lombok, profile)
	require.Equal(t, []string{"-s", "/repo/api/target/generated-sources"}, args)
	require.Equal(t, "target/generated-sources", lombok.Settings.GeneratedSourcesDir)

	profile, args = ForModule(store, models.NewModule("web", "/repo/web", "github.com/x/web", "/repo/web/go.mod"), 0)
	require.Same(t, store.DefaultProfile(), profile)
	require.Equal(t, []string{"-proc:none"}, args)
}
