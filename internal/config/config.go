// Package config loads aptprofile settings from an optional YAML file in the
// workspace root and APTPROFILE_* environment variables.
package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jakoblorz/go-aptprofile/internal/filesystem"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file looked up in the workspace root.
	FileName = ".aptprofiles.yaml"

	// EnvPrefix prefixes environment overrides, e.g. APTPROFILE_FORMAT.
	EnvPrefix = "APTPROFILE"
)

// Config holds the settings shared by all commands.
type Config struct {
	ProfilesDir string `mapstructure:"profiles_dir" validate:"required"`
	Format      string `mapstructure:"format" validate:"oneof=text json template"`
	Release     int    `mapstructure:"release" validate:"gte=0"`
	GoEnv       bool   `mapstructure:"go_env"`
	Nested      bool   `mapstructure:"nested"`
	NoColor     bool   `mapstructure:"no_color"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

var validate = validator.New()

func defaults(v *viper.Viper) {
	v.SetDefault("profiles_dir", ".aptprofiles")
	v.SetDefault("format", "text")
	v.SetDefault("release", 0)
	v.SetDefault("go_env", false)
	v.SetDefault("nested", true)
	v.SetDefault("no_color", false)
}

// Load reads the config. explicit is a --config path and must exist when
// set; otherwise FileName in root is used if present.
func Load(fs filesystem.FileSystem, root, explicit string) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := explicit
	if path == "" {
		path = filepath.Join(root, FileName)
		if !fs.Exists(path) {
			path = ""
		}
	}

	if path != "" {
		data, err := fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		v.SetConfigType(configType(path))
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = path

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func configType(path string) string {
	switch ext := strings.TrimPrefix(filepath.Ext(path), "."); ext {
	case "json", "toml":
		return ext
	default:
		return "yaml"
	}
}
