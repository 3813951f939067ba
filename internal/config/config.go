package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppName names the config directory and environment prefix
const AppName = "lazyjson"

// Config holds all application configuration
type Config struct {
	UI       UIConfig       `mapstructure:"ui"`
	Render   RenderConfig   `mapstructure:"render"`
	Settings SettingsConfig `mapstructure:"settings"`
	Log      LogConfig      `mapstructure:"log"`
}

type UIConfig struct {
	Theme           string `mapstructure:"theme"`
	MouseEnabled    bool   `mapstructure:"mouse_enabled"`
	ShowBreadcrumbs bool   `mapstructure:"show_breadcrumbs"`
	AltScreen       bool   `mapstructure:"alt_screen"`
}

type RenderConfig struct {
	Lazy         bool `mapstructure:"lazy"`
	MaxDepth     int  `mapstructure:"max_depth"`
	MaxRecursion int  `mapstructure:"max_recursion"`
}

type SettingsConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:           "",
			MouseEnabled:    true,
			ShowBreadcrumbs: true,
			AltScreen:       true,
		},
		Render: RenderConfig{
			Lazy:         false,
			MaxDepth:     15,
			MaxRecursion: 5000,
		},
		Settings: SettingsConfig{
			Backend: "sqlite",
			Path:    "",
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := GetDefaults()
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.mouse_enabled", d.UI.MouseEnabled)
	v.SetDefault("ui.show_breadcrumbs", d.UI.ShowBreadcrumbs)
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)
	v.SetDefault("render.lazy", d.Render.Lazy)
	v.SetDefault("render.max_depth", d.Render.MaxDepth)
	v.SetDefault("render.max_recursion", d.Render.MaxRecursion)
	v.SetDefault("settings.backend", d.Settings.Backend)
	v.SetDefault("settings.path", d.Settings.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// FlagKeys maps command-line flag names to config keys
var FlagKeys = map[string]string{
	"lazy":      "render.lazy",
	"max-depth": "render.max_depth",
	"log-level": "log.level",
	"log-file":  "log.file",
	"settings":  "settings.backend",
}

// Load loads configuration. An explicit file must exist; otherwise
// config.yaml is searched in the user config directory, the working
// directory and ./config, and a missing file is not an error. Environment
// variables (LAZYJSON_RENDER_MAX_DEPTH, ...) and flags set on the command
// line override file values.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if configDir, err := GetConfigPath(); err == nil {
			v.AddConfigPath(configDir)
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		// it's okay if the file doesn't exist, we have defaults
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Render.MaxDepth < 0 {
		return nil, fmt.Errorf("render.max_depth must not be negative, got %d", cfg.Render.MaxDepth)
	}
	if cfg.Render.MaxRecursion <= 0 {
		cfg.Render.MaxRecursion = GetDefaults().Render.MaxRecursion
	}

	return &cfg, nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}
