package rowan

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ROWAN_SCENE_PATH.
const EnvPrefix = "ROWAN"

// Config holds the engine settings read at startup.
type Config struct {
	Title          string `mapstructure:"title"`
	Width          int    `mapstructure:"width"`
	Height         int    `mapstructure:"height"`
	Fullscreen     bool   `mapstructure:"fullscreen"`
	TPS            int    `mapstructure:"tps"`
	TemplatePath   string `mapstructure:"template_path"`
	ScenePath      string `mapstructure:"scene_path"`
	ScreenshotPath string `mapstructure:"screenshot_path"`
	LogLevel       string `mapstructure:"log_level"`
	LogToScreen    bool   `mapstructure:"log_to_screen"`
	DebugMode      bool   `mapstructure:"debug_mode"`
	AutoSave       bool   `mapstructure:"auto_save"`
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("title", "rowan")
	v.SetDefault("width", 1024)
	v.SetDefault("height", 768)
	v.SetDefault("fullscreen", false)
	v.SetDefault("tps", 60)
	v.SetDefault("template_path", "templates")
	v.SetDefault("scene_path", "scenes")
	v.SetDefault("screenshot_path", "screenshots")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_to_screen", false)
	v.SetDefault("debug_mode", false)
	v.SetDefault("auto_save", false)
}

// DefaultConfig returns the built-in settings with environment overrides
// applied.
func DefaultConfig() (*Config, error) {
	return LoadConfig(nil, "")
}

// LoadConfig reads settings from path on fs, on top of the defaults.
// The format follows the file extension (yaml, toml, json, ...). An empty
// path skips the file. ROWAN_* environment variables override both.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	v := viper.New()
	if fs != nil {
		v.SetFs(fs)
	}
	setConfigDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("config: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	return &cfg, nil
}
