// Package config loads the tool's settings. All values have defaults
// derived from the user's home directory, can be overridden by an optional
// config file or LUNIIX_* environment variables, and are passed around as an
// explicit Settings value rather than read from process-wide state.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings holds every externally configurable value.
type Settings struct {
	// ConfigDir holds cached databases and per-device key files.
	ConfigDir string `mapstructure:"config_dir"`

	// CacheDir holds downloaded story assets.
	CacheDir string `mapstructure:"cache_dir"`

	OfficialDBURL    string `mapstructure:"official_db_url"`
	OfficialTokenURL string `mapstructure:"official_token_url"`
	ThirdPartyDBURL  string `mapstructure:"third_party_db_url"`
}

// OfficialDBPath is the cached official database inside ConfigDir.
func (s Settings) OfficialDBPath() string {
	return filepath.Join(s.ConfigDir, "official.json")
}

// ThirdPartyDBPath is the cached third-party database inside ConfigDir.
func (s Settings) ThirdPartyDBPath() string {
	return filepath.Join(s.ConfigDir, "third-party.json")
}

// Load reads settings from an optional luniix-config file and the
// environment. A missing config file is fine, defaults apply.
func Load() (Settings, error) {
	v := viper.New()
	v.SetConfigName("luniix-config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.luniix")

	home, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, fmt.Errorf("resolve home directory: %w", err)
	}
	cfgDir := filepath.Join(home, ".luniix")

	v.SetDefault("config_dir", cfgDir)
	v.SetDefault("cache_dir", filepath.Join(cfgDir, "cache"))
	v.SetDefault("official_db_url", "https://server-data-prod.lunii.com/v2/packs")
	v.SetDefault("official_token_url", "https://server-auth-prod.lunii.com/guest/create")
	v.SetDefault("third_party_db_url", "https://github.com/jonasrenault/luniix/releases/download/v0.1.0/third-party.json")

	v.SetEnvPrefix("LUNIIX")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return s, nil
}
