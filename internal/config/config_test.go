package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	settings, err := Load()
	require.NoError(t, err)

	cfgDir := filepath.Join(home, ".luniix")
	assert.Equal(t, cfgDir, settings.ConfigDir)
	assert.Equal(t, filepath.Join(cfgDir, "cache"), settings.CacheDir)
	assert.Equal(t, filepath.Join(cfgDir, "official.json"), settings.OfficialDBPath())
	assert.Equal(t, filepath.Join(cfgDir, "third-party.json"), settings.ThirdPartyDBPath())
	assert.NotEmpty(t, settings.OfficialDBURL)
	assert.NotEmpty(t, settings.OfficialTokenURL)
	assert.NotEmpty(t, settings.ThirdPartyDBURL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LUNIIX_CONFIG_DIR", "/opt/luniix-keys")

	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/opt/luniix-keys", settings.ConfigDir)
}
