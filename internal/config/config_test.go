package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.False(t, cfg.AuthEnabled())
	assert.False(t, cfg.TLSEnabled())
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swaig.yaml")
	content := "port: \"8080\"\nusername: agent\npassword: secret\nstrict: true\nrequest_timeout: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("SWAIG_PORT", "9090")
	t.Setenv("SWAIG_VALIDATE_ARGUMENTS", "true")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port, "env overrides file")
	assert.Equal(t, "agent", cfg.Username)
	assert.True(t, cfg.AuthEnabled())
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.ValidateArguments)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("SWAIG_USERNAME", "only-user")
	_, err = Load(viper.New(), "")
	assert.EqualError(t, err, "username and password must be set together")
}
