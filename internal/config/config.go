// Package config loads the server configuration from defaults, an optional config
// file, SWAIG_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. SWAIG_PORT.
	EnvPrefix = "SWAIG"

	defaultPort           = "3000"
	defaultRequestTimeout = 60
)

// Config is the fully merged server configuration.
type Config struct {
	Port              string `mapstructure:"port"`
	Username          string `mapstructure:"username"`
	Password          string `mapstructure:"password"`
	TLSCertFile       string `mapstructure:"tls_cert_file"`
	TLSKeyFile        string `mapstructure:"tls_key_file"`
	PublicHost        string `mapstructure:"public_host"`
	LogFile           string `mapstructure:"log_file"`
	Debug             bool   `mapstructure:"debug"`
	Strict            bool   `mapstructure:"strict"`
	ValidateArguments bool   `mapstructure:"validate_arguments"`
	RequestTimeoutSec int    `mapstructure:"request_timeout"`
}

// AuthEnabled reports whether basic auth credentials are configured.
func (c Config) AuthEnabled() bool {
	return c.Username != "" && c.Password != ""
}

// TLSEnabled reports whether both a certificate and key are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// RequestTimeout returns the per-request timeout, falling back to the default.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSec <= 0 {
		return defaultRequestTimeout * time.Second
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("username", "")
	v.SetDefault("password", "")
	v.SetDefault("tls_cert_file", "")
	v.SetDefault("tls_key_file", "")
	v.SetDefault("public_host", "")
	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
	v.SetDefault("strict", false)
	v.SetDefault("validate_arguments", false)
	v.SetDefault("request_timeout", defaultRequestTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads path (if non-empty) into v and unmarshals the merged result.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return Config{}, errors.New("username and password must be set together")
	}
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return Config{}, errors.New("tls_cert_file and tls_key_file must be set together")
	}
	return cfg, nil
}
