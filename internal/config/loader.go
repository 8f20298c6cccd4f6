package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val, ok := os.LookupEnv(match[2 : len(match)-1]); ok {
			return val
		}
		return match
	})
}

// Load reads the config file and applies defaults plus LOADOUT_* environment
// overrides. A missing file yields defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	// Token may be stored as ${ENV_VAR} so the secret stays out of the file.
	cfg.Gateway.Auth.Token = expandEnvVars(cfg.Gateway.Auth.Token)
	return cfg, nil
}

// Save writes the config back to disk.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// applyDefaults fills zero-value fields after a file merge.
func applyDefaults(cfg *Config) {
	if cfg.Theme.Default == "" {
		cfg.Theme.Default = "vanilla"
	}
	if cfg.Roots.BuiltinAddons == "" {
		cfg.Roots.BuiltinAddons = "/static/addons/"
	}
	if cfg.Roots.BuiltinThemes == "" {
		cfg.Roots.BuiltinThemes = "/static/themes/"
	}
	if cfg.Roots.ExtensionBase == "" {
		cfg.Roots.ExtensionBase = "/ext/"
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "sqlite"
	}
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = 18490
	}
	if cfg.Gateway.Bind == "" {
		cfg.Gateway.Bind = "127.0.0.1"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// applyEnvOverrides reads LOADOUT_* environment variables over config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOADOUT_SCRIPTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Scripting.Enabled = &b
		}
	}
	if v := os.Getenv("LOADOUT_GATEWAY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Gateway.Port = port
		}
	}
	if v := os.Getenv("LOADOUT_GATEWAY_TOKEN"); v != "" {
		cfg.Gateway.Auth.Token = v
	}
	if v := os.Getenv("LOADOUT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}
