// Package config holds host configuration for loadout: the scripting gate,
// resource roots, state-store settings, and the admin gateway.
package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Config is the root configuration for loadout.
type Config struct {
	Scripting ScriptingConfig `yaml:"scripting,omitempty"`
	Theme     ThemeConfig     `yaml:"theme,omitempty"`
	Roots     RootsConfig     `yaml:"roots,omitempty"`
	Store     StoreConfig     `yaml:"store,omitempty"`
	Gateway   GatewayConfig   `yaml:"gateway,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// ScriptingConfig gates addon script injection globally. The flag is read
// on every addon enable, so flipping it takes effect immediately.
type ScriptingConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Allowed reports whether addon scripts may run. Defaults to true when
// unset.
func (s ScriptingConfig) Allowed() bool {
	return s.Enabled == nil || *s.Enabled
}

// ThemeConfig selects the default theme activated at startup.
type ThemeConfig struct {
	Default string `yaml:"default,omitempty"` // theme name, qualified or builtin-local
}

// RootsConfig overrides where extension resources are served from.
type RootsConfig struct {
	BuiltinAddons string `yaml:"builtinAddons,omitempty"`
	BuiltinThemes string `yaml:"builtinThemes,omitempty"`
	ExtensionBase string `yaml:"extensionBase,omitempty"`
}

// StoreConfig selects the state-store backend.
type StoreConfig struct {
	Backend string `yaml:"backend,omitempty"` // "sqlite" | "memory"
	Path    string `yaml:"path,omitempty"`    // sqlite file; defaults under the data dir
}

// GatewayConfig controls the admin HTTP/WebSocket server.
type GatewayConfig struct {
	Port           int         `yaml:"port,omitempty"`
	Bind           string      `yaml:"bind,omitempty"` // listen host, default loopback
	Auth           GatewayAuth `yaml:"auth,omitempty"`
	AllowedOrigins []string    `yaml:"allowedOrigins,omitempty"`
}

// GatewayAuth configures gateway authentication.
type GatewayAuth struct {
	Token string `yaml:"token,omitempty"` // empty disables auth (loopback-only setups)
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Theme: ThemeConfig{Default: "vanilla"},
		Roots: RootsConfig{
			BuiltinAddons: "/static/addons/",
			BuiltinThemes: "/static/themes/",
			ExtensionBase: "/ext/",
		},
		Store: StoreConfig{Backend: "sqlite"},
		Gateway: GatewayConfig{
			Port: 18490,
			Bind: "127.0.0.1",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
