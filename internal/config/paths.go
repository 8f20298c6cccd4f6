package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".loadout"

// Paths holds resolved filesystem paths for loadout data.
type Paths struct {
	Base   string // ~/.loadout
	Config string // ~/.loadout/config.yaml
	Data   string // ~/.loadout/data
	State  string // ~/.loadout/data/state.db
	Logs   string // ~/.loadout/logs
}

// ResolvePaths computes all standard paths from the home directory.
// If LOADOUT_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("LOADOUT_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:   base,
		Config: filepath.Join(base, "config.yaml"),
		Data:   filepath.Join(base, "data"),
		State:  filepath.Join(base, "data", "state.db"),
		Logs:   filepath.Join(base, "logs"),
	}, nil
}

// EnsureDirs creates all standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.Base, p.Data, p.Logs} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}
