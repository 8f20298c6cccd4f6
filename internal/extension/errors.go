package extension

import (
	"errors"
	"fmt"
)

// ErrScriptingDisabled is returned by Addon.Enable when the host
// configuration forbids addon scripts. No hooks are loaded in that case.
var ErrScriptingDisabled = errors.New("addon scripts are disabled by configuration")

// ValidationError reports a manifest entry missing a required identity
// field. It is fatal to that one entity only; batch construction converts
// it into a skip-report entry.
type ValidationError struct {
	Entity string // "addon", "theme", "extension"
	Field  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Entity, e.Field)
}
