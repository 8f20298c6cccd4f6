package registry

import (
	"strings"

	"github.com/oxleaf/loadout/internal/extension"
)

// ParseIdentifier splits a qualified addon/theme identifier.
//
// Two shapes are valid: "name" resolves against the host's builtin
// namespace, and "namespace:name" addresses an installed extension. Any
// other shape (empty segments, more than one separator) is invalid and
// resolves to nothing.
func ParseIdentifier(id string) (namespace, name string, ok bool) {
	parts := strings.Split(id, ":")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return "", "", false
		}
		return extension.BuiltinNamespace, parts[0], true
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", "", false
		}
		return parts[0], parts[1], true
	default:
		return "", "", false
	}
}

// Qualify builds the canonical identifier for a namespace-local name.
func Qualify(namespace, name string) string {
	return namespace + ":" + name
}
