package extension

// BuiltinNamespace is the namespace reserved for the host application's own
// bundled addons and themes. Unqualified identifiers resolve against it, and
// its resources live under fixed roots instead of namespace-scoped ones.
const BuiltinNamespace = "host"

// Roots resolves where an extension's resources are served from. The
// builtin namespace has dedicated addon and theme roots; every other
// namespace gets namespace-scoped directories under ExtensionBase, with
// addon resources separated from theme packs.
type Roots struct {
	BuiltinAddons string
	BuiltinThemes string
	ExtensionBase string
}

// DefaultRoots returns the standard resource layout.
func DefaultRoots() Roots {
	return Roots{
		BuiltinAddons: "/static/addons/",
		BuiltinThemes: "/static/themes/",
		ExtensionBase: "/ext/",
	}
}

// AddonRoot returns the base path for a namespace's addon resources.
func (r Roots) AddonRoot(namespace string) string {
	if namespace == BuiltinNamespace {
		return r.BuiltinAddons
	}
	return r.ExtensionBase + namespace + "/addons/"
}

// ThemeRoot returns the base path for a namespace's theme pack resources.
func (r Roots) ThemeRoot(namespace string) string {
	if namespace == BuiltinNamespace {
		return r.BuiltinThemes
	}
	return r.ExtensionBase + namespace + "/packs/"
}
