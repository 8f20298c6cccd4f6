// Package page defines the host-page collaborator surface: the current page
// context and the narrow document interface the registry injects into.
package page

// Context identifies which view of the host application a page is showing.
// Addon hooks are keyed by context, so enabling an addon injects the hook
// for the context the page is in at that moment.
type Context string

const (
	ContextLive     Context = "live"
	ContextEditor   Context = "editor"
	ContextHistory  Context = "history"
	ContextSettings Context = "settings"
)

// Contexts lists every recognized page context, in a stable order.
var Contexts = []Context{ContextLive, ContextEditor, ContextHistory, ContextSettings}

// ParseContext maps a raw context name to a Context. Unrecognized names
// return false; callers treat that as "no per-context hook".
func ParseContext(s string) (Context, bool) {
	switch Context(s) {
	case ContextLive, ContextEditor, ContextHistory, ContextSettings:
		return Context(s), true
	}
	return "", false
}
