package page

// ElementKind distinguishes the two kinds of references a hook can inject.
type ElementKind string

const (
	ElementStyle  ElementKind = "style"
	ElementScript ElementKind = "script"
)

// Element is an opaque handle to a reference injected into the document.
// Handles are owned exclusively by the hook that created them and are only
// ever passed back to the same document for removal.
type Element interface {
	// Kind reports whether this is a stylesheet or script reference.
	Kind() ElementKind

	// URL returns the fully resolved resource URL the element points at.
	URL() string
}

// Document is the slice of the host page the registry is allowed to mutate.
// Implementations create stylesheet references under the head, script
// references under the body, and own a single designated stylesheet slot
// for the active theme.
//
// All methods are synchronous: the mutation is visible to the rest of the
// page as soon as the call returns.
type Document interface {
	// AppendStyleSheet attaches a stylesheet reference under the document
	// head and returns its handle.
	AppendStyleSheet(href string) Element

	// AppendScript attaches an executable script reference under the
	// document body and returns its handle.
	AppendScript(src string) Element

	// Remove detaches a previously appended element. Removing a script
	// element does not undo whatever the script already did to the page;
	// that limitation is inherent, not a defect.
	Remove(el Element)

	// SetActiveTheme retargets the designated theme stylesheet. Only one
	// theme is active at a time, so this replaces the previous target.
	SetActiveTheme(href string)
}
