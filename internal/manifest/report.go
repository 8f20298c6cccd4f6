package manifest

import "fmt"

// EntryKind says which manifest array a report entry came from.
type EntryKind string

const (
	KindAddon EntryKind = "addon"
	KindTheme EntryKind = "theme"
)

// Skipped records one manifest entry that was dropped during extension
// construction, and why. Skips are expected for malformed entries; the
// rest of the batch still builds.
type Skipped struct {
	Kind   EntryKind `json:"kind"`
	Index  int       `json:"index"`
	Name   string    `json:"name,omitempty"`
	Reason string    `json:"reason"`
}

func (s Skipped) String() string {
	name := s.Name
	if name == "" {
		name = fmt.Sprintf("#%d", s.Index)
	}
	return fmt.Sprintf("%s %s: %s", s.Kind, name, s.Reason)
}

// Report collects the outcome of building an extension from a manifest.
type Report struct {
	Namespace string    `json:"namespace"`
	Addons    int       `json:"addons"`
	Themes    int       `json:"themes"`
	Skipped   []Skipped `json:"skipped,omitempty"`
}

// Skip appends a skipped-entry record.
func (r *Report) Skip(kind EntryKind, index int, name, reason string) {
	r.Skipped = append(r.Skipped, Skipped{Kind: kind, Index: index, Name: name, Reason: reason})
}

// Clean reports whether every entry in the manifest was built.
func (r *Report) Clean() bool {
	return len(r.Skipped) == 0
}
