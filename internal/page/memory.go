package page

import (
	"sync"

	"github.com/google/uuid"
)

// memElement is the handle type produced by MemoryDocument.
type memElement struct {
	id   string
	kind ElementKind
	url  string
}

func (e *memElement) Kind() ElementKind { return e.kind }
func (e *memElement) URL() string       { return e.url }

// MemoryDocument is an in-process Document that records every mutation.
// It backs tests, the CLI dry-run, and the gateway server: anything that
// needs a real document lifecycle without a browser attached.
type MemoryDocument struct {
	mu          sync.Mutex
	head        []*memElement
	body        []*memElement
	activeTheme string
}

// NewMemoryDocument creates an empty in-memory document.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{}
}

func (d *MemoryDocument) AppendStyleSheet(href string) Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := &memElement{id: uuid.New().String(), kind: ElementStyle, url: href}
	d.head = append(d.head, el)
	return el
}

func (d *MemoryDocument) AppendScript(src string) Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := &memElement{id: uuid.New().String(), kind: ElementScript, url: src}
	d.body = append(d.body, el)
	return el
}

func (d *MemoryDocument) Remove(el Element) {
	me, ok := el.(*memElement)
	if !ok {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.head = removeElement(d.head, me)
	d.body = removeElement(d.body, me)
}

func (d *MemoryDocument) SetActiveTheme(href string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.activeTheme = href
}

// ActiveTheme returns the URL the theme stylesheet currently points at.
func (d *MemoryDocument) ActiveTheme() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.activeTheme
}

// StyleSheets returns the URLs of all attached stylesheet references, in
// attachment order.
func (d *MemoryDocument) StyleSheets() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return urls(d.head)
}

// Scripts returns the URLs of all attached script references, in
// attachment order.
func (d *MemoryDocument) Scripts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return urls(d.body)
}

func urls(els []*memElement) []string {
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, el.url)
	}
	return out
}

func removeElement(els []*memElement, target *memElement) []*memElement {
	for i, el := range els {
		if el.id == target.id {
			return append(els[:i], els[i+1:]...)
		}
	}
	return els
}
