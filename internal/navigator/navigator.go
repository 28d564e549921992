// Package navigator tracks which proposal section is in view and issues
// jump-to-section commands. It is driven entirely by scroll events reported by
// the page; it never polls.
package navigator

import "sync"

// DefaultReferenceLine is the viewport offset, in pixels from the top, that a
// section must straddle to count as in view.
const DefaultReferenceLine = 100

// Box is the vertical extent of a section relative to the viewport top.
type Box struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Intersects reports whether the box straddles the reference line.
func (b Box) Intersects(line float64) bool {
	return b.Top <= line && b.Bottom >= line
}

// ScrollCommand asks the page to scroll a section's top edge into view.
type ScrollCommand struct {
	Section  string `json:"section"`
	Behavior string `json:"behavior"`
}

// ScrollSink receives scroll commands. Delivery is fire-and-forget.
type ScrollSink func(ScrollCommand)

// Navigator holds the active section pointer for one page session.
type Navigator struct {
	mu       sync.Mutex
	sections []string
	known    map[string]bool
	line     float64
	active   string

	nextID   int
	handlers map[int]func(string)
	sinks    map[int]ScrollSink
}

// New creates a Navigator over sections in document order. The first section
// starts active. A non-positive line selects DefaultReferenceLine.
func New(sections []string, line float64) *Navigator {
	if line <= 0 {
		line = DefaultReferenceLine
	}
	n := &Navigator{
		sections: append([]string(nil), sections...),
		known:    make(map[string]bool, len(sections)),
		line:     line,
		handlers: make(map[int]func(string)),
		sinks:    make(map[int]ScrollSink),
	}
	for _, id := range sections {
		n.known[id] = true
	}
	if len(sections) > 0 {
		n.active = sections[0]
	}
	return n
}

// Sections returns the section ids in document order.
func (n *Navigator) Sections() []string {
	return append([]string(nil), n.sections...)
}

// ReferenceLine returns the viewport offset used by OnScroll.
func (n *Navigator) ReferenceLine() float64 { return n.line }

// Active returns the active section, if any.
func (n *Navigator) Active() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active, n.active != ""
}

// OnScroll handles one scroll event. The first section in document order whose
// box straddles the reference line becomes active; when none does, the active
// section is left as it was. Boxes for unknown sections are ignored.
func (n *Navigator) OnScroll(boxes map[string]Box) {
	for _, id := range n.sections {
		b, ok := boxes[id]
		if ok && b.Intersects(n.line) {
			n.SetActiveSection(id)
			return
		}
	}
}

// SetActiveSection makes id active and notifies subscribers if it changed.
// Unknown ids are rejected.
func (n *Navigator) SetActiveSection(id string) bool {
	n.mu.Lock()
	if !n.known[id] {
		n.mu.Unlock()
		return false
	}
	if n.active == id {
		n.mu.Unlock()
		return true
	}
	n.active = id
	handlers := make([]func(string), 0, len(n.handlers))
	for _, h := range n.handlers {
		handlers = append(handlers, h)
	}
	n.mu.Unlock()

	for _, h := range handlers {
		h(id)
	}
	return true
}

// Subscribe registers fn to be called whenever the active section changes.
// The returned function deregisters it and is safe to call more than once.
func (n *Navigator) Subscribe(fn func(active string)) (unsubscribe func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.handlers[id] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.handlers, id)
			n.mu.Unlock()
		})
	}
}

// AddScrollSink registers a receiver for NavigateTo commands. Every page
// attached to the session gets its own sink; the returned function removes it
// and is safe to call more than once.
func (n *Navigator) AddScrollSink(sink ScrollSink) (remove func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.sinks[id] = sink
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.sinks, id)
			n.mu.Unlock()
		})
	}
}

// NavigateTo asks the page to smooth-scroll to the section. Unknown sections
// are ignored and completion is not tracked; the active pointer only moves
// once the resulting scroll events arrive.
func (n *Navigator) NavigateTo(id string) bool {
	n.mu.Lock()
	known := n.known[id]
	sinks := make([]ScrollSink, 0, len(n.sinks))
	for _, s := range n.sinks {
		sinks = append(sinks, s)
	}
	n.mu.Unlock()

	if !known {
		return false
	}
	cmd := ScrollCommand{Section: id, Behavior: "smooth"}
	for _, s := range sinks {
		s(cmd)
	}
	return true
}
