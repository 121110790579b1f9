package gesture

import (
	"fmt"

	"github.com/ironsheep/image-cropper-mcp/internal/geom"
)

// State is the phase of a selection gesture.
type State int

const (
	None State = iota
	Clicked
	Dragging
	Selected
)

func (s State) String() string {
	switch s {
	case None:
		return "None"
	case Clicked:
		return "Clicked"
	case Dragging:
		return "Dragging"
	case Selected:
		return "Selected"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText lets State appear by name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Selection tracks click-and-drag selection of a rectangle inside a
// reference element.
//
// The rectangle is anchored where the pointer went down and grows with the
// pointer. Its far corner never leaves the element and its size never goes
// negative: moving up or left of the anchor collapses that axis to zero.
type Selection struct {
	target Element
	s      session

	state  State
	anchor geom.Point
	offset geom.Offset
	bounds geom.Rect
}

// NewSelection returns a tracker constrained to target.
func NewSelection(target Element, doc Styler) *Selection {
	sel := &Selection{target: target}
	sel.s = session{doc: doc, cursor: CursorCrosshair}
	sel.s.adj = NewAdjuster(BothAxes, sel.limit)
	return sel
}

// limit keeps the far corner inside the element rect captured at start.
func (sel *Selection) limit() geom.Offset {
	return geom.Offset{
		DX: sel.bounds.Size.W - sel.anchor.X,
		DY: sel.bounds.Size.H - sel.anchor.Y,
	}
}

// OnStart records the anchor relative to the element and resets the offset.
// The element bounds are read here, once per gesture.
func (sel *Selection) OnStart(ev Event) bool {
	p, ok := ev.Point()
	if !ok || sel.target == nil {
		return false
	}
	sel.bounds = sel.target.Bounds()
	sel.anchor = geom.Pt(p.X-sel.bounds.Left(), p.Y-sel.bounds.Top())
	sel.offset = geom.Offset{}
	sel.state = Clicked
	sel.s.begin(p, geom.Offset{})
	return true
}

// OnMove grows the selection toward the pointer.
func (sel *Selection) OnMove(ev Event) bool {
	if !sel.s.active {
		return false
	}
	p, ok := ev.Point()
	if !ok {
		return false
	}
	sel.state = Dragging
	sel.offset = sel.s.move(p)
	return true
}

// OnEnd freezes the selection.
func (sel *Selection) OnEnd(Event) bool {
	if !sel.s.finish() {
		return false
	}
	sel.state = Selected
	return true
}

// Cancel ends the gesture as if the pointer had been released, keeping the
// geometry reached so far.
func (sel *Selection) Cancel() {
	if sel.s.finish() {
		sel.state = Selected
	}
}

// Active reports whether a selection gesture is in progress.
func (sel *Selection) Active() bool {
	return sel.s.active
}

// Reset drops the selection and returns to None.
func (sel *Selection) Reset() {
	sel.s.finish()
	sel.state = None
	sel.anchor = geom.Point{}
	sel.offset = geom.Offset{}
}

// State returns the current phase.
func (sel *Selection) State() State {
	return sel.state
}

// Anchor returns the start point relative to the element's top-left corner.
func (sel *Selection) Anchor() geom.Point {
	return sel.anchor
}

// Offset returns the selection width and height dragged so far.
func (sel *Selection) Offset() geom.Offset {
	return sel.offset
}

// Rect returns the selection in element coordinates.
func (sel *Selection) Rect() geom.Rect {
	return geom.Rect{Min: sel.anchor, Size: sel.offset.Size()}
}
