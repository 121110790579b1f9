package gesture

import (
	"github.com/ironsheep/image-cropper-mcp/internal/geom"
)

// Element is anything with a bounding box in viewport coordinates.
type Element interface {
	Bounds() geom.Rect
}

// Movable is an element positioned by a translation inside its parent.
type Movable interface {
	Element
	Parent() Element
	Translation() geom.Offset
	SetTranslation(geom.Offset)
}

// Resizable is an element whose width and height can be set directly.
type Resizable interface {
	Element
	Parent() Element
	// ComputedSize is the laid-out size, not a tracked offset.
	ComputedSize() geom.Size
	SetWidth(float64)
	SetHeight(float64)
}

// Tracker is the common shape of the three gesture state machines.
type Tracker interface {
	// OnStart begins a gesture. It reports whether the event was consumed.
	OnStart(Event) bool
	// OnMove updates the geometry. Ignored when no gesture is active.
	OnMove(Event) bool
	// OnEnd finishes the gesture. Ignored when no gesture is active.
	OnEnd(Event) bool
	// Cancel finishes the gesture on an abnormal path.
	Cancel()
	// Active reports whether move and end events are currently honoured.
	Active() bool
}

// Handle routes ev to the tracker method matching its kind.
func Handle(t Tracker, ev Event) bool {
	switch ev.Kind {
	case Down:
		return t.OnStart(ev)
	case Move:
		return t.OnMove(ev)
	case Up:
		return t.OnEnd(ev)
	case Cancel:
		if !t.Active() {
			return false
		}
		t.Cancel()
		return true
	default:
		return false
	}
}

// session is the attach/detach discipline every tracker shares: an active
// flag standing in for the move/up listeners, the adjuster, and the cursor
// override acquired on the first move.
type session struct {
	doc    Styler
	cursor Cursor
	adj    Adjuster

	active bool
	scope  *Override
}

func (s *session) begin(p geom.Point, base geom.Offset) {
	// A start without an end means the previous gesture was lost.
	s.finish()
	s.active = true
	s.adj.Begin(p, base)
}

func (s *session) move(p geom.Point) geom.Offset {
	if !s.scope.Held() {
		s.scope = Acquire(s.doc, s.cursor)
	}
	return s.adj.Adjust(p)
}

// finish detaches and releases the cursor. It reports whether a gesture
// was active.
func (s *session) finish() bool {
	s.scope.Release()
	s.scope = nil
	was := s.active
	s.active = false
	return was
}
