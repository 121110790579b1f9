package gesture

import (
	"fmt"

	"github.com/ironsheep/image-cropper-mcp/internal/geom"
)

// Edge identifies a resize handle.
type Edge int

const (
	// EdgeRight resizes horizontally.
	EdgeRight Edge = iota
	// EdgeBottom resizes vertically.
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// Resize drags one edge of an element. A right handle only ever changes the
// width and a bottom handle only the height; the new size is clamped to the
// space left between the element's origin and the parent's far edge.
type Resize struct {
	el   Resizable
	edge Edge
	s    session
}

// NewResize returns a resize tracker for the given edge of el.
func NewResize(el Resizable, edge Edge, doc Styler) *Resize {
	r := &Resize{el: el, edge: edge}
	axes, cursor := AxisX, CursorColResize
	if edge == EdgeBottom {
		axes, cursor = AxisY, CursorRowResize
	}
	r.s = session{doc: doc, cursor: cursor}
	r.s.adj = NewAdjuster(axes, r.limit)
	return r
}

func (r *Resize) limit() geom.Offset {
	parent := r.el.Parent().Bounds()
	own := r.el.Bounds()
	return geom.Offset{
		DX: parent.Size.W - (own.Left() - parent.Left()),
		DY: parent.Size.H - (own.Top() - parent.Top()),
	}
}

// Edge returns the handle this tracker drives.
func (r *Resize) Edge() Edge {
	return r.edge
}

// OnStart records the pointer and the element's computed size.
func (r *Resize) OnStart(ev Event) bool {
	p, ok := ev.Point()
	if !ok || r.el == nil {
		return false
	}
	r.s.begin(p, r.el.ComputedSize().Offset())
	return true
}

func (r *Resize) OnMove(ev Event) bool {
	if !r.s.active || r.el.Parent() == nil {
		return false
	}
	p, ok := ev.Point()
	if !ok {
		return false
	}
	size := r.s.move(p)
	if r.edge == EdgeRight {
		r.el.SetWidth(size.DX)
	} else {
		r.el.SetHeight(size.DY)
	}
	return true
}

func (r *Resize) OnEnd(Event) bool {
	return r.s.finish()
}

func (r *Resize) Cancel() {
	r.s.finish()
}

func (r *Resize) Active() bool {
	return r.s.active
}
