package gesture

import (
	"github.com/ironsheep/image-cropper-mcp/internal/geom"
)

// Drag translates an element inside its parent.
//
// The pointer anchor is taken relative to the element's current translation
// so the element does not jump to the cursor. The translation is clamped so
// the element's left/top edge never goes below zero and its right/bottom edge
// never passes the parent.
type Drag struct {
	el Movable
	s  session
}

// NewDrag returns a drag tracker for el.
func NewDrag(el Movable, doc Styler) *Drag {
	d := &Drag{el: el}
	d.s = session{doc: doc, cursor: CursorMove}
	d.s.adj = NewAdjuster(BothAxes, d.limit)
	return d
}

// limit is read on every move since layout may change mid-gesture.
func (d *Drag) limit() geom.Offset {
	parent := d.el.Parent().Bounds()
	own := d.el.Bounds()
	return geom.Offset{
		DX: parent.Size.W - own.Size.W,
		DY: parent.Size.H - own.Size.H,
	}
}

func (d *Drag) OnStart(ev Event) bool {
	p, ok := ev.Point()
	if !ok || d.el == nil {
		return false
	}
	d.s.begin(p, d.el.Translation())
	return true
}

func (d *Drag) OnMove(ev Event) bool {
	if !d.s.active || d.el.Parent() == nil {
		return false
	}
	p, ok := ev.Point()
	if !ok {
		return false
	}
	d.el.SetTranslation(d.s.move(p))
	return true
}

func (d *Drag) OnEnd(Event) bool {
	return d.s.finish()
}

func (d *Drag) Cancel() {
	d.s.finish()
}

func (d *Drag) Active() bool {
	return d.s.active
}
