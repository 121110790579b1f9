package gesture

import "github.com/ironsheep/image-cropper-mcp/internal/geom"

// fakeDoc records the global style.
type fakeDoc struct {
	style  Style
	writes int
}

func (d *fakeDoc) Style() Style { return d.style }

func (d *fakeDoc) SetStyle(s Style) {
	d.style = s
	d.writes++
}

// fakeBox is a minimal element: a position inside an optional parent, a
// translation and a size.
type fakeBox struct {
	parent *fakeBox
	pos    geom.Point
	trans  geom.Offset
	size   geom.Size
}

func (b *fakeBox) Bounds() geom.Rect {
	r := geom.Rect{Min: b.pos.Add(b.trans), Size: b.size}
	if b.parent != nil {
		r = r.Translate(b.parent.Bounds().Min.Offset())
	}
	return r
}

func (b *fakeBox) Parent() Element {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

func (b *fakeBox) Translation() geom.Offset { return b.trans }
func (b *fakeBox) SetTranslation(o geom.Offset) { b.trans = o }
func (b *fakeBox) ComputedSize() geom.Size { return b.size }
func (b *fakeBox) SetWidth(w float64) { b.size.W = w }
func (b *fakeBox) SetHeight(h float64) { b.size.H = h }
