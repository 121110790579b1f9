package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/image-cropper-mcp/internal/geom"
)

func TestAdjuster_SingleAxisKeepsBase(t *testing.T) {
	a := NewAdjuster(AxisX, func() geom.Offset { return geom.Offset{DX: 100, DY: 100} })
	a.Begin(geom.Pt(0, 0), geom.Offset{DX: 10, DY: 20})

	got := a.Adjust(geom.Pt(30, 500))
	assert.Equal(t, geom.Offset{DX: 40, DY: 20}, got)
	assert.Equal(t, geom.Offset{DX: 10, DY: 20}, a.Base())
}

func TestAdjuster_NegativeLimitFloorsAtZero(t *testing.T) {
	a := NewAdjuster(BothAxes, func() geom.Offset { return geom.Offset{DX: -5, DY: -5} })
	a.Begin(geom.Pt(0, 0), geom.Offset{})

	assert.Equal(t, geom.Offset{}, a.Adjust(geom.Pt(50, 50)))
}

func TestOverride_ReleaseRestoresAndIsIdempotent(t *testing.T) {
	doc := &fakeDoc{style: Style{Cursor: "wait"}}

	o := Acquire(doc, CursorMove)
	assert.True(t, o.Held())
	assert.Equal(t, Style{Cursor: CursorMove, NoSelect: true}, doc.style)

	o.Release()
	o.Release()
	assert.False(t, o.Held())
	assert.Equal(t, Style{Cursor: "wait"}, doc.style)
	assert.Equal(t, 2, doc.writes)
}

func TestOverride_NilDocument(t *testing.T) {
	o := Acquire(nil, CursorMove)
	assert.False(t, o.Held())
	o.Release()

	var none *Override
	none.Release()
}

func TestHandle_RoutesByKind(t *testing.T) {
	sel := NewSelection(&fakeBox{size: geom.Size{W: 100, H: 100}}, nil)

	assert.True(t, Handle(sel, MouseEvent(Down, 10, 10)))
	assert.True(t, Handle(sel, MouseEvent(Move, 30, 40)))
	assert.True(t, Handle(sel, MouseEvent(Up, 30, 40)))
	assert.False(t, Handle(sel, Event{Kind: Kind(99)}))
	assert.Equal(t, geom.Offset{DX: 20, DY: 30}, sel.Offset())
}

func TestParseKindAndInput(t *testing.T) {
	for _, k := range []Kind{Down, Move, Up, Cancel} {
		got, err := ParseKind(k.String())
		assert.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("hover")
	assert.Error(t, err)

	in, err := ParseInput("")
	assert.NoError(t, err)
	assert.Equal(t, Mouse, in)
	in, err = ParseInput("touch")
	assert.NoError(t, err)
	assert.Equal(t, Touch, in)
	_, err = ParseInput("pen")
	assert.Error(t, err)
}

func TestEvent_Point(t *testing.T) {
	p, ok := MouseEvent(Move, 3, 4).Point()
	assert.True(t, ok)
	assert.Equal(t, geom.Pt(3, 4), p)

	_, ok = TouchEvent(Up).Point()
	assert.False(t, ok)
}
