package gesture

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-cropper-mcp/internal/geom"
)

func TestDrag_ClampsToParent(t *testing.T) {
	doc := &fakeDoc{}
	parent := &fakeBox{size: geom.Size{W: 400, H: 300}}
	box := &fakeBox{parent: parent, size: geom.Size{W: 100, H: 50}}
	d := NewDrag(box, doc)

	require.True(t, d.OnStart(MouseEvent(Down, 10, 10)))
	require.True(t, d.OnMove(MouseEvent(Move, 510, 510)))

	assert.Equal(t, geom.Offset{DX: 300, DY: 250}, box.Translation())
	assert.Equal(t, CursorMove, doc.style.Cursor)

	require.True(t, d.OnEnd(MouseEvent(Up, 510, 510)))
	assert.Equal(t, Style{}, doc.style)
	assert.False(t, d.Active())
}

func TestDrag_NoJumpToCursor(t *testing.T) {
	parent := &fakeBox{size: geom.Size{W: 400, H: 300}}
	box := &fakeBox{parent: parent, size: geom.Size{W: 100, H: 50}, trans: geom.Offset{DX: 30, DY: 40}}
	d := NewDrag(box, nil)

	// Grab the box somewhere in its middle.
	d.OnStart(MouseEvent(Down, 80, 60))
	d.OnMove(MouseEvent(Move, 80, 60))
	assert.Equal(t, geom.Offset{DX: 30, DY: 40}, box.Translation())

	d.OnMove(MouseEvent(Move, 90, 55))
	assert.Equal(t, geom.Offset{DX: 40, DY: 35}, box.Translation())
}

func TestDrag_ClampsAtOrigin(t *testing.T) {
	parent := &fakeBox{size: geom.Size{W: 400, H: 300}}
	box := &fakeBox{parent: parent, size: geom.Size{W: 100, H: 50}, trans: geom.Offset{DX: 30, DY: 40}}
	d := NewDrag(box, nil)

	d.OnStart(MouseEvent(Down, 50, 50))
	d.OnMove(MouseEvent(Move, -500, -500))

	assert.Equal(t, geom.Offset{}, box.Translation())
}

func TestDrag_WithoutParentIgnoresMoves(t *testing.T) {
	box := &fakeBox{size: geom.Size{W: 100, H: 50}}
	d := NewDrag(box, nil)

	d.OnStart(MouseEvent(Down, 0, 0))
	assert.False(t, d.OnMove(MouseEvent(Move, 20, 20)))
	assert.Equal(t, geom.Offset{}, box.Translation())
	assert.True(t, d.OnEnd(MouseEvent(Up, 0, 0)))
}

func TestDrag_MovesIgnoredWhenIdle(t *testing.T) {
	parent := &fakeBox{size: geom.Size{W: 400, H: 300}}
	box := &fakeBox{parent: parent, size: geom.Size{W: 100, H: 50}}
	d := NewDrag(box, nil)

	assert.False(t, d.OnMove(MouseEvent(Move, 50, 50)))
	assert.False(t, Handle(d, Event{Kind: Cancel}))
	assert.Equal(t, geom.Offset{}, box.Translation())
}

func TestDrag_StaysInsideParent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	parent := &fakeBox{pos: geom.Pt(15, 25), size: geom.Size{W: 400, H: 300}}
	box := &fakeBox{parent: parent, size: geom.Size{W: 120, H: 80}}
	d := NewDrag(box, nil)

	for i := 0; i < 100; i++ {
		d.OnStart(MouseEvent(Down, rng.Float64()*400, rng.Float64()*300))
		for j := 0; j < 20; j++ {
			d.OnMove(MouseEvent(Move, rng.Float64()*1200-400, rng.Float64()*900-300))
			tr := box.Translation()
			if tr.DX < 0 || tr.DX > 400-120 || tr.DY < 0 || tr.DY > 300-80 {
				t.Fatalf("translation %v escapes parent", tr)
			}
			require.True(t, box.Bounds().In(parent.Bounds()))
		}
		d.OnEnd(MouseEvent(Up, 0, 0))
	}
}
