package cropper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ironsheep/image-cropper-mcp/internal/download"
	"github.com/ironsheep/image-cropper-mcp/internal/geom"
	"github.com/ironsheep/image-cropper-mcp/internal/gesture"
)

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// newLoaded returns a cropper whose container is 400x300 showing a
// 1600x1200 image, so the export scale is 4.
func newLoaded(t *testing.T) (*Cropper, *download.MemorySink) {
	t.Helper()
	sink := &download.MemorySink{}
	c := New(Options{ContainerWidth: 400}, sink, zaptest.NewLogger(t))
	display := c.SetImage(solidImage(1600, 1200, color.RGBA{255, 0, 0, 255}))
	require.Equal(t, geom.Size{W: 400, H: 300}, display)
	return c, sink
}

func down(x, y float64) gesture.Event { return gesture.MouseEvent(gesture.Down, x, y) }
func move(x, y float64) gesture.Event { return gesture.MouseEvent(gesture.Move, x, y) }
func up(x, y float64) gesture.Event { return gesture.MouseEvent(gesture.Up, x, y) }

// selectRect runs the documented selection scenario.
func selectRect(t *testing.T, c *Cropper) {
	t.Helper()
	require.Equal(t, TargetContainer, c.Dispatch(down(30, 40)))
	require.Equal(t, gesture.Clicked, c.Snapshot().State)
	require.Equal(t, TargetContainer, c.Dispatch(move(130, 90)))
	require.Equal(t, gesture.Dragging, c.Snapshot().State)
	require.Equal(t, TargetContainer, c.Dispatch(up(130, 90)))
}

func TestCropper_SelectionPromotesCropArea(t *testing.T) {
	c, _ := newLoaded(t)

	_, ok := c.CropRect()
	require.False(t, ok)

	selectRect(t, c)

	snap := c.Snapshot()
	assert.Equal(t, gesture.Selected, snap.State)
	assert.Equal(t, TargetNone, snap.Gesture)
	assert.Equal(t, gesture.Style{}, snap.Style)
	require.NotNil(t, snap.Selection)
	assert.Equal(t, geom.R(30, 40, 100, 50), *snap.Selection)
	require.NotNil(t, snap.CropArea)
	assert.Equal(t, geom.R(30, 40, 100, 50), *snap.CropArea)
	assert.Equal(t, 4.0, snap.Scale)
}

func TestCropper_DragCropAreaClampsToContainer(t *testing.T) {
	c, _ := newLoaded(t)
	selectRect(t, c)

	// Grab the middle of the crop area and throw it far down-right.
	require.Equal(t, TargetCropArea, c.Dispatch(down(80, 65)))
	assert.Equal(t, gesture.Selected, c.Snapshot().State, "dragging the crop area does not start a new selection")

	c.Dispatch(move(580, 565))
	assert.Equal(t, gesture.CursorMove, c.Style().Cursor)
	c.Dispatch(up(580, 565))

	r, ok := c.CropRect()
	require.True(t, ok)
	assert.Equal(t, geom.R(300, 250, 100, 50), r)
	assert.Equal(t, gesture.Style{}, c.Style())
}

func TestCropper_ResizeHandles(t *testing.T) {
	c, _ := newLoaded(t)
	selectRect(t, c)

	require.Equal(t, TargetRightHandle, c.Dispatch(down(130, 65)))
	c.Dispatch(move(170, 500))
	assert.Equal(t, gesture.CursorColResize, c.Style().Cursor)
	c.Dispatch(up(170, 500))

	r, _ := c.CropRect()
	assert.Equal(t, geom.R(30, 40, 140, 50), r)

	require.Equal(t, TargetBottomHandle, c.Dispatch(down(60, 90)))
	c.Dispatch(move(900, 1000))
	assert.Equal(t, gesture.CursorRowResize, c.Style().Cursor)
	c.Dispatch(up(900, 1000))

	r, _ = c.CropRect()
	assert.Equal(t, geom.R(30, 40, 140, 260), r, "height limited to the container's remaining space")
	assert.Equal(t, gesture.Style{}, c.Style())
}

func TestCropper_NewSelectionReplacesCropArea(t *testing.T) {
	c, _ := newLoaded(t)
	selectRect(t, c)

	require.Equal(t, TargetContainer, c.Dispatch(down(200, 200)))
	_, ok := c.CropRect()
	assert.False(t, ok)
	assert.Equal(t, gesture.Clicked, c.Snapshot().State)

	c.Dispatch(move(250, 220))
	c.Dispatch(up(250, 220))

	r, ok := c.CropRect()
	require.True(t, ok)
	assert.Equal(t, geom.R(200, 200, 50, 20), r)
}

func TestCropper_IgnoresStrayEvents(t *testing.T) {
	c, _ := newLoaded(t)

	assert.Equal(t, TargetNone, c.Dispatch(move(10, 10)))
	assert.Equal(t, TargetNone, c.Dispatch(up(10, 10)))
	assert.Equal(t, TargetNone, c.Dispatch(down(500, 10)), "outside the container")
	assert.Equal(t, TargetNone, c.Dispatch(gesture.TouchEvent(gesture.Down)))
	assert.Equal(t, gesture.None, c.Snapshot().State)
}

func TestCropper_NothingHitBeforeLoad(t *testing.T) {
	c := New(Options{ContainerWidth: 400}, nil, nil)

	assert.Equal(t, TargetNone, c.Dispatch(down(10, 0)), "empty container edge")
	assert.Equal(t, TargetNone, c.Dispatch(move(50, 0)))
	assert.Equal(t, TargetNone, c.Dispatch(up(50, 0)))

	_, ok := c.CropRect()
	assert.False(t, ok)
	assert.Equal(t, gesture.None, c.Snapshot().State)
	assert.Equal(t, gesture.Style{}, c.Style())
}

func TestCropper_ContainerOrigin(t *testing.T) {
	c := New(Options{ContainerWidth: 400, Origin: geom.Pt(100, 50)}, nil, nil)
	c.SetImage(solidImage(400, 300, color.White))

	assert.Equal(t, TargetNone, c.Dispatch(down(30, 40)))
	assert.Equal(t, TargetContainer, c.Dispatch(down(130, 90)))
	c.Dispatch(move(230, 140))
	c.Dispatch(up(230, 140))

	r, ok := c.CropRect()
	require.True(t, ok)
	assert.Equal(t, geom.R(30, 40, 100, 50), r)
}

func TestCropper_TouchGesture(t *testing.T) {
	c, _ := newLoaded(t)

	c.Dispatch(gesture.TouchEvent(gesture.Down, geom.Pt(30, 40)))
	c.Dispatch(gesture.TouchEvent(gesture.Move, geom.Pt(130, 90), geom.Pt(5, 5)))
	assert.Equal(t, gesture.CursorCrosshair, c.Style().Cursor)
	assert.True(t, c.Style().NoSelect)
	c.Dispatch(gesture.TouchEvent(gesture.Up))

	r, ok := c.CropRect()
	require.True(t, ok)
	assert.Equal(t, geom.R(30, 40, 100, 50), r)
	assert.Equal(t, gesture.Style{}, c.Style())
}

func TestCropper_AbortRestoresCursor(t *testing.T) {
	c, _ := newLoaded(t)
	selectRect(t, c)

	c.Dispatch(down(80, 65))
	c.Dispatch(move(90, 70))
	require.Equal(t, gesture.CursorMove, c.Style().Cursor)

	c.Abort()
	assert.Equal(t, gesture.Style{}, c.Style())
	assert.Equal(t, TargetNone, c.Snapshot().Gesture)

	// Aborting twice is harmless.
	c.Abort()
}

func TestCropper_LostUpIsCleanedUpByNextDown(t *testing.T) {
	c, _ := newLoaded(t)

	c.Dispatch(down(30, 40))
	c.Dispatch(move(130, 90))
	require.Equal(t, gesture.CursorCrosshair, c.Style().Cursor)

	// The up never arrives; the next down lands on the promoted crop area.
	assert.Equal(t, TargetCropArea, c.Dispatch(down(50, 50)))
	assert.Equal(t, gesture.Style{}, c.Style())
}

func TestCropper_CancelEvent(t *testing.T) {
	c, _ := newLoaded(t)

	c.Dispatch(down(30, 40))
	c.Dispatch(move(130, 90))
	assert.Equal(t, TargetContainer, c.Dispatch(gesture.Event{Kind: gesture.Cancel}))

	assert.Equal(t, gesture.Style{}, c.Style())
	assert.Equal(t, gesture.Selected, c.Snapshot().State)
}

func TestCropper_Export(t *testing.T) {
	c, sink := newLoaded(t)
	selectRect(t, c)

	res, err := c.Export()
	require.NoError(t, err)
	require.True(t, res.Exported)

	assert.Equal(t, "cropped-image.png", res.Filename)
	assert.Equal(t, "memory:cropped-image.png", res.Location)
	assert.Equal(t, 400, res.Width)
	assert.Equal(t, 200, res.Height)
	assert.Equal(t, 120, res.SourceX)
	assert.Equal(t, 160, res.SourceY)
	assert.Equal(t, 4.0, res.Scale)

	data, ok := sink.File(download.DefaultFilename)
	require.True(t, ok)
	out, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 200), out.Bounds())
}

func TestCropper_ExportScaleExample(t *testing.T) {
	sink := &download.MemorySink{}
	c := New(Options{ContainerWidth: 500}, sink, nil)
	c.SetImage(solidImage(2000, 1000, color.White))

	c.Dispatch(down(10, 20))
	c.Dispatch(move(110, 70))
	c.Dispatch(up(110, 70))

	res, err := c.Export()
	require.NoError(t, err)
	assert.True(t, res.Exported)
	assert.Equal(t, [4]int{40, 80, 400, 200}, [4]int{res.SourceX, res.SourceY, res.Width, res.Height})
}

func TestCropper_ExportAfterDrag(t *testing.T) {
	c, _ := newLoaded(t)
	selectRect(t, c)

	c.Dispatch(down(80, 65))
	c.Dispatch(move(580, 565))
	c.Dispatch(up(580, 565))

	res, err := c.Export()
	require.NoError(t, err)
	assert.Equal(t, 1200, res.SourceX)
	assert.Equal(t, 1000, res.SourceY)
}

func TestCropper_ExportNoOps(t *testing.T) {
	t.Run("no image", func(t *testing.T) {
		sink := &download.MemorySink{}
		c := New(Options{ContainerWidth: 400}, sink, nil)

		res, err := c.Export()
		require.NoError(t, err)
		assert.False(t, res.Exported)
		assert.Zero(t, sink.Count())
	})

	t.Run("no selection", func(t *testing.T) {
		c, sink := newLoaded(t)

		res, err := c.Export()
		require.NoError(t, err)
		assert.False(t, res.Exported)
		assert.Zero(t, sink.Count())
	})

	t.Run("selection still in progress", func(t *testing.T) {
		c, sink := newLoaded(t)
		c.Dispatch(down(30, 40))
		c.Dispatch(move(130, 90))

		res, err := c.Export()
		require.NoError(t, err)
		assert.False(t, res.Exported)
		assert.Zero(t, sink.Count())
	})

	t.Run("zero area", func(t *testing.T) {
		c, sink := newLoaded(t)
		c.Dispatch(down(30, 40))
		c.Dispatch(up(30, 40))

		res, err := c.Export()
		require.NoError(t, err)
		assert.False(t, res.Exported)
		assert.Zero(t, sink.Count())
	})
}

func TestCropper_SetImageResets(t *testing.T) {
	c, _ := newLoaded(t)
	selectRect(t, c)

	display := c.SetImage(solidImage(800, 200, color.White))
	assert.Equal(t, geom.Size{W: 400, H: 100}, display)

	snap := c.Snapshot()
	assert.Equal(t, gesture.None, snap.State)
	assert.Nil(t, snap.CropArea)
	assert.Nil(t, snap.Selection)
	assert.Equal(t, geom.R(0, 0, 400, 100), snap.Container)

	c.SetImage(nil)
	assert.False(t, c.Loaded())
}

func TestCropper_Preview(t *testing.T) {
	c := New(Options{ContainerWidth: 400}, nil, nil)

	_, err := c.Preview()
	assert.ErrorIs(t, err, ErrNoImage)

	c.SetImage(solidImage(800, 600, color.White))
	selectRect(t, c)

	res, err := c.Preview()
	require.NoError(t, err)
	assert.Equal(t, 400, res.Width)
	assert.Equal(t, 300, res.Height)
	assert.Equal(t, "image/png", res.MimeType)
}
