// Package cropper assembles the gesture trackers, the layout model and the
// imaging step into an image-cropping widget.
//
// A Cropper owns one container element sized to the displayed image. Pointer
// events go through Dispatch, which hit-tests pointer-down against the
// resize handles, the crop area and the container, in that order, and routes
// the rest of the gesture to whichever tracker accepted it. When a selection
// ends, its rectangle is promoted into a crop area that can then be dragged
// and resized. Export rasterizes the crop area at the image's natural
// resolution and hands it to a download.Downloader.
//
// A Cropper is not safe for concurrent use.
package cropper

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/ironsheep/image-cropper-mcp/internal/download"
	"github.com/ironsheep/image-cropper-mcp/internal/geom"
	"github.com/ironsheep/image-cropper-mcp/internal/gesture"
	"github.com/ironsheep/image-cropper-mcp/internal/imaging"
	"github.com/ironsheep/image-cropper-mcp/internal/layout"
)

// DefaultHandleSize is the thickness of the resize handle strips.
const DefaultHandleSize = 10

// ErrNoImage is returned by operations that need a loaded image.
var ErrNoImage = errors.New("no image loaded")

// Target names the element a gesture is attached to.
type Target string

const (
	TargetNone         Target = ""
	TargetContainer    Target = "container"
	TargetCropArea     Target = "crop-area"
	TargetRightHandle  Target = "handle-right"
	TargetBottomHandle Target = "handle-bottom"
)

// Options configure a Cropper.
type Options struct {
	// ContainerWidth is the width the image is fitted to.
	ContainerWidth float64

	// Origin places the container in viewport coordinates.
	Origin geom.Point

	// HandleSize is the thickness of the resize handles, centred on the
	// crop area's right and bottom edges.
	HandleSize float64

	Preview imaging.PreviewOptions
}

// Cropper is the cropping widget.
type Cropper struct {
	opts Options
	log  *zap.Logger
	sink download.Downloader

	doc       *layout.Document
	container *layout.Box
	cropArea  *layout.Box

	img     image.Image
	natural geom.Size
	display geom.Size

	selection *gesture.Selection
	drag      *gesture.Drag
	resize    map[gesture.Edge]*gesture.Resize

	active gesture.Tracker
	target Target
}

// New returns a cropper with an empty container. sink may be nil, in which
// case exports are produced but not delivered anywhere.
func New(opts Options, sink download.Downloader, log *zap.Logger) *Cropper {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.HandleSize <= 0 {
		opts.HandleSize = DefaultHandleSize
	}
	c := &Cropper{
		opts: opts,
		log:  log,
		sink: sink,
		doc:  layout.NewDocument(),
	}
	c.container = layout.NewRoot("container", opts.Origin, geom.Size{W: opts.ContainerWidth})
	c.selection = gesture.NewSelection(c.container, c.doc)
	return c
}

// SetImage installs a newly loaded source image. The image is fitted to the
// container width and the container takes the displayed height. Any
// selection or crop area from a previous image is dropped.
func (c *Cropper) SetImage(img image.Image) geom.Size {
	c.Abort()
	c.clearCropArea()
	c.selection.Reset()

	c.img = img
	if img == nil {
		c.natural, c.display = geom.Size{}, geom.Size{}
		c.container.SetSize(geom.Size{W: c.opts.ContainerWidth})
		return c.display
	}

	b := img.Bounds()
	c.natural = geom.Size{W: float64(b.Dx()), H: float64(b.Dy())}
	c.display = imaging.FitWidth(b.Size(), c.opts.ContainerWidth)
	c.container.SetSize(geom.Size{W: c.opts.ContainerWidth, H: c.display.H})

	c.log.Debug("Image fitted to container",
		zap.Stringer("natural", c.natural),
		zap.Stringer("display", c.display))
	return c.display
}

// Loaded reports whether an image is installed.
func (c *Cropper) Loaded() bool {
	return c.img != nil
}

// Dispatch feeds one pointer event to the widget and returns the element the
// event was delivered to, or TargetNone when it was ignored.
func (c *Cropper) Dispatch(ev gesture.Event) Target {
	switch ev.Kind {
	case gesture.Down:
		return c.start(ev)
	case gesture.Move:
		if c.active == nil || !c.active.OnMove(ev) {
			return TargetNone
		}
		return c.target
	case gesture.Up, gesture.Cancel:
		if c.active == nil {
			return TargetNone
		}
		target := c.target
		gesture.Handle(c.active, ev)
		c.finish()
		return target
	default:
		return TargetNone
	}
}

func (c *Cropper) start(ev gesture.Event) Target {
	// A down while another gesture is live means its end was lost.
	c.Abort()

	p, ok := ev.Point()
	if !ok {
		return TargetNone
	}
	target, tracker := c.hit(p)
	if tracker == nil {
		return TargetNone
	}
	if target == TargetContainer {
		c.clearCropArea()
	}
	if !tracker.OnStart(ev) {
		return TargetNone
	}

	c.active, c.target = tracker, target
	c.log.Debug("Gesture started", zap.String("target", string(target)), zap.Stringer("event", ev))
	return target
}

// hit finds the innermost element under p. Handles sit on top of the crop
// area, which sits on top of the container. Nothing is hit before an image
// is loaded.
func (c *Cropper) hit(p geom.Point) (Target, gesture.Tracker) {
	if !c.Loaded() {
		return TargetNone, nil
	}
	if c.cropArea != nil {
		b := c.cropArea.Bounds()
		h := c.opts.HandleSize
		if geom.R(b.Right()-h/2, b.Top(), h, b.Size.H).Contains(p) {
			return TargetRightHandle, c.resize[gesture.EdgeRight]
		}
		if geom.R(b.Left(), b.Bottom()-h/2, b.Size.W, h).Contains(p) {
			return TargetBottomHandle, c.resize[gesture.EdgeBottom]
		}
		if b.Contains(p) {
			return TargetCropArea, c.drag
		}
	}
	if c.container.Bounds().Contains(p) {
		return TargetContainer, c.selection
	}
	return TargetNone, nil
}

func (c *Cropper) finish() {
	if c.target == TargetContainer && c.selection.State() == gesture.Selected {
		c.promote()
	}
	c.log.Debug("Gesture ended", zap.String("target", string(c.target)))
	c.active, c.target = nil, TargetNone
}

// Abort ends any gesture in progress through its cancel path, which always
// restores the document cursor.
func (c *Cropper) Abort() {
	if c.active == nil {
		return
	}
	c.active.Cancel()
	c.finish()
}

// promote turns the finished selection into a crop area positioned at the
// selection anchor and sized to the selection offset.
func (c *Cropper) promote() {
	sel := c.selection
	area := c.container.Append("crop-area", geom.Point{}, sel.Offset().Size())
	area.SetTranslation(sel.Anchor().Offset())

	c.cropArea = area
	c.drag = gesture.NewDrag(area, c.doc)
	c.resize = map[gesture.Edge]*gesture.Resize{
		gesture.EdgeRight:  gesture.NewResize(area, gesture.EdgeRight, c.doc),
		gesture.EdgeBottom: gesture.NewResize(area, gesture.EdgeBottom, c.doc),
	}
}

func (c *Cropper) clearCropArea() {
	c.cropArea = nil
	c.drag = nil
	c.resize = nil
}

// CropRect returns the crop area in displayed-image coordinates: its
// translation and size. ok is false until a selection has been made.
func (c *Cropper) CropRect() (r geom.Rect, ok bool) {
	if c.cropArea == nil {
		return geom.Rect{}, false
	}
	return c.cropArea.Local(), true
}

// Style returns the document style the gestures write to.
func (c *Cropper) Style() gesture.Style {
	return c.doc.Style()
}

// Snapshot is the observable widget state.
type Snapshot struct {
	State     gesture.State `json:"state"`
	Gesture   Target        `json:"gesture,omitempty"`
	Style     gesture.Style `json:"style"`
	Container geom.Rect     `json:"container"`
	Selection *geom.Rect    `json:"selection,omitempty"`
	CropArea  *geom.Rect    `json:"crop_area,omitempty"`
	Natural   geom.Size     `json:"natural_size"`
	Display   geom.Size     `json:"display_size"`
	Scale     float64       `json:"scale"`
}

// Snapshot captures the current state.
func (c *Cropper) Snapshot() Snapshot {
	s := Snapshot{
		State:     c.selection.State(),
		Gesture:   c.target,
		Style:     c.doc.Style(),
		Container: c.container.Bounds(),
		Natural:   c.natural,
		Display:   c.display,
		Scale:     imaging.ScaleFactor(c.natural.W, c.display.W),
	}
	if s.State != gesture.None {
		r := c.selection.Rect()
		s.Selection = &r
	}
	if r, ok := c.CropRect(); ok {
		s.CropArea = &r
	}
	return s
}

// ExportResult describes one export. Exported is false when there was
// nothing to export.
type ExportResult struct {
	Exported bool    `json:"exported"`
	Filename string  `json:"filename,omitempty"`
	Location string  `json:"location,omitempty"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	SourceX  int     `json:"source_x,omitempty"`
	SourceY  int     `json:"source_y,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Data     []byte  `json:"-"`
}

// Export rasterizes the crop area at native resolution and delivers it as
// download.DefaultFilename.
//
// Without a loaded image or a crop area, or when the crop area has no area
// in source pixels, Export does nothing and returns a result with Exported
// false and a nil error.
func (c *Cropper) Export() (*ExportResult, error) {
	rect, ok := c.CropRect()
	scale := imaging.ScaleFactor(c.natural.W, c.display.W)
	if c.img == nil || !ok || scale == 0 || imaging.SourceRect(rect, scale).Empty() {
		c.log.Debug("Nothing to export", zap.Bool("loaded", c.img != nil), zap.Bool("selected", ok))
		return &ExportResult{}, nil
	}

	crop, err := imaging.Crop(c.img, rect, c.display.W)
	if err != nil {
		return nil, fmt.Errorf("export crop: %w", err)
	}

	res := &ExportResult{
		Exported: true,
		Filename: download.DefaultFilename,
		Width:    crop.Width,
		Height:   crop.Height,
		SourceX:  crop.SourceX,
		SourceY:  crop.SourceY,
		Scale:    crop.Scale,
		Data:     crop.Data,
	}
	if c.sink != nil {
		loc, err := c.sink.Download(download.DefaultFilename, crop.Data)
		if err != nil {
			return nil, fmt.Errorf("deliver %s: %w", download.DefaultFilename, err)
		}
		res.Location = loc
	}

	c.log.Info("Exported crop",
		zap.String("location", res.Location),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Float64("scale", res.Scale))
	return res, nil
}

// Preview renders the widget at displayed size: the overlay, the crop area
// or in-progress selection, and the resize handles.
func (c *Cropper) Preview() (*imaging.PreviewResult, error) {
	if c.img == nil {
		return nil, ErrNoImage
	}

	var rect *geom.Rect
	handles := false
	if r, ok := c.CropRect(); ok {
		rect, handles = &r, true
	} else if st := c.selection.State(); st == gesture.Clicked || st == gesture.Dragging {
		r := c.selection.Rect()
		rect = &r
	}
	return imaging.RenderPreview(c.img, c.display, rect, handles, c.opts.Preview)
}
