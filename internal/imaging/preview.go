package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/ironsheep/image-cropper-mcp/internal/geom"
)

// PreviewOptions controls how the cropper state is drawn.
type PreviewOptions struct {
	// Dim darkens everything outside the crop rectangle, 0 (none) to 1 (black).
	Dim float64

	// OutlineColor and HandleColor are "#RRGGBB" hex strings. Invalid values
	// fall back to white and a light blue.
	OutlineColor string
	HandleColor  string

	// HandleSize is the side of the square drawn on each resize handle.
	HandleSize int
}

// DefaultPreviewOptions mirror the widget's stock look.
var DefaultPreviewOptions = PreviewOptions{
	Dim:          0.5,
	OutlineColor: "#FFFFFF",
	HandleColor:  "#39F",
	HandleSize:   8,
}

// PreviewResult is a rendered snapshot at displayed size.
type PreviewResult struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

var (
	defaultOutline = color.RGBA{255, 255, 255, 255}
	defaultHandle  = color.RGBA{51, 153, 255, 255}
)

// RenderPreview draws img at its displayed size with the overlay dimming
// everything outside rect. rect is in displayed pixels; nil dims the whole
// image. When handles is set, the right and bottom resize handles are drawn
// on rect's edges.
func RenderPreview(img image.Image, display geom.Size, rect *geom.Rect, handles bool, opts PreviewOptions) (*PreviewResult, error) {
	base := Display(img, display)
	bounds := base.Bounds()

	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, adjust.Brightness(base, -geom.Clamp(opts.Dim, 0, 1)), bounds.Min, draw.Src)

	if rect != nil {
		r := rect.Image().Intersect(bounds)
		draw.Draw(canvas, r, base, r.Min, draw.Src)
		strokeRect(canvas, r, parseColor(opts.OutlineColor, defaultOutline))

		if handles && !r.Empty() {
			fill := parseColor(opts.HandleColor, defaultHandle)
			h := max(opts.HandleSize, 1)
			right := image.Pt(r.Max.X, (r.Min.Y+r.Max.Y)/2)
			bottom := image.Pt((r.Min.X+r.Max.X)/2, r.Max.Y)
			for _, c := range []image.Point{right, bottom} {
				sq := image.Rect(c.X-h/2, c.Y-h/2, c.X-h/2+h, c.Y-h/2+h).Intersect(bounds)
				draw.Draw(canvas, sq, image.NewUniform(fill), image.Point{}, draw.Src)
			}
		}
	}

	data, err := EncodePNG(canvas)
	if err != nil {
		return nil, err
	}
	return &PreviewResult{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		MimeType: "image/png",
		Data:     data,
	}, nil
}

// strokeRect draws a one pixel border just inside r.
func strokeRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Src)
	}
}

// parseColor accepts "#RGB" and "#RRGGBB".
func parseColor(hex string, fallback color.RGBA) color.RGBA {
	if len(hex) == 4 && hex[0] == '#' {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}
}
