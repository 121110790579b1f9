package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-cropper-mcp/internal/geom"
)

// CropResult is a rasterized crop at native resolution.
type CropResult struct {
	// Width and Height are the output raster size in source pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// SourceX and SourceY locate the output's top-left pixel in the source.
	SourceX int `json:"source_x"`
	SourceY int `json:"source_y"`

	// Scale is the natural-to-displayed ratio the crop was mapped with.
	Scale float64 `json:"scale"`

	MimeType string `json:"mime_type"`

	// Data is the PNG-encoded raster.
	Data []byte `json:"-"`
}

// ScaleFactor returns the uniform factor that maps displayed pixels onto
// natural pixels. It is 0 when either width is unknown.
func ScaleFactor(naturalWidth, displayedWidth float64) float64 {
	if naturalWidth <= 0 || displayedWidth <= 0 {
		return 0
	}
	return naturalWidth / displayedWidth
}

// SourceRect maps a crop rectangle in displayed pixels onto the source image
// and rounds it to whole pixels.
func SourceRect(crop geom.Rect, scale float64) image.Rectangle {
	return crop.Scale(scale).Image()
}

// Rasterize allocates a transparent surface the size of src and copies the
// matching region of img onto it at (0,0). src is in the image's own pixel
// space with (0,0) at the top-left of its bounds; any part of src outside the
// image stays transparent. It returns nil when src has no area.
func Rasterize(img image.Image, src image.Rectangle) *image.NRGBA {
	if src.Empty() {
		return nil
	}
	dst := imaging.New(src.Dx(), src.Dy(), color.Transparent)

	origin := img.Bounds().Min
	abs := src.Add(origin)
	visible := abs.Intersect(img.Bounds())
	if visible.Empty() {
		return dst
	}
	part := imaging.Crop(img, visible)
	return imaging.Paste(dst, part, visible.Min.Sub(abs.Min))
}

// Crop rasterizes the region of img under crop, a rectangle in displayed
// pixels, at native resolution and encodes it as PNG.
//
// The scale factor is naturalWidth / displayedWidth; the source origin is
// the crop origin times the scale and the output size is the crop size times
// the scale, both rounded to the nearest pixel.
//
// # Errors
//
//   - Returns error if displayedWidth is not positive
//   - Returns error if the scaled crop has no area
//   - Returns error if PNG encoding fails
func Crop(img image.Image, crop geom.Rect, displayedWidth float64) (*CropResult, error) {
	scale := ScaleFactor(float64(img.Bounds().Dx()), displayedWidth)
	if scale == 0 {
		return nil, fmt.Errorf("invalid displayed width %g for a %dpx wide image", displayedWidth, img.Bounds().Dx())
	}

	src := SourceRect(crop, scale)
	out := Rasterize(img, src)
	if out == nil {
		return nil, fmt.Errorf("crop region %v is empty at scale %g", crop, scale)
	}

	data, err := EncodePNG(out)
	if err != nil {
		return nil, err
	}

	return &CropResult{
		Width:    src.Dx(),
		Height:   src.Dy(),
		SourceX:  src.Min.X,
		SourceY:  src.Min.Y,
		Scale:    scale,
		MimeType: "image/png",
		Data:     data,
	}, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
