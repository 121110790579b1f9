package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-cropper-mcp/internal/geom"
)

// FitWidth returns the displayed size of an image with the given natural
// size once it is scaled to fill containerWidth. The aspect ratio is kept, so
// the height is containerWidth / (naturalW / naturalH). A zero size is
// returned when any input is not positive.
func FitWidth(natural image.Point, containerWidth float64) geom.Size {
	if natural.X <= 0 || natural.Y <= 0 || containerWidth <= 0 {
		return geom.Size{}
	}
	ratio := float64(natural.X) / float64(natural.Y)
	return geom.Size{W: containerWidth, H: containerWidth / ratio}
}

// Display resamples img to its displayed size.
func Display(img image.Image, size geom.Size) *image.NRGBA {
	r := geom.Rect{Size: size}.Image()
	if r.Empty() {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, r.Dx(), r.Dy(), imaging.Linear)
}
