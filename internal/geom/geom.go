// Package geom holds the small amount of 2D geometry the cropper needs:
// points, offsets, sizes, rectangles and a generic clamp.
//
// All values are float64 on-screen pixels. The origin is the top-left corner,
// X grows rightward and Y grows downward, matching the imaging package.
package geom

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp bounds v to the closed range [lo, hi]. When hi < lo the lower bound
// wins, so a negative upper limit collapses the value to lo.
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Offset {
	return Offset{DX: p.X - q.X, DY: p.Y - q.Y}
}

// Add translates p by o.
func (p Point) Add(o Offset) Point {
	return Point{X: p.X + o.DX, Y: p.Y + o.DY}
}

// Offset returns p as a displacement from the origin.
func (p Point) Offset() Offset {
	return Offset{DX: p.X, DY: p.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Offset is a displacement. The selection tracker uses it as the
// width/height dragged from the anchor, the drag tracker as a translation.
type Offset struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Add returns o + q.
func (o Offset) Add(q Offset) Offset {
	return Offset{DX: o.DX + q.DX, DY: o.DY + q.DY}
}

// Size converts the offset into a width and height.
func (o Offset) Size() Size {
	return Size{W: o.DX, H: o.DY}
}

// Point converts the offset into a point relative to the origin.
func (o Offset) Point() Point {
	return Point{X: o.DX, Y: o.DY}
}

func (o Offset) String() string {
	return fmt.Sprintf("(%g,%g)", o.DX, o.DY)
}

// Size is a width and height.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Offset converts the size into an offset.
func (s Size) Offset() Offset {
	return Offset{DX: s.W, DY: s.H}
}

// Empty reports whether the size has no area.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Scale multiplies both dimensions by k.
func (s Size) Scale(k float64) Size {
	return Size{W: s.W * k, H: s.H * k}
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.W, s.H)
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Min  Point `json:"origin"`
	Size Size  `json:"size"`
}

// R builds a Rect from its left, top, width and height.
func R(x, y, w, h float64) Rect {
	return Rect{Min: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.Min.X }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Min.Y }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Min.X + r.Size.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Min.Y + r.Size.H }

// Contains reports whether p lies inside r. The right and bottom edges are
// inclusive so a pointer resting exactly on the border still hits.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// In reports whether r lies entirely inside outer.
func (r Rect) In(outer Rect) bool {
	return r.Left() >= outer.Left() && r.Top() >= outer.Top() &&
		r.Right() <= outer.Right() && r.Bottom() <= outer.Bottom()
}

// Translate moves r by o.
func (r Rect) Translate(o Offset) Rect {
	return Rect{Min: r.Min.Add(o), Size: r.Size}
}

// Scale multiplies the origin and size of r by k.
func (r Rect) Scale(k float64) Rect {
	return Rect{Min: Point{X: r.Min.X * k, Y: r.Min.Y * k}, Size: r.Size.Scale(k)}
}

// Image rounds r to the nearest whole pixels.
func (r Rect) Image() image.Rectangle {
	x0 := int(math.Round(r.Left()))
	y0 := int(math.Round(r.Top()))
	return image.Rect(x0, y0, x0+int(math.Round(r.Size.W)), y0+int(math.Round(r.Size.H)))
}

func (r Rect) String() string {
	return fmt.Sprintf("%v+%gx%g", r.Min, r.Size.W, r.Size.H)
}
