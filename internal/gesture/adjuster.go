package gesture

import (
	"github.com/ironsheep/image-cropper-mcp/internal/geom"
)

// Axes selects which components of an Offset an Adjuster may change.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY

	BothAxes = AxisX | AxisY
)

// LimitFunc returns the upper bound for each axis. The lower bound is
// always zero.
type LimitFunc func() geom.Offset

// Adjuster is the constrained rectangle adjuster shared by every tracker.
//
// Begin records the pointer position and the value being adjusted. Adjust
// then returns base + (pointer - origin), clamped per axis to [0, limit].
// Axes that are not governed keep their base value.
type Adjuster struct {
	axes  Axes
	limit LimitFunc

	origin geom.Point
	base   geom.Offset
}

// NewAdjuster returns an adjuster for the given axes and bound.
func NewAdjuster(axes Axes, limit LimitFunc) Adjuster {
	return Adjuster{axes: axes, limit: limit}
}

// Begin anchors the adjuster at pointer position p with starting value base.
func (a *Adjuster) Begin(p geom.Point, base geom.Offset) {
	a.origin = p
	a.base = base
}

// Base returns the value recorded by Begin.
func (a *Adjuster) Base() geom.Offset {
	return a.base
}

// Adjust returns the clamped value for pointer position p.
func (a *Adjuster) Adjust(p geom.Point) geom.Offset {
	lim := a.limit()
	d := p.Sub(a.origin)
	out := a.base
	if a.axes&AxisX != 0 {
		out.DX = geom.Clamp(a.base.DX+d.DX, 0, lim.DX)
	}
	if a.axes&AxisY != 0 {
		out.DY = geom.Clamp(a.base.DY+d.DY, 0, lim.DY)
	}
	return out
}
