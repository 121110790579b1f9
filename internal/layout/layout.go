// Package layout is a small retained layout model standing in for a GUI
// toolkit's element tree. It answers the bounding-box queries the gesture
// trackers make and holds the document-wide cursor style they override.
package layout

import (
	"github.com/ironsheep/image-cropper-mcp/internal/geom"
	"github.com/ironsheep/image-cropper-mcp/internal/gesture"
)

// Document carries the global style shared by every gesture.
type Document struct {
	style gesture.Style
}

// NewDocument returns a document with the default cursor.
func NewDocument() *Document {
	return &Document{}
}

// Style returns the current document style.
func (d *Document) Style() gesture.Style {
	return d.style
}

// SetStyle replaces the document style.
func (d *Document) SetStyle(s gesture.Style) {
	d.style = s
}

// Box is an absolutely positioned element. Its bounding box is its position
// inside the parent plus its translation, offset by the parent's own
// bounding box. A root box is positioned in viewport coordinates.
type Box struct {
	name      string
	parent    *Box
	pos       geom.Point
	translate geom.Offset
	size      geom.Size
}

// NewRoot returns a box with no parent at pos in the viewport.
func NewRoot(name string, pos geom.Point, size geom.Size) *Box {
	return &Box{name: name, pos: pos, size: size}
}

// Append creates a child box at pos relative to b.
func (b *Box) Append(name string, pos geom.Point, size geom.Size) *Box {
	return &Box{name: name, parent: b, pos: pos, size: size}
}

// Name identifies the box in logs.
func (b *Box) Name() string {
	return b.name
}

// Bounds returns the viewport bounding box.
func (b *Box) Bounds() geom.Rect {
	r := geom.Rect{Min: b.pos.Add(b.translate), Size: b.size}
	if b.parent != nil {
		r = r.Translate(b.parent.Bounds().Min.Offset())
	}
	return r
}

// Local returns the box relative to its parent, translation included.
func (b *Box) Local() geom.Rect {
	return geom.Rect{Min: b.pos.Add(b.translate), Size: b.size}
}

// Parent returns the parent box, or nil for a root.
func (b *Box) Parent() gesture.Element {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

// Translation returns the transform offset.
func (b *Box) Translation() geom.Offset {
	return b.translate
}

// SetTranslation replaces the transform offset.
func (b *Box) SetTranslation(o geom.Offset) {
	b.translate = o
}

// ComputedSize returns the laid-out width and height.
func (b *Box) ComputedSize() geom.Size {
	return b.size
}

// SetWidth sets the width style.
func (b *Box) SetWidth(w float64) {
	b.size.W = w
}

// SetHeight sets the height style.
func (b *Box) SetHeight(h float64) {
	b.size.H = h
}

// SetSize sets both dimensions.
func (b *Box) SetSize(s geom.Size) {
	b.size = s
}
