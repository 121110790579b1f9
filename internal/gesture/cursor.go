package gesture

// Cursor is a host cursor affordance.
type Cursor string

const (
	CursorDefault   Cursor = ""
	CursorCrosshair Cursor = "crosshair"
	CursorMove      Cursor = "move"
	CursorColResize Cursor = "col-resize"
	CursorRowResize Cursor = "row-resize"
)

// Style is the global document style a gesture overrides.
type Style struct {
	Cursor Cursor `json:"cursor"`
	// NoSelect suppresses text selection while a gesture is moving.
	NoSelect bool `json:"no_select"`
}

// Styler is the part of the host document gestures write to.
type Styler interface {
	Style() Style
	SetStyle(Style)
}

// Override is a scoped cursor override. Acquire it when a gesture starts
// moving and Release it when the gesture ends; Release restores whatever
// style was in place at Acquire and is safe to call more than once.
type Override struct {
	doc   Styler
	saved Style
	held  bool
}

// Acquire sets the document cursor to c and suppresses text selection.
// A nil document yields an override that does nothing.
func Acquire(doc Styler, c Cursor) *Override {
	o := &Override{doc: doc}
	if doc == nil {
		return o
	}
	o.saved = doc.Style()
	o.held = true
	doc.SetStyle(Style{Cursor: c, NoSelect: true})
	return o
}

// Held reports whether the override is still in effect.
func (o *Override) Held() bool {
	return o != nil && o.held
}

// Release restores the saved style.
func (o *Override) Release() {
	if o == nil || !o.held {
		return
	}
	o.held = false
	o.doc.SetStyle(o.saved)
}
