// Package gesture turns raw pointer input into rectangle geometry.
//
// Three trackers share one constrained adjuster:
//   - Selection: click-and-drag a new rectangle inside a reference element
//   - Drag: translate an existing rectangle inside its parent
//   - Resize: move the right or bottom edge of a rectangle
//
// Each tracker is an explicit state machine with OnStart, OnMove, OnEnd and
// Cancel methods. Nothing here knows about an event loop: a host feeds
// Event values in, and the trackers write geometry back through the Element
// interfaces. Move and end events are only honoured between a tracker's own
// start and end, which is the equivalent of attaching document listeners on
// pointer-down and detaching them on pointer-up.
//
// # Clamping policy
//
// Every adjusted value is clamped to [0, limit]. Dragging up or left past the
// anchor collapses a selection to zero instead of producing a negative size,
// and a rectangle can never be moved or resized out of its container.
//
// # Cursor
//
// While a gesture is moving, the document cursor and user-select style are
// overridden through an Override. The override is released on every exit
// path: OnEnd, Cancel, or a new OnStart on the same tracker.
//
// Trackers are not safe for concurrent use; they model a single UI thread.
package gesture
