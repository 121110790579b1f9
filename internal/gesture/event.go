package gesture

import (
	"fmt"

	"github.com/ironsheep/image-cropper-mcp/internal/geom"
)

// Kind is the phase of a pointer event.
type Kind int

const (
	// Down is a mouse-down or touch-start.
	Down Kind = iota
	// Move is a mouse-move or touch-move.
	Move
	// Up is a mouse-up or touch-end.
	Up
	// Cancel is an abnormal termination such as touch-cancel or lost capture.
	Cancel
)

var kindNames = map[Kind]string{
	Down:   "down",
	Move:   "move",
	Up:     "up",
	Cancel: "cancel",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a name such as "down" or "move" into a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown pointer event type: %q", s)
}

// Input is the device an event came from.
type Input int

const (
	Mouse Input = iota
	Touch
)

func (i Input) String() string {
	switch i {
	case Mouse:
		return "mouse"
	case Touch:
		return "touch"
	default:
		return fmt.Sprintf("Input(%d)", int(i))
	}
}

// ParseInput converts "mouse" or "touch" into an Input. An empty string
// means mouse.
func ParseInput(s string) (Input, error) {
	switch s {
	case "", "mouse":
		return Mouse, nil
	case "touch":
		return Touch, nil
	default:
		return 0, fmt.Errorf("unknown pointer input: %q", s)
	}
}

// Event is one pointer event in viewport coordinates.
type Event struct {
	Kind  Kind
	Input Input

	// Pos is the mouse position. Ignored for touch input.
	Pos geom.Point

	// Touches holds the active touch points. Only the first is used;
	// multi-touch is not interpreted.
	Touches []geom.Point
}

// MouseEvent builds a mouse event at (x, y).
func MouseEvent(k Kind, x, y float64) Event {
	return Event{Kind: k, Input: Mouse, Pos: geom.Pt(x, y)}
}

// TouchEvent builds a touch event from the given touch points.
func TouchEvent(k Kind, touches ...geom.Point) Event {
	return Event{Kind: k, Input: Touch, Touches: touches}
}

// Point returns the position that drives a gesture. For touch input it is
// the first touch point; ok is false when there is none, which is normal for
// touch-end.
func (e Event) Point() (p geom.Point, ok bool) {
	if e.Input == Touch {
		if len(e.Touches) == 0 {
			return geom.Point{}, false
		}
		return e.Touches[0], true
	}
	return e.Pos, true
}

func (e Event) String() string {
	p, ok := e.Point()
	if !ok {
		return fmt.Sprintf("%s %s", e.Input, e.Kind)
	}
	return fmt.Sprintf("%s %s %v", e.Input, e.Kind, p)
}
