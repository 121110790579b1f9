package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ironsheep/image-cropper-mcp/internal/cropper"
	"github.com/ironsheep/image-cropper-mcp/internal/geom"
	"github.com/ironsheep/image-cropper-mcp/internal/gesture"
	"github.com/ironsheep/image-cropper-mcp/internal/imaging"
)

// errInvalidArgs marks tool errors caused by the caller's arguments. They
// are reported with JSON-RPC code -32602 rather than -32000.
var errInvalidArgs = errors.New("invalid arguments")

func invalidArgs(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidArgs, fmt.Sprintf(format, a...))
}

// session is one open cropper. Tool calls on the same session serialize.
type session struct {
	mu     sync.Mutex
	id     string
	info   *imaging.ImageInfo
	widget *cropper.Cropper
}

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "cropper_open", "cropper_export").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument errors return code -32602; other tool failures return -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("Tool failed", zap.String("tool", params.Name), zap.Error(err))
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session lifecycle
	case "cropper_open":
		return s.handleOpen(ctx, args)
	case "cropper_close":
		return s.handleClose(args)

	// Pointer input
	case "cropper_pointer":
		return s.handlePointer(args)
	case "cropper_gesture":
		return s.handleGesture(args)

	// Inspection
	case "cropper_state":
		return s.handleState(args)
	case "cropper_preview":
		return s.handlePreview(args)

	// Output
	case "cropper_export":
		return s.handleExport(args)

	default:
		return nil, invalidArgs("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return invalidArgs("%v", err)
	}
	return nil
}

// lookup returns the session named id, locked. The caller must unlock it.
func (s *Server) lookup(id string) (*session, error) {
	if id == "" {
		return nil, invalidArgs("session is required")
	}
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, invalidArgs("unknown session: %s", id)
	}
	sess.mu.Lock()
	return sess, nil
}

// === Session Lifecycle Handlers ===

type openArgs struct {
	Source         string  `json:"source"`
	ContainerWidth float64 `json:"container_width"`
}

type openResult struct {
	Session     string             `json:"session"`
	Image       *imaging.ImageInfo `json:"image"`
	DisplaySize geom.Size          `json:"display_size"`
	Container   geom.Rect          `json:"container"`
	Scale       float64            `json:"scale"`
}

func (s *Server) handleOpen(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a openArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Source == "" {
		return nil, invalidArgs("source is required")
	}
	if a.ContainerWidth < 0 {
		return nil, invalidArgs("container_width must be positive, got %g", a.ContainerWidth)
	}
	if a.ContainerWidth == 0 {
		a.ContainerWidth = s.cfg.Container.Width
	}

	img, info, err := imaging.LoadImageInfo(ctx, s.cache, a.Source)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	c := cropper.New(cropper.Options{
		ContainerWidth: a.ContainerWidth,
		Origin:         geom.Pt(s.cfg.Container.Left, s.cfg.Container.Top),
		HandleSize:     s.cfg.Handle.Size,
		Preview: imaging.PreviewOptions{
			Dim:          s.cfg.Preview.OverlayDim,
			OutlineColor: s.cfg.Preview.OutlineColor,
			HandleColor:  s.cfg.Preview.HandleColor,
			HandleSize:   s.cfg.Preview.HandleSize,
		},
	}, s.sink, s.log.With(zap.String("session", id)))
	display := c.SetImage(img)

	s.mu.Lock()
	s.sessions[id] = &session{id: id, info: info, widget: c}
	s.mu.Unlock()

	s.log.Info("Session opened",
		zap.String("session", id),
		zap.String("source", a.Source),
		zap.Stringer("display", display))

	snap := c.Snapshot()
	return &openResult{
		Session:     id,
		Image:       info,
		DisplaySize: display,
		Container:   snap.Container,
		Scale:       snap.Scale,
	}, nil
}

type sessionArgs struct {
	Session string `json:"session"`
}

func (s *Server) handleClose(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.lookup(a.Session)
	if err != nil {
		return nil, err
	}
	sess.widget.Abort()
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, a.Session)
	s.mu.Unlock()

	s.log.Info("Session closed", zap.String("session", a.Session))
	return map[string]interface{}{"closed": true, "session": a.Session}, nil
}

// === Pointer Input Handlers ===

type pointerEvent struct {
	Type    string       `json:"type"`
	Input   string       `json:"input"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Touches []geom.Point `json:"touches"`
}

func (p pointerEvent) event() (gesture.Event, error) {
	kind, err := gesture.ParseKind(p.Type)
	if err != nil {
		return gesture.Event{}, invalidArgs("%v", err)
	}
	input, err := gesture.ParseInput(p.Input)
	if err != nil {
		return gesture.Event{}, invalidArgs("%v", err)
	}
	if input == gesture.Touch {
		return gesture.TouchEvent(kind, p.Touches...), nil
	}
	return gesture.MouseEvent(kind, p.X, p.Y), nil
}

type pointerArgs struct {
	Session string `json:"session"`
	pointerEvent
}

type pointerResult struct {
	DeliveredTo cropper.Target   `json:"delivered_to"`
	State       cropper.Snapshot `json:"state"`
}

func (s *Server) handlePointer(args json.RawMessage) (interface{}, error) {
	var a pointerArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	ev, err := a.event()
	if err != nil {
		return nil, err
	}

	sess, err := s.lookup(a.Session)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	target := sess.widget.Dispatch(ev)
	return &pointerResult{DeliveredTo: target, State: sess.widget.Snapshot()}, nil
}

type gestureArgs struct {
	Session string         `json:"session"`
	Events  []pointerEvent `json:"events"`
}

type gestureResult struct {
	DeliveredTo []cropper.Target `json:"delivered_to"`
	State       cropper.Snapshot `json:"state"`
}

func (s *Server) handleGesture(args json.RawMessage) (interface{}, error) {
	var a gestureArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	sess, err := s.lookup(a.Session)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	targets := make([]cropper.Target, 0, len(a.Events))
	for i, pe := range a.Events {
		ev, err := pe.event()
		if err != nil {
			sess.widget.Abort()
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		targets = append(targets, sess.widget.Dispatch(ev))
	}

	// No gesture outlives the call.
	sess.widget.Abort()
	return &gestureResult{DeliveredTo: targets, State: sess.widget.Snapshot()}, nil
}

// === Inspection Handlers ===

type stateResult struct {
	Session string             `json:"session"`
	Image   *imaging.ImageInfo `json:"image"`
	cropper.Snapshot
}

func (s *Server) handleState(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.lookup(a.Session)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	return &stateResult{Session: sess.id, Image: sess.info, Snapshot: sess.widget.Snapshot()}, nil
}

type imageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	MimeType    string `json:"mime_type"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.lookup(a.Session)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	res, err := sess.widget.Preview()
	if err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return &imageResult{
		Width:       res.Width,
		Height:      res.Height,
		MimeType:    res.MimeType,
		ImageBase64: base64.StdEncoding.EncodeToString(res.Data),
	}, nil
}

// === Output Handlers ===

type exportResult struct {
	*cropper.ExportResult
	ImageBase64 string `json:"image_base64,omitempty"`
}

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.lookup(a.Session)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	res, err := sess.widget.Export()
	if err != nil {
		return nil, err
	}
	out := &exportResult{ExportResult: res}
	if res.Exported && s.cfg.Output.Inline {
		out.ImageBase64 = base64.StdEncoding.EncodeToString(res.Data)
	}
	return out, nil
}
