// Package server implements the MCP (Model Context Protocol) server that
// exposes interactive image cropping as tools.
//
// The server keeps any number of cropping sessions. Each session owns one
// cropper.Cropper: an image fitted to a container, a selection tracker and,
// once a selection is made, a crop area that can be dragged and resized.
// Clients drive a session with synthetic pointer events, inspect or preview
// it, and export the crop at the image's natural resolution.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session lifecycle:
//   - cropper_open: Load an image (path or URL) into a new session
//   - cropper_close: Discard a session
//
// Pointer input:
//   - cropper_pointer: Deliver one down/move/up/cancel event
//   - cropper_gesture: Play a sequence of events; a gesture left open is cancelled
//
// Inspection:
//   - cropper_state: Selection state, rectangles, cursor and scale
//   - cropper_preview: Base64 PNG of the widget at displayed size
//
// Output:
//   - cropper_export: Rasterize the crop area as cropped-image.png
//
// # Coordinates
//
// Pointer events are in viewport pixels. The container sits at the
// configured container.left/container.top. Rectangles in results are in
// displayed-image pixels; multiply by scale for source pixels.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses with:
//   - code: -32602 for bad arguments or unknown sessions, -32000 for
//     execution failures such as an unreadable image
//   - message: Human-readable error description
//   - data: The Go error string
//
// Exporting without a selection is not an error: the result reports
// exported=false.
//
// # Usage
//
//	srv := server.New(cfg, logger, version)
//	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
//	    logger.Fatal("server stopped", zap.Error(err))
//	}
package server
