package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session id returned by cropper_open",
	}
}

func pointerEventProperties() map[string]interface{} {
	return map[string]interface{}{
		"type": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"down", "move", "up", "cancel"},
			"description": "Pointer event phase",
		},
		"input": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"mouse", "touch"},
			"description": "Pointer device. Default mouse",
			"default":     "mouse",
		},
		"x": map[string]interface{}{
			"type":        "number",
			"description": "Mouse X in viewport pixels",
		},
		"y": map[string]interface{}{
			"type":        "number",
			"description": "Mouse Y in viewport pixels",
		},
		"touches": map[string]interface{}{
			"type":        "array",
			"description": "Active touch points for touch input. Only the first is used",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{"type": "number"},
					"y": map[string]interface{}{"type": "number"},
				},
				"required": []string{"x", "y"},
			},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	pointerProps := pointerEventProperties()
	pointerProps["session"] = sessionProperty()

	return []Tool{
		// Session lifecycle
		{
			Name:        "cropper_open",
			Description: "Load an image from a file path or http(s) URL into a new cropping session. The image is fitted to the container width; the container height follows the image aspect ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path or http(s) URL of the image",
					},
					"container_width": map[string]interface{}{
						"type":        "number",
						"description": "Displayed width in pixels. Defaults to the configured container width",
					},
				},
				"required": []string{"source"},
			},
		},
		{
			Name:        "cropper_close",
			Description: "Discard a cropping session.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty(),
				},
				"required": []string{"session"},
			},
		},

		// Pointer input
		{
			Name:        "cropper_pointer",
			Description: "Deliver one pointer event. A down on the container starts a new selection; a down on the crop area drags it; a down on its right or bottom edge resizes it. Returns the element that received the event and the resulting state.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": pointerProps,
				"required":   []string{"session", "type"},
			},
		},
		{
			Name:        "cropper_gesture",
			Description: "Play a sequence of pointer events. Any gesture still in progress when the sequence ends, or when an event is rejected, is cancelled and the cursor restored.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty(),
					"events": map[string]interface{}{
						"type":        "array",
						"description": "Pointer events in order",
						"items": map[string]interface{}{
							"type":       "object",
							"properties": pointerEventProperties(),
							"required":   []string{"type"},
						},
					},
				},
				"required": []string{"session", "events"},
			},
		},

		// Inspection
		{
			Name:        "cropper_state",
			Description: "Return the selection state, the selection and crop rectangles in displayed pixels, the document cursor and the display-to-natural scale.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty(),
				},
				"required": []string{"session"},
			},
		},
		{
			Name:        "cropper_preview",
			Description: "Render the session at displayed size as a base64-encoded PNG: the image dimmed outside the crop rectangle, its outline and the resize handles.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty(),
				},
				"required": []string{"session"},
			},
		},

		// Output
		{
			Name:        "cropper_export",
			Description: "Rasterize the crop area at the image's natural resolution and save it as cropped-image.png. Does nothing when no crop area has been selected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty(),
				},
				"required": []string{"session"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
