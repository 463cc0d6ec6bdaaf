package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func object(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Configuration
		{
			Name:        "image_configure",
			Description: "Set the image directory. The directory must exist and be writable. File names in other tools are relative to it.",
			InputSchema: object(map[string]interface{}{
				"path": prop("string", "Directory used to load and save images"),
			}, "path"),
		},

		// Loading
		{
			Name:        "image_load",
			Description: "Load an image file from the image directory, replacing the current image. Returns its name, format and dimensions.",
			InputSchema: object(map[string]interface{}{
				"filename": prop("string", "File name relative to the image directory"),
			}, "filename"),
		},
		{
			Name:        "image_load_base64",
			Description: "Load an image from base64 data (optionally a data: URL), replacing the current image. A file name embedded in the image metadata becomes the current name.",
			InputSchema: object(map[string]interface{}{
				"data": prop("string", "Base64 encoded image bytes"),
			}, "data"),
		},

		// Output
		{
			Name:        "image_save",
			Description: "Save the current image. The format follows the file extension. Without a filename the current name is used.",
			InputSchema: object(map[string]interface{}{
				"filename": prop("string", "Target file name relative to the image directory. Optional"),
			}),
		},

		// Transforms
		{
			Name:        "image_resize",
			Description: "Resize the current image with a Lanczos filter. With save_as the resized image is written to that file and the current image is left unchanged.",
			InputSchema: object(map[string]interface{}{
				"width":   prop("integer", "Target width in pixels"),
				"height":  prop("integer", "Target height in pixels. Defaults to width"),
				"blur":    prop("number", "Filter blur factor: >1 softer, <1 sharper. Default 1.0"),
				"save_as": prop("string", "Write the resized image here and keep the original in memory. Optional"),
			}, "width"),
		},
		{
			Name:        "image_crop",
			Description: "Crop the current image to a rectangle. The crop is permanent.",
			InputSchema: object(map[string]interface{}{
				"width":  prop("integer", "Crop width in pixels"),
				"height": prop("integer", "Crop height in pixels"),
				"x":      prop("integer", "Left edge X coordinate (0-based). Default 0"),
				"y":      prop("integer", "Top edge Y coordinate (0-based). Default 0"),
			}, "width", "height"),
		},

		// Information
		{
			Name:        "image_size",
			Description: "Get the width and height of the current image.",
			InputSchema: object(map[string]interface{}{}),
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
