package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/image-process/internal/config"
	"github.com/ironsheep/image-process/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_resize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolError is the data attached to a failed tools/call response when the
// failure comes from the image handle.
type ToolError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// Handle failures carry a ToolError as data, anything else the error string.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Debug().Err(err).Str("tool", params.Name).Msg("tool failed")

		var ierr *imaging.Error
		if errors.As(err, &ierr) {
			return s.errorResponse(req.ID, -32000, "Tool execution failed", ToolError{
				Code:    int(ierr.Code),
				Kind:    ierr.Code.String(),
				Message: ierr.Error(),
			})
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_configure":
		return s.handleImageConfigure(args)

	case "image_load":
		return s.handleImageLoad(args)
	case "image_load_base64":
		return s.handleImageLoadBase64(args)

	case "image_save":
		return s.handleImageSave(args)

	case "image_resize":
		return s.handleImageResize(args)
	case "image_crop":
		return s.handleImageCrop(args)

	case "image_size":
		return s.handleImageSize(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
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

// unmarshalArgs decodes tool arguments, treating missing arguments as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}

// ImageState describes the handle after a tool call.
type ImageState struct {
	Name   string `json:"name,omitempty"`
	Format string `json:"format,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) state() *ImageState {
	size := s.handle.Size()
	return &ImageState{
		Name:   s.handle.Name(),
		Format: s.handle.Format(),
		Width:  size.Width,
		Height: size.Height,
	}
}

// === Configuration ===

type imageConfigureArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageConfigure(args json.RawMessage) (interface{}, error) {
	var a imageConfigureArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	cfg := config.NewPathConfig(a.Path)
	if err := s.handle.BindConfig(cfg); err != nil {
		return nil, err
	}
	return map[string]string{"path": cfg.Path()}, nil
}

// === Loading ===

type imageLoadArgs struct {
	Filename string `json:"filename"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.handle.LoadFile(a.Filename); err != nil {
		return nil, err
	}
	return s.state(), nil
}

type imageLoadBase64Args struct {
	Data string `json:"data"`
}

func (s *Server) handleImageLoadBase64(args json.RawMessage) (interface{}, error) {
	var a imageLoadBase64Args
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.handle.LoadBase64(a.Data); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// === Output ===

type imageSaveArgs struct {
	Filename string `json:"filename"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.handle.Save(a.Filename); err != nil {
		return nil, err
	}

	saved := a.Filename
	if saved == "" {
		saved = s.handle.Name()
	}
	return map[string]string{"saved": saved}, nil
}

// === Transforms ===

type imageResizeArgs struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Blur   float64 `json:"blur"`
	SaveAs string  `json:"save_as"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Blur == 0 {
		a.Blur = s.blur
	}

	target := imaging.Size{Width: a.Width, Height: a.Height}
	if err := s.handle.Resize(target, a.Blur, a.SaveAs); err != nil {
		return nil, err
	}
	return s.state(), nil
}

type imageCropArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	size := imaging.Size{Width: a.Width, Height: a.Height}
	if err := s.handle.Crop(size, imaging.Origin{X: a.X, Y: a.Y}); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// === Information ===

func (s *Server) handleImageSize(args json.RawMessage) (interface{}, error) {
	size := s.handle.Size()
	return &size, nil
}
