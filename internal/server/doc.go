// Package server exposes an imaging.Handle as MCP (Model Context Protocol)
// tools over JSON-RPC 2.0.
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
//   - image_configure: Bind the image directory
//   - image_load: Load a file from the image directory
//   - image_load_base64: Load base64 image data
//   - image_save: Save the current image
//   - image_resize: Resize in place, or write a resized copy with save_as
//   - image_crop: Crop the current image
//   - image_size: Report width and height
//
// # State
//
// The server drives a single Handle. Requests are processed strictly in
// order, one at a time, so the handle never sees concurrent calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000. When the failure comes from the handle, data is a ToolError with
// the numeric code (3001-3007), its symbolic kind, and the message.
package server
