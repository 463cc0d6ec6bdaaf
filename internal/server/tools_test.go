package server

import "testing"

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	want := []string{
		"image_configure",
		"image_load",
		"image_load_base64",
		"image_save",
		"image_resize",
		"image_crop",
		"image_size",
	}
	if len(tools) != len(want) {
		t.Fatalf("Tool count: got %d, want %d", len(tools), len(want))
	}

	seen := map[string]bool{}
	for _, tool := range tools {
		if seen[tool.Name] {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		seen[tool.Name] = true

		if tool.Description == "" {
			t.Errorf("%s: empty description", tool.Name)
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("%s: schema type %v, want object", tool.Name, tool.InputSchema["type"])
		}
	}
	for _, name := range want {
		if !seen[name] {
			t.Errorf("missing tool %s", name)
		}
	}
}

func TestToolDefinitions_RequiredParams(t *testing.T) {
	expected := map[string][]string{
		"image_configure":   {"path"},
		"image_load":        {"filename"},
		"image_load_base64": {"data"},
		"image_resize":      {"width"},
		"image_crop":        {"width", "height"},
	}

	for _, tool := range GetToolDefinitions() {
		want, ok := expected[tool.Name]
		if !ok {
			if _, has := tool.InputSchema["required"]; has {
				t.Errorf("%s: unexpected required list", tool.Name)
			}
			continue
		}

		got, ok := tool.InputSchema["required"].([]string)
		if !ok {
			t.Fatalf("%s: required should be []string", tool.Name)
		}
		if len(got) != len(want) {
			t.Errorf("%s: required got %v, want %v", tool.Name, got, want)
			continue
		}

		props := tool.InputSchema["properties"].(map[string]interface{})
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: required[%d] got %s, want %s", tool.Name, i, got[i], want[i])
			}
			if _, ok := props[want[i]]; !ok {
				t.Errorf("%s: required param %s has no property", tool.Name, want[i])
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
