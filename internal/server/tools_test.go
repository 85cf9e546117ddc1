package server

import (
	"testing"
)

func toolsByName() map[string]Tool {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}
	return toolMap
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_sample_color",
		"image_palette",
		"image_dominant_color",
		"image_palette_swatch",
		"image_palette_match",
		"image_compare_regions",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}

	toolMap := toolsByName()
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}

			// Every tool works on an image file, or on inline bytes where
			// path is optional.
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			props, _ := tool.InputSchema["properties"].(map[string]interface{})
			hasPath := false
			for _, r := range required {
				if r == "path" {
					hasPath = true
				}
			}
			_, hasInline := props["image_base64"]
			if !hasPath && !hasInline {
				t.Error("Tool should require 'path' or accept 'image_base64'")
			}
			if _, ok := props["path"]; !ok {
				t.Error("Tool should accept 'path'")
			}
		})
	}
}

func TestToolDefinitions_QuantizerOptions(t *testing.T) {
	toolMap := toolsByName()

	for _, name := range []string{
		"image_palette",
		"image_dominant_color",
		"image_palette_swatch",
		"image_palette_match",
		"image_compare_regions",
	} {
		t.Run(name, func(t *testing.T) {
			props, ok := toolMap[name].InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("properties should be a map")
			}
			for _, opt := range []string{"color_bits", "max_dimension", "blur_radius"} {
				if _, ok := props[opt]; !ok {
					t.Errorf("missing %s", opt)
				}
			}
		})
	}
}

func TestToolDefinitions_RegionShape(t *testing.T) {
	props := toolsByName()["image_compare_regions"].InputSchema["properties"].(map[string]interface{})

	for _, key := range []string{"region1", "region2"} {
		region, ok := props[key].(map[string]interface{})
		if !ok {
			t.Fatalf("%s should be a map", key)
		}
		required, ok := region["required"].([]string)
		if !ok || len(required) != 4 {
			t.Errorf("%s should require x1, y1, x2, y2, got %v", key, region["required"])
		}
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"image_palette":        {"count": defaultPaletteCount},
		"image_palette_match":  {"count": defaultPaletteCount},
		"image_palette_swatch": {"count": defaultPaletteCount, "width": defaultSwatchWidth, "height": defaultSwatchHeight, "proportional": false},
	}

	toolMap := toolsByName()
	for toolName, expectedDefaults := range toolDefaults {
		props, ok := toolMap[toolName].InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expected := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}
			if param["default"] != expected {
				t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, param["default"], expected)
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer()

	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
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
