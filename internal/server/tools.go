package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Defaults applied by the palette tools when arguments are omitted.
const (
	defaultPaletteCount = 8
	defaultSwatchWidth  = 400
	defaultSwatchHeight = 50
)

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func imageBase64Property() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Base64-encoded image bytes (PNG, JPEG, GIF, BMP, TIFF or WebP). Use instead of path; inline images are not cached",
	}
}

func regionProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
			"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
			"x2": map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
			"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// quantizerProperties are the octree tuning knobs shared by every palette
// tool, merged into each tool's properties.
func quantizerProperties(props map[string]interface{}) map[string]interface{} {
	props["color_bits"] = map[string]interface{}{
		"type":        "integer",
		"description": "Octree depth 1-8. Lower values merge similar colors before reduction. Defaults to the server setting (normally 8)",
		"minimum":     1,
		"maximum":     8,
	}
	props["max_dimension"] = map[string]interface{}{
		"type":        "integer",
		"description": "Subsample so neither side exceeds this many pixels before analysis. 0 analyzes every pixel. Defaults to the server setting (normally 256)",
	}
	props["blur_radius"] = map[string]interface{}{
		"type":        "number",
		"description": "Gaussian blur radius applied before analysis to suppress noise and dithering. Default 0 (no blur)",
		"default":     0,
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and pixel count. The image stays cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Palette Operations
		{
			Name:        "image_palette",
			Description: "Extract a representative color palette using octree quantization. Colors are ranked by how many pixels they represent and include their percentage of the analyzed area.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": quantizerProperties(map[string]interface{}{
					"path":         pathProperty(),
					"image_base64": imageBase64Property(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors to return. Default 8",
						"default":     defaultPaletteCount,
						"minimum":     1,
					},
					"region": regionProperty("Optional region to analyze instead of the whole image"),
				}),
				"required": []string{},
			},
		},
		{
			Name:        "image_dominant_color",
			Description: "Reduce an image, or a region of it, to the single color that best represents it (the average of all analyzed pixels).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": quantizerProperties(map[string]interface{}{
					"path":         pathProperty(),
					"image_base64": imageBase64Property(),
					"region":       regionProperty("Optional region to analyze instead of the whole image"),
				}),
				"required": []string{},
			},
		},
		{
			Name:        "image_palette_swatch",
			Description: "Extract a palette and render it as a horizontal strip of color blocks, returned as base64-encoded PNG alongside the palette itself.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": quantizerProperties(map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors to draw. Default 8",
						"default":     defaultPaletteCount,
						"minimum":     1,
					},
					"region": regionProperty("Optional region to analyze instead of the whole image"),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Swatch width in pixels. Must be at least count unless proportional. Default 400",
						"default":     defaultSwatchWidth,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Swatch height in pixels. Default 50",
						"default":     defaultSwatchHeight,
					},
					"proportional": map[string]interface{}{
						"type":        "boolean",
						"description": "Size each block by its share of pixels instead of equally. Default false",
						"default":     false,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_palette_match",
			Description: "Find which color of an image's palette is perceptually closest (CIEDE2000) to a target hex color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": quantizerProperties(map[string]interface{}{
					"path": pathProperty(),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Target color as hex, e.g. \"#FF8800\" or \"f80\"",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Palette size to match against. Default 8",
						"default":     defaultPaletteCount,
						"minimum":     1,
					},
					"region": regionProperty("Optional region to analyze instead of the whole image"),
				}),
				"required": []string{"path", "color"},
			},
		},

		// Analysis Helpers
		{
			Name:        "image_compare_regions",
			Description: "Compare the dominant colors of two regions of an image and report their perceptual difference (CIEDE2000 delta E). Regions may differ in size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": quantizerProperties(map[string]interface{}{
					"path":    pathProperty(),
					"region1": regionProperty("First region"),
					"region2": regionProperty("Second region"),
				}),
				"required": []string{"path", "region1", "region2"},
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
