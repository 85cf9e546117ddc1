package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_palette").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn().Err(err).Str("tool", params.Name).Msg("tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool executed")

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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Palette Operations
	case "image_palette":
		return s.handleImagePalette(args)
	case "image_dominant_color":
		return s.handleImageDominantColor(args)
	case "image_palette_swatch":
		return s.handleImagePaletteSwatch(args)
	case "image_palette_match":
		return s.handleImagePaletteMatch(args)

	// Analysis Helpers
	case "image_compare_regions":
		return s.handleImageCompareRegions(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Palette Operation Handlers ===

// quantizerArgs are the octree options every palette tool accepts.
// MaxDimension is a pointer so an explicit 0 can disable subsampling.
type quantizerArgs struct {
	ColorBits    int     `json:"color_bits"`
	MaxDimension *int    `json:"max_dimension"`
	BlurRadius   float64 `json:"blur_radius"`
}

// options merges the call's arguments over the server defaults.
func (s *Server) options(q quantizerArgs, region *imaging.Region) imaging.PaletteOptions {
	opts := imaging.PaletteOptions{
		Region:       region,
		ColorBits:    s.cfg.ColorBits,
		MaxDimension: s.cfg.MaxDimension,
		BlurRadius:   q.BlurRadius,
	}
	if q.ColorBits != 0 {
		opts.ColorBits = q.ColorBits
	}
	if q.MaxDimension != nil {
		opts.MaxDimension = *q.MaxDimension
	}
	return opts
}

// imageSource names the image a tool reads: a file on disk, or the encoded
// bytes passed inline as base64.
type imageSource struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

// loadImage resolves src. Inline images are decoded per call and never cached.
func (s *Server) loadImage(src imageSource) (image.Image, error) {
	switch {
	case src.Path != "" && src.ImageBase64 != "":
		return nil, errors.New("provide either path or image_base64, not both")
	case src.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(src.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("invalid image_base64: %w", err)
		}
		img, _, err := imaging.DecodeBytes(data)
		return img, err
	case src.Path != "":
		return s.cache.Load(src.Path)
	default:
		return nil, errors.New("path or image_base64 is required")
	}
}

type imagePaletteArgs struct {
	quantizerArgs
	imageSource
	Count  int             `json:"count"`
	Region *imaging.Region `json:"region,omitempty"`
}

func (s *Server) handleImagePalette(args json.RawMessage) (interface{}, error) {
	var a imagePaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = defaultPaletteCount
	}
	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, err
	}
	return imaging.Palette(img, a.Count, s.options(a.quantizerArgs, a.Region))
}

type imageDominantColorArgs struct {
	quantizerArgs
	imageSource
	Region *imaging.Region `json:"region,omitempty"`
}

func (s *Server) handleImageDominantColor(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.imageSource)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColor(img, s.options(a.quantizerArgs, a.Region))
}

type imagePaletteSwatchArgs struct {
	quantizerArgs
	Path         string          `json:"path"`
	Count        int             `json:"count"`
	Region       *imaging.Region `json:"region,omitempty"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	Proportional bool            `json:"proportional"`
}

// paletteSwatchResult pairs a rendered swatch with the palette it shows.
type paletteSwatchResult struct {
	Palette *imaging.PaletteResult `json:"palette"`
	Swatch  *imaging.SwatchResult  `json:"swatch"`
}

func (s *Server) handleImagePaletteSwatch(args json.RawMessage) (interface{}, error) {
	var a imagePaletteSwatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = defaultPaletteCount
	}
	if a.Width == 0 {
		a.Width = defaultSwatchWidth
	}
	if a.Height == 0 {
		a.Height = defaultSwatchHeight
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	p, err := imaging.Palette(img, a.Count, s.options(a.quantizerArgs, a.Region))
	if err != nil {
		return nil, err
	}
	swatch, err := imaging.RenderSwatch(p.Colors, a.Width, a.Height, a.Proportional)
	if err != nil {
		return nil, err
	}
	return &paletteSwatchResult{Palette: p, Swatch: swatch}, nil
}

type imagePaletteMatchArgs struct {
	quantizerArgs
	Path   string          `json:"path"`
	Color  string          `json:"color"`
	Count  int             `json:"count"`
	Region *imaging.Region `json:"region,omitempty"`
}

func (s *Server) handleImagePaletteMatch(args json.RawMessage) (interface{}, error) {
	var a imagePaletteMatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = defaultPaletteCount
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.MatchPalette(img, a.Color, a.Count, s.options(a.quantizerArgs, a.Region))
}

// === Analysis Helper Handlers ===

type imageCompareRegionsArgs struct {
	quantizerArgs
	Path    string         `json:"path"`
	Region1 imaging.Region `json:"region1"`
	Region2 imaging.Region `json:"region2"`
}

func (s *Server) handleImageCompareRegions(args json.RawMessage) (interface{}, error) {
	var a imageCompareRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CompareRegions(img, a.Region1, a.Region2, s.options(a.quantizerArgs, nil))
}
