// Package server implements the MCP (Model Context Protocol) server for color
// palette extraction.
//
// This package provides a JSON-RPC 2.0 server that exposes the octree color
// quantizer and supporting image operations through the MCP protocol, so AI
// systems can ask precise questions about the colors in an image.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//   - Logs: zerolog output on stderr, never stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//
// Palette Operations:
//   - image_palette: Ranked octree palette with percentages
//   - image_dominant_color: Single representative color
//   - image_palette_swatch: Palette rendered as a PNG strip
//   - image_palette_match: Nearest palette color to a target
//
// Analysis Helpers:
//   - image_compare_regions: Perceptual difference of two regions
//
// Palette tools accept color_bits, max_dimension and blur_radius. Omitted
// values fall back to the server's Config.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	srv := server.New(server.DefaultConfig(), logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal().Err(err).Msg("server stopped")
//	}
package server
