package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ironsheep/palette-mcp/internal/imaging"
	"github.com/ironsheep/palette-mcp/internal/octree"
)

// Name is reported to clients in the initialize handshake.
const Name = "palette-mcp"

// Config holds server-wide defaults applied when a tool call omits them.
type Config struct {
	// Version is reported in serverInfo.
	Version string

	// MaxDimension is the default subsampling limit for palette tools.
	// Zero or negative disables subsampling.
	MaxDimension int

	// ColorBits is the default octree depth for palette tools (1-8).
	ColorBits int
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Version:      "0.1.0",
		MaxDimension: imaging.DefaultMaxDimension,
		ColorBits:    octree.DefaultColorBits,
	}
}

// Validate reports configuration values the palette tools cannot use.
func (c Config) Validate() error {
	if c.ColorBits < 1 || c.ColorBits > octree.MaxColorBits {
		return fmt.Errorf("%w: color bits %d outside [1,%d]", octree.ErrInvalidConfiguration, c.ColorBits, octree.MaxColorBits)
	}
	return nil
}

// Server handles MCP protocol communication
type Server struct {
	cache  *imaging.ImageCache
	cfg    Config
	logger zerolog.Logger
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance. Logs go to logger, which must not
// write to stdout.
func New(cfg Config, logger zerolog.Logger) *Server {
	return &Server{
		cache:  imaging.NewImageCache(),
		cfg:    cfg,
		logger: logger.With().Str("component", "server").Logger(),
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve processes newline-delimited JSON-RPC requests from r until EOF,
// writing one response per line to w.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	s.logger.Info().
		Str("version", s.cfg.Version).
		Int("max_dimension", s.cfg.MaxDimension).
		Int("color_bits", s.cfg.ColorBits).
		Msg("serving MCP on stdio")

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn().Err(err).Msg("failed to parse request")
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error().Err(err).Str("method", req.Method).Msg("failed to encode response")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	s.logger.Info().Msg("input closed, shutting down")
	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.logger.Debug().Str("method", req.Method).Interface("id", req.ID).Msg("request")

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    Name,
				"version": s.cfg.Version,
			},
		},
	}
}
