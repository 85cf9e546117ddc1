package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Environment variables that provide flag defaults.
const (
	envLogLevel     = "PALETTE_MCP_LOG_LEVEL"
	envMaxDimension = "PALETTE_MCP_MAX_DIMENSION"
	envColorBits    = "PALETTE_MCP_COLOR_BITS"
)

var (
	logLevel     string
	maxDimension int
	colorBits    int

	logger zerolog.Logger
)

// rootCmd serves MCP over stdio when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "palette-mcp",
	Short: "MCP server for image color palette extraction",
	Long: `palette-mcp extracts color palettes from images with octree quantization.

Without a subcommand it serves the Model Context Protocol over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop). Logs go to stderr.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		// Stdout carries the MCP protocol.
		logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := serverConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger.Debug().Str("build_time", BuildTime).Str("commit", GitCommit).Msg("starting")
		srv := server.New(cfg, logger)
		if err := srv.Run(); err != nil {
			logger.Error().Err(err).Msg("server error")
			return err
		}
		return nil
	},
}

func serverConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.Version = Version
	cfg.MaxDimension = maxDimension
	cfg.ColorBits = colorBits
	return cfg
}

// envString returns the value of key, or def when unset.
func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// envInt returns key parsed as an integer, or def when unset or malformed.
func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func init() {
	defaults := server.DefaultConfig()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", envString(envLogLevel, "info"),
		"log level: debug, info, warn, error (env "+envLogLevel+")")
	flags.IntVar(&maxDimension, "max-dimension", envInt(envMaxDimension, defaults.MaxDimension),
		"subsample images so neither side exceeds this before analysis, 0 disables (env "+envMaxDimension+")")
	flags.IntVar(&colorBits, "color-bits", envInt(envColorBits, defaults.ColorBits),
		"octree depth 1-8 (env "+envColorBits+")")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
