package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// twoColorPNG encodes a 4x2 image with five red and three blue pixels.
func twoColorPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.RGBA{255, 0, 0, 255})
		img.Set(x, 1, color.RGBA{0, 0, 255, 255})
	}
	img.Set(0, 1, color.RGBA{255, 0, 0, 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func writeTwoColorPNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "two.png")
	if err := os.WriteFile(path, twoColorPNG(t), 0644); err != nil {
		t.Fatalf("failed to write PNG: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return out.String()
}

func TestEnvInt(t *testing.T) {
	t.Setenv("PALETTE_TEST_INT", " 42 ")
	if got := envInt("PALETTE_TEST_INT", 7); got != 42 {
		t.Errorf("trimmed value: got %d, want 42", got)
	}

	t.Setenv("PALETTE_TEST_INT", "lots")
	if got := envInt("PALETTE_TEST_INT", 7); got != 7 {
		t.Errorf("invalid value: got %d, want fallback 7", got)
	}

	if got := envInt("PALETTE_TEST_UNSET", 7); got != 7 {
		t.Errorf("unset: got %d, want fallback 7", got)
	}
}

func TestEnvString(t *testing.T) {
	t.Setenv("PALETTE_TEST_STR", "debug")
	if got := envString("PALETTE_TEST_STR", "info"); got != "debug" {
		t.Errorf("got %q, want debug", got)
	}

	t.Setenv("PALETTE_TEST_STR", "")
	if got := envString("PALETTE_TEST_STR", "info"); got != "info" {
		t.Errorf("empty: got %q, want fallback info", got)
	}
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	for _, want := range []string{"palette-mcp " + Version, "Git commit: " + GitCommit} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestPaletteCommand(t *testing.T) {
	path := writeTwoColorPNG(t)

	out := execute(t, "palette", path, "--count", "2", "--color-bits", "8", "--dominant=false")

	var result imaging.PaletteResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not a palette result: %v\n%s", err, out)
	}
	if len(result.Colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(result.Colors))
	}
	if result.Colors[0].Hex != "#FF0000" || result.Colors[0].PixelCount != 5 {
		t.Errorf("colors[0]: got %s x%d, want #FF0000 x5", result.Colors[0].Hex, result.Colors[0].PixelCount)
	}
	if result.Colors[1].Hex != "#0000FF" {
		t.Errorf("colors[1]: got %s, want #0000FF", result.Colors[1].Hex)
	}
	if result.TotalPixels != 8 {
		t.Errorf("TotalPixels: got %d, want 8", result.TotalPixels)
	}
}

func TestPaletteCommand_Dominant(t *testing.T) {
	path := writeTwoColorPNG(t)

	out := execute(t, "palette", path, "--dominant", "--color-bits", "8")

	var result imaging.DominantColorResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not a dominant color result: %v\n%s", err, out)
	}
	// (5*255)/8 red, (3*255)/8 blue, truncated.
	want := imaging.RGBColor{R: 159, G: 0, B: 95}
	if result.Color.RGB != want {
		t.Errorf("got %+v, want %+v", result.Color.RGB, want)
	}
}

func TestPaletteCommand_Stdin(t *testing.T) {
	rootCmd.SetIn(bytes.NewReader(twoColorPNG(t)))
	defer rootCmd.SetIn(nil)

	out := execute(t, "palette", "-", "--count", "1", "--color-bits", "8", "--dominant=false")

	var result imaging.PaletteResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not a palette result: %v\n%s", err, out)
	}
	if len(result.Colors) != 1 {
		t.Fatalf("got %d colors, want 1", len(result.Colors))
	}
	if result.Colors[0].PixelCount != 8 {
		t.Errorf("PixelCount: got %d, want 8", result.Colors[0].PixelCount)
	}
}

func TestPaletteCommand_Errors(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer func() { logLevel = "info" }()

	tests := []struct {
		name  string
		args  []string
		stdin string
	}{
		{"missing file", []string{"palette", "/nonexistent/image.png"}, ""},
		{"no argument", []string{"palette"}, ""},
		{"empty stdin", []string{"palette", "-"}, ""},
		{"garbage stdin", []string{"palette", "-"}, "not an image"},
		{"bad log level", []string{"version", "--log-level", "loud"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetIn(strings.NewReader(tt.stdin))
			defer rootCmd.SetIn(nil)
			rootCmd.SetArgs(tt.args)
			if err := rootCmd.Execute(); err == nil {
				t.Errorf("%v should fail", tt.args)
			}
		})
	}
}
