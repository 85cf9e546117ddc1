package main

import (
	"encoding/json"
	"fmt"
	"image"
	"io"

	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

var (
	paletteCount int
	paletteBlur  float64
	dominantOnly bool
)

// paletteCmd runs one palette extraction and prints the result as JSON.
var paletteCmd = &cobra.Command{
	Use:   "palette <file|->",
	Short: "Print the octree palette of an image as JSON",
	Long: `Print the octree palette of an image as JSON.

Pass "-" instead of a file to read the encoded image from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := readImage(cmd, args[0])
		if err != nil {
			return err
		}

		opts := imaging.PaletteOptions{
			ColorBits:    colorBits,
			MaxDimension: maxDimension,
			BlurRadius:   paletteBlur,
		}

		var result interface{}
		if dominantOnly {
			result, err = imaging.DominantColor(img, opts)
		} else {
			result, err = imaging.Palette(img, paletteCount, opts)
		}
		if err != nil {
			return err
		}
		logger.Debug().Str("path", args[0]).Int("count", paletteCount).Msg("palette extracted")

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		return nil
	},
}

// readImage loads path from disk, or decodes stdin when path is "-".
func readImage(cmd *cobra.Command, path string) (image.Image, error) {
	if path != "-" {
		return imaging.NewImageCache().Load(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	img, _, err := imaging.DecodeBytes(data)
	return img, err
}

func init() {
	paletteCmd.Flags().IntVarP(&paletteCount, "count", "n", 8, "maximum number of colors")
	paletteCmd.Flags().Float64Var(&paletteBlur, "blur", 0, "Gaussian blur radius applied before analysis")
	paletteCmd.Flags().BoolVar(&dominantOnly, "dominant", false, "print only the single dominant color")
	rootCmd.AddCommand(paletteCmd)
}
