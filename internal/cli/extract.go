package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/vibrant/internal/colour"
	"github.com/jmylchreest/vibrant/internal/generator"
	imageutil "github.com/jmylchreest/vibrant/internal/image"
	"github.com/jmylchreest/vibrant/internal/quantize"
	"github.com/jmylchreest/vibrant/pkg/vibrant"
)

const maxColours = 256

// extractOptions holds the extract command flags.
type extractOptions struct {
	colours      int
	quality      int
	maxDimension int
	quantizer    string
	format       string
	output       string
	preview      bool
	exclusive    bool
	noFallback   bool
	cache        bool
	filter       colour.FilterOptions
}

func newExtractCmd() *cobra.Command {
	o := &extractOptions{filter: colour.DefaultFilterOptions()}

	cmd := &cobra.Command{
		Use:   "extract <image|url>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a six-role colour palette from an image file or HTTP(S) URL.

The image is optionally downscaled, filtered, quantized into up to --colours
representative colours, and each role picks the colour closest to its
saturation and lightness target. Empty roles are synthesized from their
siblings unless --no-fallback is given.

Supported image formats: JPEG, PNG, GIF, WebP, AVIF, BMP, TIFF

Examples:
  # Print the palette as a table
  vibrant extract wallpaper.jpg

  # Output JSON
  vibrant extract --format json wallpaper.jpg

  # CSS custom properties, written to a file
  vibrant extract -f css -o palette.css wallpaper.png

  # Faster extraction on large images
  vibrant extract --max-dimension 256 --quality 10 photo.webp

  # Remote image, cached between runs
  vibrant extract --cache https://example.com/cover.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: o.run,
	}

	o.addFlags(cmd.Flags())
	return cmd
}

func (o *extractOptions) addFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&o.colours, "colours", "c", vibrant.DefaultColorCount, fmt.Sprintf("maximum number of quantized colours (1-%d)", maxColours))
	fs.IntVarP(&o.quality, "quality", "q", vibrant.DefaultQuality, "sampling stride, 1 reads every pixel")
	fs.IntVarP(&o.maxDimension, "max-dimension", "m", 0, "downscale so the longest side is at most this many pixels (0 keeps the original size)")
	fs.StringVarP(&o.quantizer, "quantizer", "a", string(quantize.DefaultAlgorithm), fmt.Sprintf("quantization algorithm %v", quantize.ValidAlgorithms()))
	fs.StringVarP(&o.format, "format", "f", string(FormatText), fmt.Sprintf("output format %v", ValidFormats()))
	fs.StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&o.preview, "preview", false, "show colour previews (default: on when stdout is a terminal)")
	fs.BoolVar(&o.exclusive, "exclusive", false, "use each colour for at most one role")
	fs.BoolVar(&o.noFallback, "no-fallback", false, "leave roles empty instead of synthesizing them")
	fs.BoolVar(&o.cache, "cache", false, "cache downloaded images on disk")

	fs.Uint8Var(&o.filter.MinAlpha, "min-alpha", o.filter.MinAlpha, "drop pixels with alpha below this value")
	fs.Float64Var(&o.filter.MinLightness, "min-lightness", o.filter.MinLightness, "drop pixels darker than this lightness")
	fs.Float64Var(&o.filter.MaxLightness, "max-lightness", o.filter.MaxLightness, "drop pixels lighter than this lightness")
	fs.Float64Var(&o.filter.GrayMaxSaturation, "gray-saturation", o.filter.GrayMaxSaturation, "drop pixels less saturated than this (0 disables)")
}

// vibrantOptions converts the flags into pipeline options.
func (o *extractOptions) vibrantOptions(logger hclog.Logger) (vibrant.Options, error) {
	if o.colours < 1 || o.colours > maxColours {
		return vibrant.Options{}, fmt.Errorf("%w: colours must be between 1 and %d, got %d", vibrant.ErrInvalidOptions, maxColours, o.colours)
	}
	if err := o.filter.Validate(); err != nil {
		return vibrant.Options{}, fmt.Errorf("%w: %w", vibrant.ErrInvalidOptions, err)
	}

	genOpts := generator.DefaultOptions()
	genOpts.Exclusive = o.exclusive
	genOpts.Fallback = !o.noFallback

	opts := vibrant.Options{
		ColorCount:   o.colours,
		Quality:      o.quality,
		MaxDimension: o.maxDimension,
		Filters:      []colour.Filter{colour.NewFilter(o.filter)},
		Quantizer:    quantize.Algorithm(o.quantizer),
		Generator:    generator.New(genOpts),
		Logger:       logger,
	}
	if err := opts.Validate(); err != nil {
		return vibrant.Options{}, err
	}
	return opts, nil
}

func (o *extractOptions) run(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd)
	path := args[0]

	format, err := ParseFormat(o.format)
	if err != nil {
		return err
	}
	opts, err := o.vibrantOptions(logger)
	if err != nil {
		return err
	}
	if err := imageutil.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	logger.Debug("loading image", "path", path, "cache", o.cache)
	loader := imageutil.NewSmartLoader(imageutil.SmartLoaderOptions{Cache: o.cache})
	img, err := loader.LoadContext(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	palette, err := vibrant.FromImage(img, opts)
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}

	preview := o.preview
	if !cmd.Flags().Changed("preview") && o.output == "" {
		if f, ok := cmd.OutOrStdout().(*os.File); ok {
			preview = colour.SupportsANSIColours(f)
		}
	}

	out, err := FormatPalette(&palette, format, preview)
	if err != nil {
		return err
	}

	if o.output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}

	if err := os.WriteFile(o.output, []byte(out), 0o644); err != nil { // #nosec G306 - Output file is meant to be shared
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("palette written", "path", o.output, "filled", palette.Len())
	return nil
}
