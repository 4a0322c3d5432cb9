package vibrant

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/jmylchreest/vibrant/internal/colour"
	imageutil "github.com/jmylchreest/vibrant/internal/image"
	"github.com/jmylchreest/vibrant/internal/quantize"
)

// PixelSource supplies the pixels to extract from. A positive maxDimension
// asks the source to downsize so its longest side fits.
type PixelSource interface {
	Pixels(maxDimension int) ([]Pixel, error)
}

// PixelSlice is a PixelSource over samples already in memory. It ignores
// maxDimension.
type PixelSlice []Pixel

// Pixels implements PixelSource.
func (p PixelSlice) Pixels(int) ([]Pixel, error) {
	return p, nil
}

// Process extracts a palette from src.
// Zero pixels surviving the filter is not an error: every slot is empty.
func Process(src PixelSource, opts Options) (Palette, error) {
	if err := opts.Validate(); err != nil {
		return Palette{}, err
	}
	if src == nil {
		return Palette{}, fmt.Errorf("%w: no pixel source", ErrInvalidImageData)
	}

	logger := opts.logger()
	start := time.Now()

	q, err := quantize.New(opts.Quantizer)
	if err != nil {
		return Palette{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	pixels, err := src.Pixels(opts.MaxDimension)
	if err != nil {
		return Palette{}, fmt.Errorf("%w: %w", ErrInvalidImageData, err)
	}
	logger.Debug("pixels acquired", "count", len(pixels), "max_dimension", opts.MaxDimension)

	filter := opts.filter()
	kept := colour.FilterPixels(pixels, filter)
	logger.Debug("pixels filtered", "kept", len(kept), "dropped", len(pixels)-len(kept))

	swatches := q.Quantize(kept, quantize.Options{ColorCount: opts.ColorCount, Quality: opts.Quality})
	logger.Debug("quantized", "algorithm", algorithmName(opts.Quantizer), "swatches", len(swatches), "quality", opts.Quality)

	swatches = colour.FilterSwatches(swatches, filter)
	logger.Trace("swatches filtered", "kept", len(swatches))

	palette := opts.generator().Generate(swatches)
	logger.Debug("palette generated", "filled", palette.Len(), "elapsed", time.Since(start))

	return palette, nil
}

// FromImage extracts a palette from a decoded image.
func FromImage(img image.Image, opts Options) (Palette, error) {
	if img == nil {
		return Palette{}, fmt.Errorf("%w: image is nil", ErrInvalidImageData)
	}
	return Process(imageutil.NewSource(img), opts)
}

// FromFile decodes the image at path and extracts its palette.
func FromFile(path string, opts Options) (Palette, error) {
	if err := opts.Validate(); err != nil {
		return Palette{}, err
	}
	img, err := imageutil.NewFileLoader().Load(path)
	if err != nil {
		return Palette{}, fmt.Errorf("%w: %w", ErrInvalidImageData, err)
	}
	opts.logger().Debug("image loaded", "path", path, "bounds", img.Bounds().String())
	return FromImage(img, opts)
}

// FromBytes decodes an encoded image and extracts its palette.
func FromBytes(data []byte, opts Options) (Palette, error) {
	if err := opts.Validate(); err != nil {
		return Palette{}, err
	}
	img, err := imageutil.DecodeBytes(data)
	if err != nil {
		return Palette{}, fmt.Errorf("%w: %w", ErrInvalidImageData, err)
	}
	return FromImage(img, opts)
}

// FromURL downloads an image over HTTP(S) and extracts its palette.
func FromURL(ctx context.Context, url string, opts Options) (Palette, error) {
	if err := opts.Validate(); err != nil {
		return Palette{}, err
	}
	if !imageutil.IsURL(url) {
		return Palette{}, fmt.Errorf("%w: not an HTTP(S) URL: %s", ErrInvalidImageData, url)
	}
	img, err := imageutil.NewSmartLoader(imageutil.SmartLoaderOptions{}).LoadContext(ctx, url)
	if err != nil {
		return Palette{}, fmt.Errorf("%w: %w", ErrInvalidImageData, err)
	}
	opts.logger().Debug("image fetched", "url", url, "bounds", img.Bounds().String())
	return FromImage(img, opts)
}

func algorithmName(alg Algorithm) string {
	if alg == "" {
		return string(quantize.DefaultAlgorithm)
	}
	return string(alg)
}
