package vibrant

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/vibrant/internal/colour"
	"github.com/jmylchreest/vibrant/internal/generator"
	"github.com/jmylchreest/vibrant/internal/quantize"
)

const (
	// DefaultColorCount is the default maximum number of quantized swatches.
	DefaultColorCount = 64

	// DefaultQuality is the default sampling stride.
	DefaultQuality = 5
)

// Options configures a Process call.
type Options struct {
	// ColorCount is the maximum number of swatches the quantizer produces.
	// 0 and 1 both yield at most one swatch.
	ColorCount int

	// Quality is the sampling stride. 1 visits every pixel; 0 is treated as 1.
	Quality int

	// MaxDimension downsizes the image so that its longest side is at most
	// this many pixels. 0 keeps the original size.
	MaxDimension int

	// Filters are combined with AND and applied to pixels and to swatches.
	// Nil selects DefaultFilter; an empty non-nil slice keeps everything.
	Filters []Filter

	// Quantizer selects the quantization algorithm. Empty selects MMCQ.
	Quantizer Algorithm

	// Generator assigns swatches to roles. Nil selects the built-in
	// generator with default options.
	Generator Generator

	// Logger receives debug output. Nil disables logging.
	Logger hclog.Logger
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		ColorCount: DefaultColorCount,
		Quality:    DefaultQuality,
		Quantizer:  quantize.DefaultAlgorithm,
	}
}

// Validate reports every invalid field, wrapped in ErrInvalidOptions.
func (o Options) Validate() error {
	var errs []error
	if o.ColorCount < 0 {
		errs = append(errs, fmt.Errorf("colour count must not be negative, got %d", o.ColorCount))
	}
	if o.Quality < 0 {
		errs = append(errs, fmt.Errorf("quality must not be negative, got %d", o.Quality))
	}
	if o.MaxDimension < 0 {
		errs = append(errs, fmt.Errorf("max dimension must not be negative, got %d", o.MaxDimension))
	}
	if o.Quantizer != "" && !quantize.IsValidAlgorithm(o.Quantizer) {
		errs = append(errs, fmt.Errorf("unknown quantizer %q (valid: %v)", o.Quantizer, quantize.ValidAlgorithms()))
	}
	if g, ok := o.Generator.(*generator.ProfileGenerator); ok {
		if err := g.Options().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("generator: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

func (o Options) filter() Filter {
	if o.Filters == nil {
		return colour.DefaultFilter
	}
	return colour.CombineFilters(o.Filters...)
}

func (o Options) generator() Generator {
	if o.Generator == nil {
		return generator.New(generator.DefaultOptions())
	}
	return o.Generator
}

func (o Options) logger() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}
