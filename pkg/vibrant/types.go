// Package vibrant extracts a six-role colour palette from an image.
//
// A typical call decodes an image file and returns its palette:
//
//	palette, err := vibrant.FromFile("wallpaper.jpg", vibrant.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	if s := palette.Vibrant; s != nil {
//		fmt.Println(s.Hex(), s.TitleTextColor().Hex())
//	}
package vibrant

import (
	"github.com/jmylchreest/vibrant/internal/colour"
	"github.com/jmylchreest/vibrant/internal/generator"
	"github.com/jmylchreest/vibrant/internal/quantize"
)

type (
	// Palette holds up to one swatch per role.
	Palette = colour.Palette
	// Swatch is a representative colour and its population.
	Swatch = colour.Swatch
	// Role names a palette slot.
	Role = colour.Role
	// RGB is an 8-bit colour.
	RGB = colour.RGB
	// HSL is a colour in hue, saturation and lightness.
	HSL = colour.HSL
	// Pixel is one RGBA sample.
	Pixel = colour.Pixel
	// Filter decides whether a pixel or swatch is kept.
	Filter = colour.Filter
	// FilterOptions tunes the built-in filter.
	FilterOptions = colour.FilterOptions

	// Algorithm selects a quantizer.
	Algorithm = quantize.Algorithm

	// Generator assigns swatches to roles.
	Generator = generator.Generator
	// GeneratorFunc adapts a function to Generator.
	GeneratorFunc = generator.GeneratorFunc
	// GeneratorOptions configures the built-in generator.
	GeneratorOptions = generator.Options
)

// Palette roles.
const (
	RoleVibrant      = colour.RoleVibrant
	RoleDarkVibrant  = colour.RoleDarkVibrant
	RoleLightVibrant = colour.RoleLightVibrant
	RoleMuted        = colour.RoleMuted
	RoleDarkMuted    = colour.RoleDarkMuted
	RoleLightMuted   = colour.RoleLightMuted
)

// Quantization algorithms.
const (
	AlgorithmMMCQ   = quantize.AlgorithmMMCQ
	AlgorithmKMeans = quantize.AlgorithmKMeans
)

// DefaultFilter drops transparent, near-white, near-black and gray pixels.
var DefaultFilter = colour.DefaultFilter

// Roles returns all roles in processing order.
func Roles() []Role { return colour.Roles() }

// NewSwatch creates a swatch. Population must not be negative.
func NewSwatch(rgb RGB, population int) (*Swatch, error) {
	return colour.NewSwatch(rgb, population)
}

// NewFilter builds a filter from thresholds.
func NewFilter(opts FilterOptions) Filter { return colour.NewFilter(opts) }

// DefaultFilterOptions returns the thresholds behind DefaultFilter.
func DefaultFilterOptions() FilterOptions { return colour.DefaultFilterOptions() }

// CombineFilters returns the logical AND of filters.
func CombineFilters(filters ...Filter) Filter { return colour.CombineFilters(filters...) }

// NewGenerator creates the built-in role generator.
func NewGenerator(opts GeneratorOptions) Generator { return generator.New(opts) }

// DefaultGeneratorOptions returns the built-in generator targets and weights.
func DefaultGeneratorOptions() GeneratorOptions { return generator.DefaultOptions() }

// ValidAlgorithms lists the supported quantizers.
func ValidAlgorithms() []Algorithm { return quantize.ValidAlgorithms() }
