package colour

import "fmt"

// Pixel is a single non-premultiplied RGBA sample.
type Pixel struct {
	R, G, B, A uint8
}

// RGB returns the colour channels of the pixel.
func (p Pixel) RGB() RGB {
	return RGB{R: p.R, G: p.G, B: p.B}
}

// Filter reports whether a sample should be kept.
type Filter func(r, g, b, a uint8) bool

// Keep applies the filter to a pixel.
func (f Filter) Keep(p Pixel) bool {
	return f(p.R, p.G, p.B, p.A)
}

// KeepAll is a Filter that accepts every sample.
func KeepAll(_, _, _, _ uint8) bool {
	return true
}

// CombineFilters returns the logical AND of filters. Nil entries are ignored
// and an empty list keeps everything.
func CombineFilters(filters ...Filter) Filter {
	active := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}

	switch len(active) {
	case 0:
		return KeepAll
	case 1:
		return active[0]
	}

	return func(r, g, b, a uint8) bool {
		for _, f := range active {
			if !f(r, g, b, a) {
				return false
			}
		}
		return true
	}
}

// FilterOptions holds the thresholds of the built-in pixel filter.
type FilterOptions struct {
	// MinAlpha drops samples whose alpha is below this value.
	MinAlpha uint8 `json:"minAlpha"`

	// MinLightness drops near-black samples with HSL lightness below it.
	MinLightness float64 `json:"minLightness"`

	// MaxLightness drops near-white samples with HSL lightness above it.
	MaxLightness float64 `json:"maxLightness"`

	// GrayMaxSaturation drops samples with saturation below it whose
	// lightness lies within [GrayMinLightness, GrayMaxLightness].
	// Zero disables the gray band.
	GrayMaxSaturation float64 `json:"grayMaxSaturation"`
	GrayMinLightness  float64 `json:"grayMinLightness"`
	GrayMaxLightness  float64 `json:"grayMaxLightness"`
}

// DefaultFilterOptions returns the thresholds used by DefaultFilter.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		MinAlpha:          125,
		MinLightness:      0.03,
		MaxLightness:      0.98,
		GrayMaxSaturation: 0.05,
		GrayMinLightness:  0,
		GrayMaxLightness:  1,
	}
}

// Validate checks that all thresholds are within range.
func (o FilterOptions) Validate() error {
	bounds := []struct {
		name  string
		value float64
	}{
		{"min lightness", o.MinLightness},
		{"max lightness", o.MaxLightness},
		{"gray saturation", o.GrayMaxSaturation},
		{"gray min lightness", o.GrayMinLightness},
		{"gray max lightness", o.GrayMaxLightness},
	}
	for _, b := range bounds {
		if b.value < 0 || b.value > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", b.name, b.value)
		}
	}
	if o.MinLightness > o.MaxLightness {
		return fmt.Errorf("min lightness %g is greater than max lightness %g", o.MinLightness, o.MaxLightness)
	}
	if o.GrayMinLightness > o.GrayMaxLightness {
		return fmt.Errorf("gray min lightness %g is greater than gray max lightness %g", o.GrayMinLightness, o.GrayMaxLightness)
	}
	return nil
}

// NewFilter builds a Filter from the given thresholds.
func NewFilter(o FilterOptions) Filter {
	return func(r, g, b, a uint8) bool {
		if a < o.MinAlpha {
			return false
		}

		l, maxC, minC := lightness(r, g, b)
		if l < o.MinLightness || l > o.MaxLightness {
			return false
		}

		if o.GrayMaxSaturation > 0 && l >= o.GrayMinLightness && l <= o.GrayMaxLightness {
			if saturation(l, maxC, minC) < o.GrayMaxSaturation {
				return false
			}
		}

		return true
	}
}

// DefaultFilter drops transparent, near-white, near-black and gray samples.
var DefaultFilter = NewFilter(DefaultFilterOptions())

// FilterPixels returns the pixels accepted by f, preserving order.
func FilterPixels(pixels []Pixel, f Filter) []Pixel {
	kept := make([]Pixel, 0, len(pixels))
	for _, p := range pixels {
		if f.Keep(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// FilterSwatches returns the swatches accepted by f, treating each as opaque.
func FilterSwatches(swatches []*Swatch, f Filter) []*Swatch {
	kept := make([]*Swatch, 0, len(swatches))
	for _, s := range swatches {
		if s == nil {
			continue
		}
		if f(s.rgb.R, s.rgb.G, s.rgb.B, 255) {
			kept = append(kept, s)
		}
	}
	return kept
}
