// Package colour provides colour-space conversions, swatches, palettes and
// pixel filters used by the palette extraction pipeline.
package colour

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Luma weights. The green weight is 598, not the broadcast 587, so the three
// weights sum to 1011. Kept as-is for output compatibility.
const (
	lumaWeightR = 299
	lumaWeightG = 598
	lumaWeightB = 114
	lumaDivisor = 1000
)

// RGB represents a color in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Common text colours returned by Swatch.TitleTextColor and Swatch.BodyTextColor.
var (
	White = RGB{R: 255, G: 255, B: 255}
	Black = RGB{R: 0, G: 0, B: 0}
)

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return RGBToHex(rgb.R, rgb.G, rgb.B)
}

// HSL returns the colour in HSL space.
func (rgb RGB) HSL() HSL {
	return RGBToHSL(rgb.R, rgb.G, rgb.B)
}

// Luma returns the weighted brightness of the colour.
func (rgb RGB) Luma() float64 {
	return Luma(rgb.R, rgb.G, rgb.B)
}

func (rgb RGB) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// HSL represents a colour in HSL space.
// H is in degrees [0, 360), S and L are in [0, 1].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// String returns the HSL colour as "hsl(h, s%, l%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", c.H, c.S*100, c.L*100)
}

// RGBToHSL converts 8-bit RGB to HSL using the max/min channel formula.
func RGBToHSL(r, g, b uint8) HSL {
	h, s, l := RGB{R: r, G: g, B: b}.toColorful().Hsl()
	if h >= 360 {
		h -= 360
	}
	return HSL{H: h, S: s, L: l}
}

// HSLToRGB converts HSL to 8-bit RGB. Out-of-range inputs are clamped.
// h is hue (0-360), s is saturation (0-1), l is lightness (0-1).
func HSLToRGB(h, s, l float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// RGBToHex formats 8-bit channels as "#rrggbb".
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Luma returns (299r + 598g + 114b) / 1000.
// The result can exceed 255 for saturated greens; see the weight constants.
func Luma(r, g, b uint8) float64 {
	sum := lumaWeightR*int(r) + lumaWeightG*int(g) + lumaWeightB*int(b)
	return float64(sum) / lumaDivisor
}

// lightness returns the HSL lightness of the channels without computing hue.
func lightness(r, g, b uint8) (l float64, maxC, minC int) {
	maxC = max(int(r), int(g), int(b))
	minC = min(int(r), int(g), int(b))
	return float64(maxC+minC) / 510.0, maxC, minC
}

// saturation returns the HSL saturation for the given channel extremes.
func saturation(l float64, maxC, minC int) float64 {
	if maxC == minC {
		return 0
	}
	delta := float64(maxC - minC)
	if l < 0.5 {
		return delta / float64(maxC+minC)
	}
	return delta / float64(510-maxC-minC)
}

func clamp01(v float64) float64 {
	return max(0.0, min(1.0, v))
}
