package colour

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Text colour thresholds on luma. Body text switches to black later than
// title text.
const (
	titleTextLumaThreshold = 200
	bodyTextLumaThreshold  = 150
)

// ErrNegativePopulation is returned when a swatch is built with a population below zero.
var ErrNegativePopulation = errors.New("swatch population must not be negative")

// Swatch is a representative colour and the number of pixels it summarises.
// Derived attributes are computed once at construction, so a Swatch is
// immutable and safe to share between goroutines.
type Swatch struct {
	rgb        RGB
	population int

	hsl  HSL
	hex  string
	luma float64
}

// NewSwatch creates a swatch for rgb with the given population.
func NewSwatch(rgb RGB, population int) (*Swatch, error) {
	if population < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativePopulation, population)
	}
	return &Swatch{
		rgb:        rgb,
		population: population,
		hsl:        rgb.HSL(),
		hex:        rgb.Hex(),
		luma:       rgb.Luma(),
	}, nil
}

// MustSwatch is like NewSwatch but panics on a negative population.
func MustSwatch(rgb RGB, population int) *Swatch {
	s, err := NewSwatch(rgb, population)
	if err != nil {
		panic(err)
	}
	return s
}

// RGB returns the swatch colour.
func (s *Swatch) RGB() RGB { return s.rgb }

// Population returns the number of pixels represented by the swatch.
func (s *Swatch) Population() int { return s.population }

// HSL returns the swatch colour in HSL space.
func (s *Swatch) HSL() HSL { return s.hsl }

// Hex returns the swatch colour as "#rrggbb".
func (s *Swatch) Hex() string { return s.hex }

// Luma returns the weighted brightness used to pick text colours.
func (s *Swatch) Luma() float64 { return s.luma }

// TitleTextColor returns white when luma < 200, black otherwise.
func (s *Swatch) TitleTextColor() RGB {
	if s.luma < titleTextLumaThreshold {
		return White
	}
	return Black
}

// BodyTextColor returns white when luma < 150, black otherwise.
func (s *Swatch) BodyTextColor() RGB {
	if s.luma < bodyTextLumaThreshold {
		return White
	}
	return Black
}

// Equal reports whether two swatches have the same colour. Population is ignored.
func (s *Swatch) Equal(other *Swatch) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.rgb == other.rgb
}

// String returns "#rrggbb (population n)".
func (s *Swatch) String() string {
	return fmt.Sprintf("%s (population %d)", s.hex, s.population)
}

// swatchJSON is the serialised form of a swatch.
type swatchJSON struct {
	RGB        [3]uint8 `json:"rgb"`
	Population int      `json:"population"`
}

// MarshalJSON encodes the swatch as {"rgb":[r,g,b],"population":n}.
func (s *Swatch) MarshalJSON() ([]byte, error) {
	return json.Marshal(swatchJSON{
		RGB:        [3]uint8{s.rgb.R, s.rgb.G, s.rgb.B},
		Population: s.population,
	})
}

// UnmarshalJSON decodes the form written by MarshalJSON and recomputes the
// derived attributes.
func (s *Swatch) UnmarshalJSON(data []byte) error {
	var raw swatchJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode swatch: %w", err)
	}
	decoded, err := NewSwatch(RGB{R: raw.RGB[0], G: raw.RGB[1], B: raw.RGB[2]}, raw.Population)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}
