// Package generator selects one swatch per palette role by scoring quantized
// swatches against saturation and lightness targets.
package generator

import (
	"errors"
	"fmt"
	"math"

	"github.com/jmylchreest/vibrant/internal/colour"
)

// Generator turns quantized swatches into a palette.
type Generator interface {
	Generate(swatches []*colour.Swatch) colour.Palette
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(swatches []*colour.Swatch) colour.Palette

// Generate implements Generator.
func (f GeneratorFunc) Generate(swatches []*colour.Swatch) colour.Palette {
	return f(swatches)
}

// Options holds the targets, windows and weights used for scoring.
// Lightness values are HSL lightness in [0, 1].
type Options struct {
	TargetDarkLuma float64
	MaxDarkLuma    float64

	MinLightLuma    float64
	TargetLightLuma float64

	MinNormalLuma    float64
	TargetNormalLuma float64
	MaxNormalLuma    float64

	TargetMutesSaturation float64
	MaxMutesSaturation    float64

	TargetVibrantSaturation float64
	MinVibrantSaturation    float64

	WeightSaturation float64
	WeightLuma       float64
	WeightPopulation float64

	// MinScore is the lowest score that may fill a slot.
	MinScore float64

	// Exclusive prevents a swatch from filling more than one role.
	Exclusive bool

	// Fallback synthesizes swatches for slots left empty.
	Fallback bool
}

// DefaultOptions returns the standard scoring configuration.
func DefaultOptions() Options {
	return Options{
		TargetDarkLuma:          0.26,
		MaxDarkLuma:             0.45,
		MinLightLuma:            0.55,
		TargetLightLuma:         0.74,
		MinNormalLuma:           0.3,
		TargetNormalLuma:        0.5,
		MaxNormalLuma:           0.7,
		TargetMutesSaturation:   0.3,
		MaxMutesSaturation:      0.4,
		TargetVibrantSaturation: 1.0,
		MinVibrantSaturation:    0.35,
		WeightSaturation:        3,
		WeightLuma:              6.5,
		WeightPopulation:        0.5,
		MinScore:                0,
		Exclusive:               false,
		Fallback:                true,
	}
}

// Validate checks that every target and window bound lies in [0, 1], that
// windows are ordered and that weights are non-negative.
func (o Options) Validate() error {
	unit := []struct {
		name  string
		value float64
	}{
		{"target dark luma", o.TargetDarkLuma},
		{"max dark luma", o.MaxDarkLuma},
		{"min light luma", o.MinLightLuma},
		{"target light luma", o.TargetLightLuma},
		{"min normal luma", o.MinNormalLuma},
		{"target normal luma", o.TargetNormalLuma},
		{"max normal luma", o.MaxNormalLuma},
		{"target mutes saturation", o.TargetMutesSaturation},
		{"max mutes saturation", o.MaxMutesSaturation},
		{"target vibrant saturation", o.TargetVibrantSaturation},
		{"min vibrant saturation", o.MinVibrantSaturation},
	}
	var errs []error
	for _, u := range unit {
		if u.value < 0 || u.value > 1 || math.IsNaN(u.value) {
			errs = append(errs, fmt.Errorf("%s must be between 0 and 1, got %v", u.name, u.value))
		}
	}
	// Each pair must satisfy lo <= hi.
	ordered := []struct {
		loName, hiName string
		lo, hi         float64
	}{
		{"target dark luma", "max dark luma", o.TargetDarkLuma, o.MaxDarkLuma},
		{"min light luma", "target light luma", o.MinLightLuma, o.TargetLightLuma},
		{"min normal luma", "target normal luma", o.MinNormalLuma, o.TargetNormalLuma},
		{"target normal luma", "max normal luma", o.TargetNormalLuma, o.MaxNormalLuma},
		{"target mutes saturation", "max mutes saturation", o.TargetMutesSaturation, o.MaxMutesSaturation},
		{"min vibrant saturation", "target vibrant saturation", o.MinVibrantSaturation, o.TargetVibrantSaturation},
	}
	for _, w := range ordered {
		if w.lo > w.hi {
			errs = append(errs, fmt.Errorf("%s %v exceeds %s %v", w.loName, w.lo, w.hiName, w.hi))
		}
	}
	if o.WeightSaturation < 0 || o.WeightLuma < 0 || o.WeightPopulation < 0 {
		errs = append(errs, errors.New("weights must not be negative"))
	}
	return errors.Join(errs...)
}

// profile describes what a role is looking for.
type profile struct {
	role colour.Role

	targetSaturation float64
	minSaturation    float64
	maxSaturation    float64

	targetLightness float64
	minLightness    float64
	maxLightness    float64
}

func (p profile) eligible(hsl colour.HSL) bool {
	return hsl.S >= p.minSaturation && hsl.S <= p.maxSaturation &&
		hsl.L >= p.minLightness && hsl.L <= p.maxLightness
}

// profiles returns the six role profiles in processing order.
func (o Options) profiles() []profile {
	vibrant := func(role colour.Role, target, lo, hi float64) profile {
		return profile{
			role:             role,
			targetSaturation: o.TargetVibrantSaturation,
			minSaturation:    o.MinVibrantSaturation,
			maxSaturation:    1,
			targetLightness:  target,
			minLightness:     lo,
			maxLightness:     hi,
		}
	}
	muted := func(role colour.Role, target, lo, hi float64) profile {
		return profile{
			role:             role,
			targetSaturation: o.TargetMutesSaturation,
			minSaturation:    0,
			maxSaturation:    o.MaxMutesSaturation,
			targetLightness:  target,
			minLightness:     lo,
			maxLightness:     hi,
		}
	}

	return []profile{
		vibrant(colour.RoleVibrant, o.TargetNormalLuma, o.MinNormalLuma, o.MaxNormalLuma),
		vibrant(colour.RoleDarkVibrant, o.TargetDarkLuma, 0, o.MaxDarkLuma),
		vibrant(colour.RoleLightVibrant, o.TargetLightLuma, o.MinLightLuma, 1),
		muted(colour.RoleMuted, o.TargetNormalLuma, o.MinNormalLuma, o.MaxNormalLuma),
		muted(colour.RoleDarkMuted, o.TargetDarkLuma, 0, o.MaxDarkLuma),
		muted(colour.RoleLightMuted, o.TargetLightLuma, o.MinLightLuma, 1),
	}
}

// ProfileGenerator is the default Generator.
type ProfileGenerator struct {
	opts     Options
	profiles []profile
}

// New creates a ProfileGenerator. Options are used as given; call
// Options.Validate first when they come from user input.
func New(opts Options) *ProfileGenerator {
	return &ProfileGenerator{
		opts:     opts,
		profiles: opts.profiles(),
	}
}

// Options returns the configuration the generator was built with.
func (g *ProfileGenerator) Options() Options {
	return g.opts
}

// Generate implements Generator.
func (g *ProfileGenerator) Generate(swatches []*colour.Swatch) colour.Palette {
	var palette colour.Palette

	maxPopulation := 0
	for _, s := range swatches {
		if s != nil {
			maxPopulation = max(maxPopulation, s.Population())
		}
	}

	for _, p := range g.profiles {
		if best := g.selectBest(p, swatches, maxPopulation, &palette); best != nil {
			palette.Set(p.role, best)
		}
	}

	if g.opts.Fallback {
		g.fillEmpty(&palette)
	}
	return palette
}

// selectBest returns the highest scoring eligible swatch for p, or nil.
func (g *ProfileGenerator) selectBest(p profile, swatches []*colour.Swatch, maxPopulation int, palette *colour.Palette) *colour.Swatch {
	var best *colour.Swatch
	bestScore := math.Inf(-1)

	for _, s := range swatches {
		if s == nil || !p.eligible(s.HSL()) {
			continue
		}
		if g.opts.Exclusive && palette.Contains(s) {
			continue
		}
		if score := g.score(p, s, maxPopulation); score > bestScore {
			best, bestScore = s, score
		}
	}

	if best == nil || bestScore < g.opts.MinScore {
		return nil
	}
	return best
}

// score weights closeness to the profile targets and relative population.
func (g *ProfileGenerator) score(p profile, s *colour.Swatch, maxPopulation int) float64 {
	hsl := s.HSL()
	score := g.opts.WeightSaturation*(1-math.Abs(hsl.S-p.targetSaturation)) +
		g.opts.WeightLuma*(1-math.Abs(hsl.L-p.targetLightness))
	if maxPopulation > 0 {
		score += g.opts.WeightPopulation * float64(s.Population()) / float64(maxPopulation)
	}
	return score
}

// fillEmpty derives swatches for empty slots from filled ones.
func (g *ProfileGenerator) fillEmpty(palette *colour.Palette) {
	byRole := make(map[colour.Role]profile, len(g.profiles))
	for _, p := range g.profiles {
		byRole[p.role] = p
	}

	derive := func(target, seed colour.Role) {
		if palette.Get(target) != nil {
			return
		}
		if s := palette.Get(seed); s != nil {
			palette.Set(target, synthesize(byRole[target], s))
		}
	}

	if palette.Vibrant == nil && palette.DarkVibrant == nil && palette.LightVibrant == nil {
		derive(colour.RoleDarkVibrant, colour.RoleDarkMuted)
		derive(colour.RoleLightVibrant, colour.RoleLightMuted)
		derive(colour.RoleVibrant, colour.RoleMuted)
	}

	if palette.Vibrant == nil {
		if palette.DarkVibrant != nil {
			derive(colour.RoleVibrant, colour.RoleDarkVibrant)
		} else {
			derive(colour.RoleVibrant, colour.RoleLightVibrant)
		}
	}

	derive(colour.RoleDarkVibrant, colour.RoleVibrant)
	derive(colour.RoleLightVibrant, colour.RoleVibrant)

	derive(colour.RoleMuted, colour.RoleVibrant)
	derive(colour.RoleDarkMuted, colour.RoleDarkVibrant)
	derive(colour.RoleLightMuted, colour.RoleLightVibrant)
}

// synthesize keeps the seed hue, moves lightness to the profile target and
// moves saturation to the target only when it falls outside the window.
func synthesize(p profile, seed *colour.Swatch) *colour.Swatch {
	hsl := seed.HSL()
	s := hsl.S
	if s < p.minSaturation || s > p.maxSaturation {
		s = p.targetSaturation
	}
	return colour.MustSwatch(colour.HSLToRGB(hsl.H, s, p.targetLightness), 0)
}
