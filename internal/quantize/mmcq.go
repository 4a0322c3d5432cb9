package quantize

import (
	"slices"

	"github.com/jmylchreest/vibrant/internal/colour"
)

const (
	sigBits       = 5
	rShift        = 8 - sigBits
	histogramSize = 1 << (3 * sigBits)
)

// MMCQ implements modified median cut quantization.
type MMCQ struct{}

// NewMMCQ creates a median cut quantizer.
func NewMMCQ() *MMCQ {
	return &MMCQ{}
}

// bin is one histogram bucket. Channel sums are over the exact 8-bit values of
// the pixels that fell into it.
type bin struct {
	r, g, b          uint8 // quantized coordinates
	count            int
	rSum, gSum, bSum int
}

type axis int

const (
	axisR axis = iota
	axisG
	axisB
)

func (b bin) at(a axis) uint8 {
	switch a {
	case axisR:
		return b.r
	case axisG:
		return b.g
	default:
		return b.b
	}
}

// cube is an axis-aligned box in quantized RGB space.
type cube struct {
	bins       []bin
	population int
	lo, hi     [3]uint8
}

// Quantize implements Quantizer.
func (q *MMCQ) Quantize(pixels []colour.Pixel, opts Options) []*colour.Swatch {
	bins := buildHistogram(pixels, opts.stride())
	if len(bins) == 0 {
		return nil
	}

	target := opts.colorCount()
	cubes := []*cube{newCube(bins)}
	for len(cubes) < target {
		i := nextSplit(cubes)
		if i < 0 {
			break
		}
		lower, upper := cubes[i].split()
		cubes[i] = lower
		cubes = append(cubes, upper)
	}

	swatches := make([]*colour.Swatch, 0, len(cubes))
	for _, c := range cubes {
		swatches = append(swatches, c.swatch())
	}
	return swatches
}

// buildHistogram counts sampled pixels per bucket and returns the non-empty
// buckets in index order.
func buildHistogram(pixels []colour.Pixel, stride int) []bin {
	if len(pixels) == 0 {
		return nil
	}

	histogram := make([]bin, histogramSize)
	used := 0
	sampled(pixels, stride, func(p colour.Pixel) {
		rq, gq, bq := p.R>>rShift, p.G>>rShift, p.B>>rShift
		index := int(rq)<<(2*sigBits) | int(gq)<<sigBits | int(bq)
		h := &histogram[index]
		if h.count == 0 {
			h.r, h.g, h.b = rq, gq, bq
			used++
		}
		h.count++
		h.rSum += int(p.R)
		h.gSum += int(p.G)
		h.bSum += int(p.B)
	})

	bins := make([]bin, 0, used)
	for _, h := range histogram {
		if h.count > 0 {
			bins = append(bins, h)
		}
	}
	return bins
}

func newCube(bins []bin) *cube {
	c := &cube{
		bins: bins,
		lo:   [3]uint8{255, 255, 255},
	}
	for _, b := range bins {
		c.population += b.count
		for a := axisR; a <= axisB; a++ {
			v := b.at(a)
			c.lo[a] = min(c.lo[a], v)
			c.hi[a] = max(c.hi[a], v)
		}
	}
	return c
}

// widest returns the axis with the largest extent. Ties prefer R, then G.
func (c *cube) widest() (axis, int) {
	best, extent := axisR, -1
	for a := axisR; a <= axisB; a++ {
		if e := int(c.hi[a]) - int(c.lo[a]); e > extent {
			best, extent = a, e
		}
	}
	return best, extent
}

// canSplit reports whether the cube holds at least two distinct buckets.
func (c *cube) canSplit() bool {
	return len(c.bins) > 1
}

// priority orders cubes for splitting: population times widest extent.
// A splittable cube always has an extent of at least one.
func (c *cube) priority() int {
	_, extent := c.widest()
	return c.population * extent
}

// nextSplit returns the index of the splittable cube with the highest
// priority, or -1 if none can be split. Ties go to the earliest cube.
func nextSplit(cubes []*cube) int {
	best, bestPriority := -1, -1
	for i, c := range cubes {
		if !c.canSplit() {
			continue
		}
		if p := c.priority(); p > bestPriority {
			best, bestPriority = i, p
		}
	}
	return best
}

// split cuts the cube along its widest axis at the boundary that divides its
// population most evenly. Both halves are non-empty.
func (c *cube) split() (*cube, *cube) {
	a, _ := c.widest()

	ordered := slices.Clone(c.bins)
	slices.SortStableFunc(ordered, func(x, y bin) int {
		return int(x.at(a)) - int(y.at(a))
	})

	cut, bestImbalance := -1, 0
	cumulative := 0
	for i := 1; i < len(ordered); i++ {
		cumulative += ordered[i-1].count
		if ordered[i].at(a) == ordered[i-1].at(a) {
			continue
		}
		imbalance := abs(2*cumulative - c.population)
		if cut < 0 || imbalance < bestImbalance {
			cut, bestImbalance = i, imbalance
		}
	}

	// Distinct buckets always differ on the widest axis.
	if cut < 0 {
		cut = len(ordered) / 2
	}

	return newCube(ordered[:cut]), newCube(ordered[cut:])
}

// swatch returns the population-weighted average colour of the cube.
func (c *cube) swatch() *colour.Swatch {
	var rSum, gSum, bSum int
	for _, b := range c.bins {
		rSum += b.rSum
		gSum += b.gSum
		bSum += b.bSum
	}
	n := c.population
	rgb := colour.RGB{
		R: uint8((rSum + n/2) / n),
		G: uint8((gSum + n/2) / n),
		B: uint8((bSum + n/2) / n),
	}
	return colour.MustSwatch(rgb, n)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
