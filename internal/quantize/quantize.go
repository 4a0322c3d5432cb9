// Package quantize reduces a sequence of pixel samples to a bounded set of
// weighted representative colours.
package quantize

import (
	"fmt"

	"github.com/jmylchreest/vibrant/internal/colour"
)

// Quantizer defines the interface for colour quantization algorithms.
type Quantizer interface {
	// Quantize returns at most opts.ColorCount swatches whose populations sum
	// to the number of sampled pixels. Empty input yields no swatches.
	Quantize(pixels []colour.Pixel, opts Options) []*colour.Swatch
}

// Options configures a quantization pass.
type Options struct {
	// ColorCount is the maximum number of swatches. Values below 1 are
	// treated as 1.
	ColorCount int

	// Quality is the sampling stride: 1 visits every pixel, 5 every fifth.
	// Values below 1 are treated as 1.
	Quality int
}

func (o Options) stride() int {
	return max(o.Quality, 1)
}

func (o Options) colorCount() int {
	return max(o.ColorCount, 1)
}

// Algorithm represents the quantization algorithm type.
type Algorithm string

const (
	// AlgorithmMMCQ uses modified median cut over a reduced-depth histogram.
	AlgorithmMMCQ Algorithm = "mmcq"

	// AlgorithmKMeans uses deterministic k-means clustering.
	AlgorithmKMeans Algorithm = "kmeans"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = AlgorithmMMCQ

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmMMCQ,
		AlgorithmKMeans,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// New creates a Quantizer for the specified algorithm.
// An empty algorithm selects DefaultAlgorithm.
func New(alg Algorithm) (Quantizer, error) {
	switch alg {
	case AlgorithmMMCQ, "":
		return NewMMCQ(), nil
	case AlgorithmKMeans:
		return NewKMeans(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// sampled calls fn for every stride-th pixel, starting with the first.
func sampled(pixels []colour.Pixel, stride int, fn func(colour.Pixel)) {
	for i := 0; i < len(pixels); i += stride {
		fn(pixels[i])
	}
}
