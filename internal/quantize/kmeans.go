package quantize

import (
	"math"
	"math/rand"

	"github.com/jmylchreest/vibrant/internal/colour"
)

// DefaultKMeansSeed seeds centroid initialisation so results are reproducible.
const DefaultKMeansSeed int64 = 0x5eed

// KMeans implements quantization using k-means clustering over the distinct
// sampled colours, each weighted by how often it occurs.
type KMeans struct {
	maxIterations int
	convergence   float64
	seed          int64
}

// NewKMeans creates a KMeans quantizer with default settings.
func NewKMeans() *KMeans {
	return NewKMeansWithSeed(DefaultKMeansSeed)
}

// NewKMeansWithSeed creates a KMeans quantizer with a custom seed.
func NewKMeansWithSeed(seed int64) *KMeans {
	return &KMeans{
		maxIterations: 20,
		convergence:   1.0,
		seed:          seed,
	}
}

// point3D represents a weighted point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
	weight  int
}

// distanceSq calculates the squared Euclidean distance between two points.
func (p point3D) distanceSq(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

// Quantize implements Quantizer.
func (e *KMeans) Quantize(pixels []colour.Pixel, opts Options) []*colour.Swatch {
	points := uniqueColours(pixels, opts.stride())
	if len(points) == 0 {
		return nil
	}

	k := opts.colorCount()

	// Fewer distinct colours than clusters: every colour is its own swatch.
	if len(points) <= k {
		swatches := make([]*colour.Swatch, len(points))
		for i, p := range points {
			rgb := colour.RGB{R: uint8(p.R), G: uint8(p.G), B: uint8(p.B)}
			swatches[i] = colour.MustSwatch(rgb, p.weight)
		}
		return swatches
	}

	rng := rand.New(rand.NewSource(e.seed)) // #nosec G404 - deterministic clustering, not security sensitive
	centroids := e.initializeCentroidsKMeansPlusPlus(rng, points, k)
	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, p := range points {
			nearest := findNearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if changed == 0 {
			break
		}

		newCentroids := recalculateCentroids(rng, points, assignments, centroids)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += math.Sqrt(centroids[i].distanceSq(newCentroids[i]))
		}
		centroids = newCentroids

		if totalMovement/float64(k) < e.convergence {
			break
		}
	}

	// Final assignment against the last centroids.
	for i, p := range points {
		assignments[i] = findNearestCentroid(p, centroids)
	}

	return clustersToSwatches(points, assignments, k)
}

// uniqueColours returns the distinct sampled colours in first-seen order.
func uniqueColours(pixels []colour.Pixel, stride int) []point3D {
	index := make(map[colour.RGB]int)
	var points []point3D
	sampled(pixels, stride, func(px colour.Pixel) {
		rgb := px.RGB()
		if i, ok := index[rgb]; ok {
			points[i].weight++
			return
		}
		index[rgb] = len(points)
		points = append(points, point3D{
			R:      float64(rgb.R),
			G:      float64(rgb.G),
			B:      float64(rgb.B),
			weight: 1,
		})
	})
	return points
}

// initializeCentroidsKMeansPlusPlus picks initial centroids with probability
// proportional to weight times squared distance from the nearest centroid.
func (e *KMeans) initializeCentroidsKMeansPlusPlus(rng *rand.Rand, points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)

	// First centroid: the heaviest colour.
	first := 0
	for i, p := range points {
		if p.weight > points[first].weight {
			first = i
		}
	}
	centroids = append(centroids, points[first])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				minDist = math.Min(minDist, p.distanceSq(c))
			}
			distances[i] = minDist * float64(p.weight)
			total += distances[i]
		}

		// All points coincide with existing centroids.
		if total == 0 {
			break
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target && d > 0 {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

// findNearestCentroid finds the index of the nearest centroid to a point.
func findNearestCentroid(p point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := p.distanceSq(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the weighted mean of its points.
// Empty clusters are re-seeded from a random point.
func recalculateCentroids(rng *rand.Rand, points []point3D, assignments []int, previous []point3D) []point3D {
	k := len(previous)
	sums := make([]point3D, k)
	weights := make([]int, k)

	for i, p := range points {
		c := assignments[i]
		w := float64(p.weight)
		sums[c].R += p.R * w
		sums[c].G += p.G * w
		sums[c].B += p.B * w
		weights[c] += p.weight
	}

	centroids := make([]point3D, k)
	for i := range k {
		if weights[i] == 0 {
			centroids[i] = points[rng.Intn(len(points))]
			continue
		}
		w := float64(weights[i])
		centroids[i] = point3D{R: sums[i].R / w, G: sums[i].G / w, B: sums[i].B / w}
	}
	return centroids
}

// clustersToSwatches emits one swatch per non-empty cluster in cluster order.
func clustersToSwatches(points []point3D, assignments []int, k int) []*colour.Swatch {
	sums := make([]point3D, k)
	weights := make([]int, k)
	for i, p := range points {
		c := assignments[i]
		w := float64(p.weight)
		sums[c].R += p.R * w
		sums[c].G += p.G * w
		sums[c].B += p.B * w
		weights[c] += p.weight
	}

	swatches := make([]*colour.Swatch, 0, k)
	for i := range k {
		if weights[i] == 0 {
			continue
		}
		w := float64(weights[i])
		rgb := colour.RGB{
			R: uint8(math.Round(sums[i].R / w)),
			G: uint8(math.Round(sums[i].G / w)),
			B: uint8(math.Round(sums[i].B / w)),
		}
		swatches = append(swatches, colour.MustSwatch(rgb, weights[i]))
	}
	return swatches
}
