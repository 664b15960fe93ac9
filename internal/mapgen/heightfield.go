package mapgen

import (
	"math"

	"civgen/internal/rng"
)

// Generator selects the top-level world-shape strategy.
type Generator string

const (
	GeneratorFractal  Generator = "fractal"
	GeneratorRandom   Generator = "random"
	GeneratorFracture Generator = "fracture"
	GeneratorIsland   Generator = "island"
	GeneratorFair     Generator = "fair"
)

// HeightField is the 0..HMax elevation array produced by one of the three
// interchangeable strategies (§4.3). It is constructed independently of
// WorldBuffer and copied in by LandBuilder — an explicit dependency struct
// rather than a back-reference into the buffer it will eventually feed.
type HeightField struct {
	Width, Height int
	Values        []int // row-major, 0..HMax
	ShoreLevel    int
	MountainLevel int
}

// BuildHeightField runs the strategy named by generator and derives
// shoreLevel/mountainLevel from landpercent/steepness. It never fails;
// degenerate (constant) inputs produce an all-shore or all-ocean result.
func BuildHeightField(width, height int, landPercent, steepness int, generator Generator, source *rng.Source) *HeightField {
	var raw []float64
	switch generator {
	case GeneratorRandom:
		raw = buildRandomHeights(width, height, source)
	case GeneratorFracture:
		raw = buildFractureHeights(width, height, source)
	default: // fractal, island, fair all start from a fractal base
		raw = buildFractalHeights(width, height, source)
	}

	values := make([]int, len(raw))
	for i, v := range raw {
		values[i] = clampInt(int(v), 0, HMax)
	}

	hf := &HeightField{Width: width, Height: height, Values: values}
	hf.ShoreLevel = PercentileThreshold(values, float64(landPercent))
	hf.MountainLevel = (HMax-hf.ShoreLevel)*(100-steepness)/100 + hf.ShoreLevel
	return hf
}

// ApplyTo copies the field into a WorldBuffer's height map.
func (hf *HeightField) ApplyTo(w *WorldBuffer) {
	copy(w.HeightMap, hf.Values)
}

// At returns the elevation at (x,y), 0 if out of bounds.
func (hf *HeightField) At(x, y int) int {
	if x < 0 || x >= hf.Width || y < 0 || y >= hf.Height {
		return 0
	}
	return hf.Values[y*hf.Width+x]
}

// LocalAverageElevation is the mean elevation over the 7x7 square centered
// at (x,y), clamped at the buffer edges.
func LocalAverageElevation(w *WorldBuffer, x, y int) float64 {
	sum, n := 0, 0
	for dy := -3; dy <= 3; dy++ {
		for dx := -3; dx <= 3; dx++ {
			xx, yy := x+dx, y+dy
			if !w.InBounds(xx, yy) {
				continue
			}
			sum += w.HeightAt(xx, yy)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// --- fractal ---

// buildFractalHeights runs a diamond-square midpoint displacement on the
// smallest (2^n + 1) grid covering width x height, crops to size, and
// smooths once.
func buildFractalHeights(width, height int, source *rng.Source) []float64 {
	size := 1
	for size+1 < width || size+1 < height {
		size *= 2
	}
	size++ // size == 2^n + 1

	grid := diamondSquare(size, source)

	cropped := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cropped[y*width+x] = grid[y*size+x]
		}
	}
	return SmoothGrid(cropped, width, height)
}

func diamondSquare(size int, source *rng.Source) []float64 {
	grid := make([]float64, size*size)
	at := func(x, y int) float64 { return grid[y*size+x] }
	set := func(x, y int, v float64) { grid[y*size+x] = clampFloat(v, 0, HMax) }

	set(0, 0, source.Float64()*HMax)
	set(size-1, 0, source.Float64()*HMax)
	set(0, size-1, source.Float64()*HMax)
	set(size-1, size-1, source.Float64()*HMax)

	roughness := 0.55
	step := size - 1
	scale := float64(HMax) / 2

	for step > 1 {
		half := step / 2

		for y := half; y < size; y += step {
			for x := half; x < size; x += step {
				avg := (at(x-half, y-half) + at(x-half, y+half) + at(x+half, y-half) + at(x+half, y+half)) / 4
				set(x, y, avg+(source.Float64()*2-1)*scale)
			}
		}

		for y := 0; y < size; y += half {
			for x := (y + half) % step; x < size; x += step {
				sum, n := 0.0, 0.0
				if x-half >= 0 {
					sum += at(x-half, y)
					n++
				}
				if x+half < size {
					sum += at(x+half, y)
					n++
				}
				if y-half >= 0 {
					sum += at(x, y-half)
					n++
				}
				if y+half < size {
					sum += at(x, y+half)
					n++
				}
				set(x, y, sum/n+(source.Float64()*2-1)*scale)
			}
		}

		step = half
		scale *= math.Pow(2, -roughness)
	}

	return grid
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- random ---

// buildRandomHeights blends coherent Perlin relief with per-tile random
// jitter, then runs the shared separable smoother — the coherent base
// keeps "random" from degenerating into pure static while still matching
// the per-tile stochastic draw the spec describes.
func buildRandomHeights(width, height int, source *rng.Source) []float64 {
	perlin := NewPerlinGenerator(int64(source.Float64() * 1e9))
	raw := make([]float64, width*height)
	const scale = 0.08
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := perlin.Noise2D(float64(x)*scale, float64(y)*scale) // [-1,1]
			base := (n + 1) / 2 * HMax
			jitter := source.Float64() * HMax * 0.25
			raw[y*width+x] = base*0.75 + jitter
		}
	}
	return SmoothGrid(raw, width, height)
}

// --- fracture ---

// buildFractureHeights scatters numLandmass fracture centers (border
// centers forced to depressions), paints disks of random radius/elevation
// via a Bresenham circle, then smooths.
func buildFractureHeights(width, height int, source *rng.Source) []float64 {
	raw := make([]float64, width*height)

	numLandmass := 20 + 15*int(math.Floor(math.Sqrt(float64(width*height))/10))

	for i := 0; i < numLandmass; i++ {
		var cx, cy int
		var elevation float64
		onBorder := i%7 == 0 // a fraction of centers are forced border depressions
		if onBorder {
			if source.Bool(0.5) {
				cx = source.Intn(width)
				cy = []int{0, height - 1}[boolToIdx(source.Bool(0.5))]
			} else {
				cx = []int{0, width - 1}[boolToIdx(source.Bool(0.5))]
				cy = source.Intn(height)
			}
			elevation = source.Float64() * HMax * 0.2
		} else {
			cx = source.Intn(width)
			cy = source.Intn(height)
			elevation = HMax*0.4 + source.Float64()*HMax*0.6
		}

		radius := 2 + source.Intn(maxInt(3, minInt(width, height)/6))
		paintDisk(raw, width, height, cx, cy, radius, elevation)
	}

	return SmoothGrid(raw, width, height)
}

func boolToIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}

// paintDisk stamps a filled circle of the given elevation using Bresenham's
// circle algorithm to trace the boundary and a horizontal scan to fill it,
// taking the max with any existing value so overlapping fracture centers
// don't cancel each other out.
func paintDisk(grid []float64, width, height, cx, cy, radius int, elevation float64) {
	for dy := -radius; dy <= radius; dy++ {
		y := cy + dy
		if y < 0 || y >= height {
			continue
		}
		// Bresenham-derived half-width of the circle at this scanline.
		dx := int(math.Sqrt(float64(radius*radius - dy*dy)))
		for x := cx - dx; x <= cx+dx; x++ {
			if x < 0 || x >= width {
				continue
			}
			idx := y*width + x
			if elevation > grid[idx] {
				grid[idx] = elevation
			}
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// --- poles ---

// Colatitude returns 0 at the vertical center of the buffer (equator) and
// MaxColatitude at the top/bottom edges (poles).
func Colatitude(y, height int) float64 {
	if height <= 1 {
		return 0
	}
	center := float64(height-1) / 2
	d := math.Abs(float64(y)-center) / center
	return d * MaxColatitude
}

// poleFactor is the scaling applied by NormalizePoles/RenormalizePoles: 1.0
// outside the restrictive polar band (more than 2.5*IceBase colatitude units
// from a pole), ramping linearly down to a 0.3 floor at the pole itself. The
// floor exists so RenormalizePoles's inverse division never blows up near a
// literal zero.
func poleFactor(y, height, temperatureParam int) float64 {
	iceBase := IceBase(temperatureParam)
	threshold := 2.5 * iceBase
	if threshold <= 0 {
		return 1.0
	}
	polarDist := MaxColatitude - Colatitude(y, height)
	if polarDist > threshold {
		return 1.0
	}
	frac := polarDist / threshold
	return 0.3 + 0.7*frac
}

// NormalizePoles pre-scales heights near the map edges down before land
// classification, so pole tiles are biased toward ocean (§4.6 steps 1 & 3).
func NormalizePoles(w *WorldBuffer, temperatureParam int) {
	for y := 0; y < w.Height; y++ {
		f := poleFactor(y, w.Height, temperatureParam)
		if f >= 1 {
			continue
		}
		for x := 0; x < w.Width; x++ {
			w.SetHeightAt(x, y, clampInt(int(float64(w.HeightAt(x, y))*f), 0, HMax))
		}
	}
}

// RenormalizePoles inverts NormalizePoles's scaling, restoring the original
// elevation magnitude near the poles now that land/ocean classification has
// already seen the suppressed values.
func RenormalizePoles(w *WorldBuffer, temperatureParam int) {
	for y := 0; y < w.Height; y++ {
		f := poleFactor(y, w.Height, temperatureParam)
		if f >= 1 {
			continue
		}
		for x := 0; x < w.Width; x++ {
			w.SetHeightAt(x, y, clampInt(int(float64(w.HeightAt(x, y))/f), 0, HMax))
		}
	}
}
