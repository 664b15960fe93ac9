package mapgen

// TemperatureField is the two-phase temperature construction of §4.4: a
// continuous per-tile value, then a discrete classification. Built as an
// explicit dependency struct (the re-architecture note's "no duck-typed
// back-reference") rather than storing itself on WorldBuffer.
type TemperatureField struct {
	Width, Height int
	Continuous    []float64 // row-major, equalized into [0.1*MC, 0.9*MC]
	Classes       []Temperature
}

// BuildTemperatureField computes the continuous field (phase 1) and
// classifies it (phase 2). Must run before any climate-gated terrain
// placement (invariant from §4.4/§4.6 step 7).
func BuildTemperatureField(w *WorldBuffer, temperatureParam int) *TemperatureField {
	mc := float64(MaxColatitude)
	n := w.Width * w.Height
	raw := make([]float64, n)

	targetColat := mc * (1 - float64(temperatureParam)/100)

	for y := 0; y < w.Height; y++ {
		colat := Colatitude(y, w.Height)
		baseTemp := mc - colat

		for x := 0; x < w.Width; x++ {
			idx := y*w.Width + x

			elevation := float64(w.HeightAt(x, y))
			elevFactor := 1 - 0.3*clampFloat(elevation/HMax, 0, 1)
			v := baseTemp * elevFactor

			moderation := oceanProximityModeration(w, x, y)
			v = v*(1-moderation) + targetColat*moderation

			raw[idx] = v
		}
	}

	equalized := EqualizeHistogram(raw, 0.1*mc, 0.9*mc)

	coldLevel := ColdLevel(temperatureParam)
	tropicalLevel := TropicalLevel(temperatureParam)
	iceBase := IceBase(temperatureParam)

	classes := make([]Temperature, n)
	for i, v := range equalized {
		switch {
		case v <= iceBase:
			classes[i] = Frozen
		case v <= coldLevel:
			classes[i] = Cold
		case v >= tropicalLevel:
			classes[i] = Tropical
		default:
			classes[i] = Temperate
		}
	}

	return &TemperatureField{Width: w.Width, Height: w.Height, Continuous: equalized, Classes: classes}
}

// oceanProximityModeration returns a 0..0.15 blend weight based on how
// close (x,y) is to a water tile, using the land/ocean classification
// already written by step 2 of LandBuilder. It intentionally doesn't
// depend on OceanSmoother's depth classes, which haven't been computed yet
// at this point in the pipeline.
func oceanProximityModeration(w *WorldBuffer, x, y int) float64 {
	const radius = 3
	best := radius + 1
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			xx, yy := x+dx, y+dy
			if !w.InBounds(xx, yy) {
				continue
			}
			if !w.Tiles[xx][yy].Terrain.IsWater() {
				continue
			}
			d := maxInt(absInt(dx), absInt(dy))
			if d < best {
				best = d
			}
		}
	}
	if best > radius {
		return 0
	}
	return 0.15 * (1 - float64(best)/float64(radius+1))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ApplyTo writes each tile's classified temperature into the buffer.
func (tf *TemperatureField) ApplyTo(w *WorldBuffer) {
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			w.Tiles[x][y].Temperature = tf.Classes[y*w.Width+x]
		}
	}
}

// At returns the classified temperature at (x,y).
func (tf *TemperatureField) At(x, y int) Temperature {
	return tf.Classes[y*tf.Width+x]
}
