package mapgen

import "civgen/internal/rng"

// Biome is the {temperature, wetness} bucket tag BiomeTransitioner groups
// and checks consistency by (§4.12 phase 1, GLOSSARY).
type Biome string

const (
	BiomeTropicalWet Biome = "tropical_wet"
	BiomeTropicalDry Biome = "tropical_dry"
	BiomeTemperateWet Biome = "temperate_wet"
	BiomeTemperate    Biome = "temperate"
	BiomeTemperateDry Biome = "temperate_dry"
	BiomeColdWet      Biome = "cold_wet"
	BiomeColdDry      Biome = "cold_dry"
	BiomeArctic       Biome = "arctic"
)

// ClassifyBiome maps a (temperature, wetness) pair to its biome tag.
func ClassifyBiome(t Temperature, wetness int) Biome {
	wet := wetness >= 50
	switch t {
	case Frozen:
		return BiomeArctic
	case Cold:
		if wet {
			return BiomeColdWet
		}
		return BiomeColdDry
	case Tropical:
		if wet {
			return BiomeTropicalWet
		}
		return BiomeTropicalDry
	default: // Temperate
		if wet {
			return BiomeTemperateWet
		}
		if wetness < 30 {
			return BiomeTemperateDry
		}
		return BiomeTemperate
	}
}

// biomeTerrains lists the terrains considered "compatible" with a biome tag
// for the resampling passes below.
var biomeTerrains = map[Biome][]Terrain{
	BiomeTropicalWet:  {TerrainJungle, TerrainSwamp, TerrainForest},
	BiomeTropicalDry:  {TerrainDesert, TerrainPlains},
	BiomeTemperateWet: {TerrainForest, TerrainSwamp, TerrainGrassland},
	BiomeTemperate:    {TerrainGrassland, TerrainPlains, TerrainForest},
	BiomeTemperateDry: {TerrainPlains, TerrainDesert},
	BiomeColdWet:      {TerrainTundra, TerrainForest},
	BiomeColdDry:      {TerrainTundra, TerrainPlains},
	BiomeArctic:       {TerrainTundra},
}

// clusteringStrength/smoothness/consistency weights (§4.12): fixed
// constants rather than exposed parameters, since the spec ties them to a
// flat probability rather than any of the world-shape inputs.
const (
	clusteringStrength = 1.0
	smoothness         = 1.0
)

// RunBiomeTransitions runs the three-phase post-pass over land tiles (C7,
// §4.12). Each phase commits its edits through a shadow grid so within-
// phase ordering never affects the result.
func RunBiomeTransitions(w *WorldBuffer, ruleset *TerrainRuleset, source *rng.Source) {
	groupBiomes(w, ruleset, source)
	naturalTransitions(w, ruleset, source)
	regionalConsistency(w, ruleset, source)
}

type edit struct {
	x, y int
	t    Terrain
}

func applyEdits(w *WorldBuffer, edits []edit) {
	for _, e := range edits {
		w.Tiles[e.x][e.y].Terrain = e.t
	}
}

// groupBiomes: for land tiles with >=3 same-biome neighbors, with
// probability ~0.15*clusteringStrength adopt the dominant biome-compatible
// terrain among those neighbors (phase 1).
func groupBiomes(w *WorldBuffer, ruleset *TerrainRuleset, source *rng.Source) {
	var edits []edit
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			tile := w.Tiles[x][y]
			if tile.Terrain.IsWater() {
				continue
			}
			biome := ClassifyBiome(tile.Temperature, tile.Wetness)

			counts := map[Terrain]int{}
			sameBiome := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					xx, yy := x+dx, y+dy
					if !w.InBounds(xx, yy) {
						continue
					}
					nb := w.Tiles[xx][yy]
					if nb.Terrain.IsWater() {
						continue
					}
					if ClassifyBiome(nb.Temperature, nb.Wetness) == biome {
						sameBiome++
						counts[nb.Terrain]++
					}
				}
			}
			if sameBiome < 3 {
				continue
			}
			if !source.Bool(0.15 * clusteringStrength) {
				continue
			}

			dominant, ok := dominantCompatible(counts, biome)
			if ok && dominant != tile.Terrain {
				edits = append(edits, edit{x, y, dominant})
			}
		}
	}
	applyEdits(w, edits)
}

func dominantCompatible(counts map[Terrain]int, biome Biome) (Terrain, bool) {
	compatible := map[Terrain]bool{}
	for _, t := range biomeTerrains[biome] {
		compatible[t] = true
	}
	best := Terrain("")
	bestN := 0
	for t, n := range counts {
		if !compatible[t] {
			continue
		}
		if n > bestN {
			bestN = n
			best = t
		}
	}
	return best, bestN > 0
}

// naturalTransitions computes local gradients and swaps terrain across
// steep elevation/climate boundaries (phase 2).
func naturalTransitions(w *WorldBuffer, ruleset *TerrainRuleset, source *rng.Source) {
	var edits []edit
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			tile := w.Tiles[x][y]
			if tile.Terrain.IsWater() {
				continue
			}

			elevGrad, tempGrad, wetGrad := localGradients(w, x, y)

			if elevGrad > 100 && source.Bool(0.1*smoothness) {
				switch tile.Terrain {
				case TerrainMountains:
					edits = append(edits, edit{x, y, TerrainHills})
				case TerrainHills:
					if tile.Temperature == Frozen || tile.Temperature == Cold {
						edits = append(edits, edit{x, y, TerrainTundra})
					} else {
						edits = append(edits, edit{x, y, TerrainGrassland})
					}
				}
				continue
			}

			if tile.Terrain == TerrainDesert && wetGrad > 20 && tile.Wetness > 40 && source.Bool(0.1*smoothness) {
				edits = append(edits, edit{x, y, TerrainPlains})
				continue
			}
			if tile.Terrain == TerrainForest && tempGrad > 0 && tile.Temperature == Tropical && tile.Wetness > 60 && source.Bool(0.1*smoothness) {
				edits = append(edits, edit{x, y, TerrainJungle})
			}
		}
	}
	applyEdits(w, edits)
	_ = ruleset
}

func localGradients(w *WorldBuffer, x, y int) (elev, temp, wet float64) {
	self := w.Tiles[x][y]
	selfElev := w.HeightAt(x, y)
	maxElevDiff, maxTempDiff, maxWetDiff := 0.0, 0.0, 0.0

	for _, nb := range w.Neighbors4(x, y) {
		nbTile := w.Tiles[nb.X][nb.Y]
		if d := absFloat(float64(w.HeightAt(nb.X, nb.Y) - selfElev)); d > maxElevDiff {
			maxElevDiff = d
		}
		if d := absFloat(float64(int(nbTile.Temperature) - int(self.Temperature))); d > maxTempDiff {
			maxTempDiff = d
		}
		if d := absFloat(float64(nbTile.Wetness - self.Wetness)); d > maxWetDiff {
			maxWetDiff = d
		}
	}
	return maxElevDiff, maxTempDiff, maxWetDiff
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// regionalConsistency samples random 3x3/5x5 windows, derives the dominant
// biome for the window average, and with p~0.3 resamples non-compatible
// tiles into biome-valid terrains (phase 3).
func regionalConsistency(w *WorldBuffer, ruleset *TerrainRuleset, source *rng.Source) {
	windows := (w.Width*w.Height)/25 + 1
	var edits []edit

	for i := 0; i < windows; i++ {
		radius := 1
		if source.Bool(0.5) {
			radius = 2
		}
		cx, cy := source.Intn(w.Width), source.Intn(w.Height)

		sumTemp, sumWet, n := 0.0, 0.0, 0
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				xx, yy := cx+dx, cy+dy
				if !w.InBounds(xx, yy) || w.Tiles[xx][yy].Terrain.IsWater() {
					continue
				}
				sumTemp += float64(w.Tiles[xx][yy].Temperature)
				sumWet += float64(w.Tiles[xx][yy].Wetness)
				n++
			}
		}
		if n == 0 {
			continue
		}
		avgWet := int(sumWet / float64(n))
		avgTempClass := nearestTemperatureClass(sumTemp / float64(n))
		biome := ClassifyBiome(avgTempClass, avgWet)
		compatible := map[Terrain]bool{}
		for _, t := range biomeTerrains[biome] {
			compatible[t] = true
		}

		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				xx, yy := cx+dx, cy+dy
				if !w.InBounds(xx, yy) {
					continue
				}
				tile := w.Tiles[xx][yy]
				if tile.Terrain.IsWater() || compatible[tile.Terrain] {
					continue
				}
				if !source.Bool(0.3) {
					continue
				}
				replacement := ruleset.TransformTo(tile.Terrain)
				if compatible[replacement] {
					edits = append(edits, edit{xx, yy, replacement})
				}
			}
		}
	}
	applyEdits(w, edits)
}

func nearestTemperatureClass(avg float64) Temperature {
	classes := []Temperature{Frozen, Cold, Temperate, Tropical}
	best := classes[0]
	bestDiff := -1.0
	for _, c := range classes {
		d := absFloat(float64(c) - avg)
		if bestDiff < 0 || d < bestDiff {
			bestDiff = d
			best = c
		}
	}
	return best
}
