package mapgen

import "civgen/internal/rng"

// PlaceRelief places mountains and hills on unplaced land tiles (C2, §4.7).
// Fracture maps use a distinct two-pass algorithm; every other generator
// uses the shared base decision plus a generator-specific modifier.
func PlaceRelief(w *WorldBuffer, hf *HeightField, ruleset *TerrainRuleset, generator Generator, steepness int, source *rng.Source) {
	if generator == GeneratorFracture {
		placeReliefFracture(w, hf, steepness, source)
		return
	}

	mountainLevel := hf.MountainLevel

	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			if !w.Placed.NotPlaced(x, y) {
				continue
			}
			if w.Tiles[x][y].Terrain.IsWater() {
				continue
			}

			self := w.HeightAt(x, y)
			accept := false
			if self > mountainLevel && (source.Float64() > 0.5 || !terrainIsTooHigh(w, mountainLevel, x, y)) {
				accept = true
			} else if areaIsTooFlat(w, mountainLevel, x, y) {
				accept = true
			}
			if !accept {
				continue
			}

			preferHill := false
			switch generator {
			case GeneratorIsland:
				acceptance := 0.7
				if distanceToCoast(w, x, y, 3) <= 3 {
					acceptance = 0.8
				}
				if source.Float64() > acceptance {
					continue
				}
				preferHill = true
			case GeneratorRandom:
				// no generator-specific modifier — both terrains equally likely
			}

			var terrain Terrain
			if preferHill || source.Float64() < 0.5 {
				terrain = TerrainHills
			} else {
				terrain = TerrainMountains
			}
			_ = ruleset // terrain selection here is positional, not ruleset-weighted
			w.Tiles[x][y].Terrain = terrain
			w.Placed.SetPlaced(x, y)
		}
	}
}

// terrainIsTooHigh reports whether every in-bounds 3x3 neighbor's height,
// plus a margin derived from how far below HMax the mountain level sits,
// still clears the mountain level — a dense high plateau where another
// mountain wouldn't read as relief.
func terrainIsTooHigh(w *WorldBuffer, mountainLevel, x, y int) bool {
	margin := (HMax - mountainLevel) / 5
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			xx, yy := x+dx, y+dy
			if !w.InBounds(xx, yy) {
				continue
			}
			if w.HeightAt(xx, yy)+margin < mountainLevel {
				return false
			}
		}
	}
	return true
}

// areaIsTooFlat reports whether (x,y) needs relief to break up a flat
// region: no nearby peak already provides it, and the tile isn't sitting
// in a local slope.
func areaIsTooFlat(w *WorldBuffer, mountainLevel, x, y int) bool {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			xx, yy := x+dx, y+dy
			if !w.InBounds(xx, yy) {
				continue
			}
			if w.HeightAt(xx, yy) > mountainLevel {
				return false
			}
		}
	}

	self := w.HeightAt(x, y)
	higherAdjacent, higherNonAdjacent := 0, 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if !w.InBounds(xx, yy) {
				continue
			}
			if w.HeightAt(xx, yy) > self {
				if absInt(dx)+absInt(dy) == 1 {
					higherAdjacent++
				} else {
					higherNonAdjacent++
				}
			}
		}
	}
	if higherAdjacent > 0 {
		return false
	}
	if higherNonAdjacent > 2 {
		return false
	}

	localAvg := LocalAverageElevation(w, x, y)
	if float64(self) < localAvg*0.9 {
		return false
	}
	return true
}

// distanceToCoast is the Chebyshev distance from (x,y) to the nearest
// water tile, capped at cap.
func distanceToCoast(w *WorldBuffer, x, y, cap int) int {
	for r := 0; r <= cap; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if maxInt(absInt(dx), absInt(dy)) != r {
					continue
				}
				xx, yy := x+dx, y+dy
				if !w.InBounds(xx, yy) {
					continue
				}
				if w.Tiles[xx][yy].Terrain.IsWater() {
					return r
				}
			}
		}
	}
	return cap + 1
}

// placeReliefFracture is the fracture generator's distinct two-pass
// algorithm (§4.7): a deterministic local-slope pass, then a bounded
// random sprinkle pass until the steepness-derived minimum is reached.
func placeReliefFracture(w *WorldBuffer, hf *HeightField, steepness int, source *rng.Source) {
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			if !w.Placed.NotPlaced(x, y) {
				continue
			}
			if w.Tiles[x][y].Terrain.IsWater() {
				continue
			}
			if distanceToCoast(w, x, y, 1) <= 1 {
				continue // fracture relief strictly skips coastal tiles
			}

			height := w.HeightAt(x, y)
			if height <= hf.ShoreLevel {
				continue
			}
			localAvg := LocalAverageElevation(w, x, y)
			flat := areaIsTooFlat(w, hf.MountainLevel, x, y)

			switch {
			case float64(height) > 1.2*localAvg || (flat && source.Float64() < 0.4):
				w.Tiles[x][y].Terrain = TerrainMountains
				w.Placed.SetPlaced(x, y)
			case float64(height) > 1.1*localAvg || (flat && source.Float64() < 0.4):
				w.Tiles[x][y].Terrain = TerrainHills
				w.Placed.SetPlaced(x, y)
			}
		}
	}

	landArea, mountains := 0, 0
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			if !w.Tiles[x][y].Terrain.IsWater() {
				landArea++
				if w.Tiles[x][y].Terrain == TerrainMountains {
					mountains++
				}
			}
		}
	}
	minMountains := landArea * steepness / 100

	for iter := 0; iter < 50 && mountains < minMountains; iter++ {
		for x := 0; x < w.Width; x++ {
			for y := 0; y < w.Height; y++ {
				if mountains >= minMountains {
					break
				}
				if !w.Placed.NotPlaced(x, y) || w.Tiles[x][y].Terrain.IsWater() || distanceToCoast(w, x, y, 1) <= 1 {
					continue
				}
				if source.Float64() < 0.001 {
					w.Tiles[x][y].Terrain = TerrainMountains
					w.Placed.SetPlaced(x, y)
					mountains++
				} else if source.Float64() < 0.002 {
					w.Tiles[x][y].Terrain = TerrainHills
					w.Placed.SetPlaced(x, y)
				}
			}
		}
	}
}
