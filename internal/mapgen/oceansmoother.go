package mapgen

import "civgen/internal/rng"

// OceanDepthMax is the cap applied to the distance-derived ocean depth
// score (§4.9 step 1).
const OceanDepthMax = 100

// SmoothOcean assigns coast/ocean/deep_ocean by distance-to-land and then
// runs the 2/3-majority neighbor smoothing pass (C4, §4.9).
func SmoothOcean(w *WorldBuffer, ruleset *TerrainRuleset, source *rng.Source) {
	assignOceanDepth(w, ruleset, source)
	majoritySmoothOcean(w, ruleset)
}

func assignOceanDepth(w *WorldBuffer, ruleset *TerrainRuleset, source *rng.Source) {
	w.OceanDistance = make([]int, w.Width*w.Height)
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			tile := &w.Tiles[x][y]
			if !tile.Terrain.IsWater() {
				w.OceanDistance[y*w.Width+x] = 0
				continue
			}
			dist := chebyshevDistanceToLand(w, x, y, 4)
			w.OceanDistance[y*w.Width+x] = dist

			depth := dist*25 + source.Intn(16)
			if depth > OceanDepthMax {
				depth = OceanDepthMax
			}
			tile.Terrain = closestOceanDepthTerrain(ruleset, depth)
		}
	}
}

// chebyshevDistanceToLand is the bounded Chebyshev distance from (x,y) to
// the nearest non-water tile, capped at cap.
func chebyshevDistanceToLand(w *WorldBuffer, x, y, cap int) int {
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
				if !w.Tiles[xx][yy].Terrain.IsWater() {
					return r
				}
			}
		}
	}
	return cap
}

var oceanDepthTerrains = []Terrain{TerrainOcean, TerrainCoast, TerrainDeepOcean}

func closestOceanDepthTerrain(ruleset *TerrainRuleset, depth int) Terrain {
	best := oceanDepthTerrains[0]
	bestDiff := -1
	for _, t := range oceanDepthTerrains {
		props := ruleset.Properties(t)
		diff := absInt(props[PropOceanDepth] - depth)
		if bestDiff < 0 || diff < bestDiff {
			bestDiff = diff
			best = t
		}
	}
	return best
}

// majoritySmoothOcean adopts a neighbor's ocean terrain whenever at least
// floor(2*8/3) = 5 of a tile's 8 neighbors share a different ocean terrain
// (§4.9 step 2). Reads and writes go through a shadow copy so the pass
// doesn't cascade within a single sweep.
func majoritySmoothOcean(w *WorldBuffer, ruleset *TerrainRuleset) {
	const majority = 5
	type change struct {
		x, y int
		t    Terrain
	}
	var changes []change

	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			cur := w.Tiles[x][y].Terrain
			if !cur.IsOceanBody() {
				continue
			}
			counts := map[Terrain]int{}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					xx, yy := x+dx, y+dy
					if !w.InBounds(xx, yy) {
						continue
					}
					nt := w.Tiles[xx][yy].Terrain
					if nt.IsOceanBody() && nt != cur {
						counts[nt]++
					}
				}
			}
			for t, n := range counts {
				if n >= majority {
					changes = append(changes, change{x, y, t})
					break
				}
			}
		}
	}

	for _, c := range changes {
		w.Tiles[c.x][c.y].Terrain = c.t
	}
	_ = ruleset
}
