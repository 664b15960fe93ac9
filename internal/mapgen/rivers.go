package mapgen

import "civgen/internal/rng"

// GenerateRivers grows river networks from randomly chosen non-mountain
// land tiles not yet on a river, downhill to water, bounded by the river-percent budget (C6, §4.11).
// Each accepted path sets RiverMask bits along its length; ties in
// elevation are broken by RNG, and mountains are never routed through.
func GenerateRivers(w *WorldBuffer, ruleset *TerrainRuleset, riverPct float64, source *rng.Source) {
	landTiles := countLandTiles(w)
	target := int(riverPct / 100 * float64(landTiles))
	if target <= 0 {
		return
	}

	placed := 0
	maxAttempts := target * 20
	for attempt := 0; attempt < maxAttempts && placed < target; attempt++ {
		x, y := source.Intn(w.Width), source.Intn(w.Height)
		tile := &w.Tiles[x][y]
		if tile.Terrain.IsWater() || tile.Terrain == TerrainMountains {
			continue
		}
		if tile.RiverMask != 0 {
			continue
		}

		n := traceRiver(w, ruleset, x, y, source)
		placed += n
	}
}

// traceRiver walks downhill from (sx,sy), setting RiverMask bits between
// consecutive tiles, until it reaches water or gets stuck at a local
// minimum (no strictly-lower, non-mountain neighbor). Returns the number of
// steps that set an outgoing river bit; a tile already on a river is
// counted again when the path crosses it.
func traceRiver(w *WorldBuffer, ruleset *TerrainRuleset, sx, sy int, source *rng.Source) int {
	const maxLength = 512
	x, y := sx, sy
	newTiles := 0

	for step := 0; step < maxLength; step++ {
		neighbors := w.Neighbors4(x, y)
		if len(neighbors) == 0 {
			break
		}

		cur := w.HeightAt(x, y)
		var candidates []NeighborDir
		lowest := cur
		for _, nb := range neighbors {
			nbTerrain := w.Tiles[nb.X][nb.Y].Terrain
			if nbTerrain == TerrainMountains {
				continue
			}
			h := w.HeightAt(nb.X, nb.Y)
			if h < lowest {
				lowest = h
				candidates = candidates[:0]
				candidates = append(candidates, nb)
			} else if h == lowest && h < cur {
				candidates = append(candidates, nb)
			}
		}
		if len(candidates) == 0 {
			break // local minimum: no strictly-downhill non-mountain neighbor
		}

		choice := candidates[source.Intn(len(candidates))]
		w.Tiles[x][y].RiverMask = w.Tiles[x][y].RiverMask.With(choice.Dir)
		opposite := oppositeDir(choice.Dir)
		destTerrain := w.Tiles[choice.X][choice.Y].Terrain
		if destTerrain.IsWater() || ruleset.CanHaveRiver(destTerrain) {
			w.Tiles[choice.X][choice.Y].RiverMask = w.Tiles[choice.X][choice.Y].RiverMask.With(opposite)
		}

		if w.Tiles[x][y].RiverMask != 0 {
			newTiles++
		}

		if destTerrain.IsWater() {
			break
		}
		x, y = choice.X, choice.Y
	}

	return newTiles
}

func oppositeDir(d RiverDir) RiverDir {
	switch d {
	case RiverNorth:
		return RiverSouth
	case RiverSouth:
		return RiverNorth
	case RiverEast:
		return RiverWest
	default:
		return RiverEast
	}
}
