package mapgen

// ApplyWetnessField computes per-land-tile wetness (§4.5). Must run after
// RiverGenerator, since river tiles contribute to the proximity bonus.
// LandBuilder.Run calls it right after the river stage, before biome
// transitions; IslandStrategy calls it before its biome transitions and
// terrain-variety pass, which read Wetness.
func ApplyWetnessField(w *WorldBuffer, baseWetness int) {
	const radius = 3
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			tile := &w.Tiles[x][y]
			if tile.Terrain.IsWater() {
				continue
			}
			bonus := wetnessProximityBonus(w, x, y, radius)
			tile.Wetness = clampInt(baseWetness+int(0.3*bonus), 0, 100)
		}
	}
}

func wetnessProximityBonus(w *WorldBuffer, x, y, radius int) float64 {
	bonus := 0.0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if !w.InBounds(xx, yy) {
				continue
			}
			d := maxInt(absInt(dx), absInt(dy))
			if d > radius {
				continue
			}
			tile := w.Tiles[xx][yy]
			if tile.Terrain.IsWater() || tile.RiverMask != 0 {
				falloff := float64(radius+1-d) / float64(radius+1)
				bonus += falloff * 100
			}
		}
	}
	return bonus
}
