package mapgen

import (
	"testing"

	"civgen/internal/rng"
)

func slopedLandBuffer(w, h int) *WorldBuffer {
	buf := NewWorldBuffer(w, h, "seed", "fractal")
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			buf.Tiles[x][y].Terrain = TerrainGrassland
			// Elevation decreases with y, and the bottom row is ocean: every
			// interior tile has a strictly-downhill non-mountain path to water.
			buf.SetHeightAt(x, y, (h-y)*10)
		}
	}
	for x := 0; x < w; x++ {
		buf.Tiles[x][h-1].Terrain = TerrainOcean
		buf.SetHeightAt(x, h-1, 0)
	}
	return buf
}

func TestGenerateRiversZeroBudgetPlacesNothing(t *testing.T) {
	buf := slopedLandBuffer(10, 10)
	GenerateRivers(buf, DefaultRuleset(), 0, rng.New(1))

	for x := 0; x < buf.Width; x++ {
		for y := 0; y < buf.Height; y++ {
			if buf.Tiles[x][y].RiverMask != 0 {
				t.Fatalf("expected no rivers with a zero percent budget, found one at (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerateRiversProducesSomeRiverTiles(t *testing.T) {
	buf := slopedLandBuffer(20, 20)
	GenerateRivers(buf, DefaultRuleset(), 20, rng.New(42))

	found := false
	for x := 0; x < buf.Width && !found; x++ {
		for y := 0; y < buf.Height; y++ {
			if buf.Tiles[x][y].RiverMask != 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("expected a sizeable river budget on a sloped map to place at least one river tile")
	}
}

func TestGenerateRiversNeverRoutesThroughMountains(t *testing.T) {
	buf := slopedLandBuffer(20, 20)
	for y := 5; y < 15; y++ {
		buf.Tiles[10][y].Terrain = TerrainMountains
	}

	GenerateRivers(buf, DefaultRuleset(), 30, rng.New(7))

	for y := 5; y < 15; y++ {
		if buf.Tiles[10][y].RiverMask != 0 {
			t.Fatalf("expected mountain tile (10,%d) to never carry a river segment", y)
		}
	}
}

func TestOppositeDirIsInvolution(t *testing.T) {
	for _, d := range []RiverDir{RiverNorth, RiverEast, RiverSouth, RiverWest} {
		if got := oppositeDir(oppositeDir(d)); got != d {
			t.Fatalf("oppositeDir(oppositeDir(%v)) = %v, want %v", d, got, d)
		}
	}
}
