package mapgen

import (
	"testing"

	"civgen/internal/rng"
)

func allOceanBuffer(w, h int) *WorldBuffer {
	buf := NewWorldBuffer(w, h, "seed", "fractal")
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			buf.Tiles[x][y].Terrain = TerrainOcean
		}
	}
	return buf
}

func TestRemoveTinyIslandsClearsIsolatedLand(t *testing.T) {
	buf := allOceanBuffer(10, 10)
	buf.Tiles[5][5].Terrain = TerrainGrassland // a single isolated land tile

	// Any generator/threshold combination should clear a fully isolated tile.
	RemoveTinyIslands(buf, GeneratorFractal, rng.New(1))

	if buf.Tiles[5][5].Terrain != TerrainOcean {
		t.Fatalf("expected isolated land tile to be converted to ocean, got %v", buf.Tiles[5][5].Terrain)
	}
}

func TestRemoveTinyIslandsPreservesLargeLandmass(t *testing.T) {
	buf := allOceanBuffer(10, 10)
	for x := 2; x < 8; x++ {
		for y := 2; y < 8; y++ {
			buf.Tiles[x][y].Terrain = TerrainGrassland
		}
	}

	RemoveTinyIslands(buf, GeneratorFractal, rng.New(2))

	if buf.Tiles[4][4].Terrain == TerrainOcean {
		t.Fatal("expected interior tile of a large landmass to survive tiny-island removal")
	}
}

func TestLabelContinentsAssignsPositiveIDsToLand(t *testing.T) {
	buf := allOceanBuffer(6, 6)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			buf.Tiles[x][y].Terrain = TerrainGrassland
		}
	}

	LabelContinents(buf)

	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if buf.Tiles[x][y].ContinentID <= 0 {
				t.Fatalf("expected land tile (%d,%d) to get a positive continent id", x, y)
			}
		}
	}
}

func TestLabelContinentsSeparatesDisjointLandmasses(t *testing.T) {
	buf := allOceanBuffer(10, 1)
	buf.Tiles[0][0].Terrain = TerrainGrassland
	buf.Tiles[9][0].Terrain = TerrainGrassland

	LabelContinents(buf)

	if buf.Tiles[0][0].ContinentID == buf.Tiles[9][0].ContinentID {
		t.Fatal("expected disjoint landmasses to get different continent ids")
	}
}

func TestRegenerateLakesReclassifiesSmallOceanPockets(t *testing.T) {
	buf := NewWorldBuffer(5, 5, "seed", "fractal")
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			buf.Tiles[x][y].Terrain = TerrainGrassland
		}
	}
	// A single enclosed ocean tile should become a lake (component size 1 <= LakeMaxSize).
	buf.Tiles[2][2].Terrain = TerrainOcean

	RegenerateLakes(buf)

	if buf.Tiles[2][2].Terrain != TerrainLake {
		t.Fatalf("expected isolated ocean pocket to become a lake, got %v", buf.Tiles[2][2].Terrain)
	}
}

func TestRegenerateLakesLeavesLargeOceanAlone(t *testing.T) {
	buf := allOceanBuffer(10, 10)

	RegenerateLakes(buf)

	if buf.Tiles[5][5].Terrain != TerrainOcean {
		t.Fatalf("expected a large connected ocean body to remain ocean, got %v", buf.Tiles[5][5].Terrain)
	}
}
