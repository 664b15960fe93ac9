package mapgen

import (
	"testing"

	"civgen/internal/rng"
)

func TestAssignOceanDepthLeavesLandAlone(t *testing.T) {
	buf := allOceanBuffer(10, 10)
	buf.Tiles[5][5].Terrain = TerrainGrassland

	assignOceanDepth(buf, DefaultRuleset(), rng.New(1))

	if buf.Tiles[5][5].Terrain != TerrainGrassland {
		t.Fatalf("expected land tile to be untouched by ocean depth assignment, got %v", buf.Tiles[5][5].Terrain)
	}
}

func TestAssignOceanDepthDeepensFarFromLand(t *testing.T) {
	buf := allOceanBuffer(20, 20)
	buf.Tiles[0][0].Terrain = TerrainGrassland

	assignOceanDepth(buf, DefaultRuleset(), rng.New(2))

	near := buf.Tiles[1][0].Terrain
	far := buf.Tiles[19][19].Terrain
	if near != TerrainCoast && near != TerrainOcean {
		t.Fatalf("expected the tile adjacent to land to be shallow water, got %v", near)
	}
	if far != TerrainDeepOcean {
		t.Fatalf("expected the tile farthest from any land to be deep ocean, got %v", far)
	}
}

func TestClosestOceanDepthTerrainPicksNearestBand(t *testing.T) {
	ruleset := DefaultRuleset()
	if got := closestOceanDepthTerrain(ruleset, 10); got != TerrainOcean {
		t.Fatalf("expected depth 10 to resolve to ocean, got %v", got)
	}
	if got := closestOceanDepthTerrain(ruleset, 90); got != TerrainDeepOcean {
		t.Fatalf("expected depth 90 to resolve to deep_ocean, got %v", got)
	}
}

func TestMajoritySmoothOceanAdoptsSurroundingMajority(t *testing.T) {
	buf := allOceanBuffer(5, 5)
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			buf.Tiles[x][y].Terrain = TerrainDeepOcean
		}
	}
	// One lone coast tile surrounded by 8 deep_ocean neighbors should flip.
	buf.Tiles[2][2].Terrain = TerrainCoast

	majoritySmoothOcean(buf, DefaultRuleset())

	if buf.Tiles[2][2].Terrain != TerrainDeepOcean {
		t.Fatalf("expected lone tile to adopt its 8-neighbor majority, got %v", buf.Tiles[2][2].Terrain)
	}
}

func TestMajoritySmoothOceanLeavesBalancedTilesAlone(t *testing.T) {
	buf := allOceanBuffer(3, 3)
	// Center tile's 8 neighbors split 4-4 between two other terrains, so
	// neither clears the 5-of-8 majority threshold.
	buf.Tiles[1][1].Terrain = TerrainCoast
	buf.Tiles[0][0].Terrain = TerrainOcean
	buf.Tiles[0][1].Terrain = TerrainOcean
	buf.Tiles[0][2].Terrain = TerrainOcean
	buf.Tiles[1][0].Terrain = TerrainOcean
	buf.Tiles[1][2].Terrain = TerrainDeepOcean
	buf.Tiles[2][0].Terrain = TerrainDeepOcean
	buf.Tiles[2][1].Terrain = TerrainDeepOcean
	buf.Tiles[2][2].Terrain = TerrainDeepOcean

	majoritySmoothOcean(buf, DefaultRuleset())

	if buf.Tiles[1][1].Terrain != TerrainCoast {
		t.Fatalf("expected center tile with no 5-of-8 majority to keep its terrain, got %v", buf.Tiles[1][1].Terrain)
	}
}
