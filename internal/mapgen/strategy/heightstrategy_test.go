package strategy

import (
	"testing"

	"civgen/internal/mapgen"
	"civgen/internal/rng"
)

func TestSeedToInt64Deterministic(t *testing.T) {
	a := seedToInt64("atlantis")
	b := seedToInt64("atlantis")
	if a != b {
		t.Fatalf("expected the same seed string to hash to the same int64, got %d and %d", a, b)
	}
}

func TestSeedToInt64DiffersAcrossSeeds(t *testing.T) {
	a := seedToInt64("atlantis")
	b := seedToInt64("avalon")
	if a == b {
		t.Fatal("expected different seed strings to hash to different int64s")
	}
}

func TestMinDistToStartsEmptyStartsIsNegative(t *testing.T) {
	if got := minDistToStarts([2]int{3, 4}, nil); got >= 0 {
		t.Fatalf("expected minDistToStarts with no prior starts to be negative, got %v", got)
	}
}

func TestMinDistToStartsPicksNearestSquaredDistance(t *testing.T) {
	starts := []mapgen.StartPosition{{X: 0, Y: 0, PlayerID: 1}, {X: 10, Y: 0, PlayerID: 2}}
	got := minDistToStarts([2]int{1, 0}, starts)
	if got != 1.0 {
		t.Fatalf("expected the squared distance to the nearer start (1,0) to (0,0) to be 1, got %v", got)
	}
}

func TestPlaceStartPositionsReturnsNoneWithoutLand(t *testing.T) {
	w := mapgen.NewWorldBuffer(5, 5, "seed", "fractal")
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			w.Tiles[x][y].Terrain = mapgen.TerrainOcean
		}
	}
	starts := placeStartPositions(w, 4, rng.New(1))
	if len(starts) != 0 {
		t.Fatalf("expected no start positions on an all-ocean map, got %d", len(starts))
	}
}

func TestPlaceStartPositionsOneStartPerPlayer(t *testing.T) {
	w := mapgen.NewWorldBuffer(20, 20, "seed", "fractal")
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			w.Tiles[x][y].Terrain = mapgen.TerrainGrassland
		}
	}
	starts := placeStartPositions(w, 4, rng.New(1))
	if len(starts) != 4 {
		t.Fatalf("expected one start position per player on a roomy all-land map, got %d", len(starts))
	}
	ids := map[int]bool{}
	for _, s := range starts {
		if ids[s.PlayerID] {
			t.Fatalf("duplicate PlayerID %d among start positions", s.PlayerID)
		}
		ids[s.PlayerID] = true
	}
}

func TestPlaceStartPositionsCapsAtAvailableLand(t *testing.T) {
	w := mapgen.NewWorldBuffer(5, 5, "seed", "fractal")
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			w.Tiles[x][y].Terrain = mapgen.TerrainOcean
		}
	}
	w.Tiles[0][0].Terrain = mapgen.TerrainGrassland
	w.Tiles[1][0].Terrain = mapgen.TerrainGrassland

	starts := placeStartPositions(w, 8, rng.New(1))
	if len(starts) != 2 {
		t.Fatalf("expected start positions to be capped at the 2 available land tiles, got %d", len(starts))
	}
}

func TestPlaceStartPositionsSpreadsAcrossLand(t *testing.T) {
	w := mapgen.NewWorldBuffer(30, 1, "seed", "fractal")
	for x := 0; x < 30; x++ {
		w.Tiles[x][0].Terrain = mapgen.TerrainGrassland
	}
	starts := placeStartPositions(w, 2, rng.New(7))
	if len(starts) != 2 {
		t.Fatalf("expected 2 start positions, got %d", len(starts))
	}
	dx := starts[0].X - starts[1].X
	if dx < 0 {
		dx = -dx
	}
	if dx < 10 {
		t.Fatalf("expected the greedy farthest-point selection to spread two starts apart on a 30-wide strip, got distance %d", dx)
	}
}
