package mapgen

import (
	"testing"

	"civgen/internal/rng"
)

func allLandBuffer(w, h int, shoreLevel int) *WorldBuffer {
	buf := NewWorldBuffer(w, h, "seed", "fractal")
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			buf.Tiles[x][y].Terrain = landFill
			buf.Tiles[x][y].Temperature = Temperate
			buf.SetHeightAt(x, y, shoreLevel+100)
		}
	}
	return buf
}

func TestPlacementIsDryFarFromWater(t *testing.T) {
	buf := allLandBuffer(20, 20, 300)
	if !placementIsDry(buf, 10, 10) {
		t.Fatal("expected a tile far from any water to classify as dry")
	}
}

func TestPlacementIsDryFalseNearWater(t *testing.T) {
	buf := allLandBuffer(20, 20, 300)
	buf.Tiles[10][10].Terrain = TerrainOcean

	if placementIsDry(buf, 11, 10) {
		t.Fatal("expected a tile adjacent to water to classify as not dry")
	}
}

func TestHMapLowLevelIncreasesWithSwampPct(t *testing.T) {
	low := HMapLowLevel(300, 2)
	high := HMapLowLevel(300, 10)
	if high <= low {
		t.Fatalf("expected a higher swamp budget to raise the low-elevation threshold: low=%d high=%d", low, high)
	}
}

func TestPlaceTerrainCommitsBudgetedForestTiles(t *testing.T) {
	buf := allLandBuffer(20, 20, 300)
	ruleset := DefaultRuleset()
	budget := TerrainBudget{ForestPct: 20}

	PlaceTerrain(buf, ruleset, budget, 300, rng.New(11))

	wantCount := budgetCount(budget.ForestPct, countLandTiles(buf))
	gotCount := 0
	for x := 0; x < buf.Width; x++ {
		for y := 0; y < buf.Height; y++ {
			if buf.Tiles[x][y].Terrain == TerrainForest {
				gotCount++
			}
		}
	}
	if gotCount != wantCount {
		t.Fatalf("expected %d forest tiles placed on an abundant uniform landmass, got %d", wantCount, gotCount)
	}
}

func TestPlaceTerrainLeavesUnbudgetedTilesAsLandFill(t *testing.T) {
	buf := allLandBuffer(20, 20, 300)
	ruleset := DefaultRuleset()
	budget := TerrainBudget{ForestPct: 10}

	PlaceTerrain(buf, ruleset, budget, 300, rng.New(3))

	unresolved := 0
	for x := 0; x < buf.Width; x++ {
		for y := 0; y < buf.Height; y++ {
			if buf.Tiles[x][y].Terrain == landFill {
				unresolved++
			}
		}
	}
	if unresolved == 0 {
		t.Fatal("expected a small terrain budget to leave most of a large landmass as unresolved landFill")
	}
}

func TestPlaceTerrainRespectsZeroBudget(t *testing.T) {
	buf := allLandBuffer(10, 10, 300)
	ruleset := DefaultRuleset()
	budget := TerrainBudget{}

	PlaceTerrain(buf, ruleset, budget, 300, rng.New(5))

	// A zero terrain budget leaves every tile as landFill — PlaceTerrain only
	// spills over the count each rule could not place, and a zero-count rule
	// has nothing left to spill. MakePlains (LandBuilder's final sweep) is
	// what resolves landFill, not TerrainPlacer itself.
	for x := 0; x < buf.Width; x++ {
		for y := 0; y < buf.Height; y++ {
			if buf.Tiles[x][y].Terrain != landFill {
				t.Fatalf("expected a zero terrain budget to leave every tile as landFill, found %v at (%d,%d)", buf.Tiles[x][y].Terrain, x, y)
			}
		}
	}
}
