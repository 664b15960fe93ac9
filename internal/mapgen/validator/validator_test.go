package validator

import (
	"testing"

	"civgen/internal/mapgen"
)

func newBlankMap(w, h int) *mapgen.MapData {
	tiles := make([][]mapgen.Tile, w)
	for x := range tiles {
		tiles[x] = make([]mapgen.Tile, h)
		for y := range tiles[x] {
			tiles[x][y] = mapgen.Tile{Terrain: mapgen.TerrainOcean}
		}
	}
	return &mapgen.MapData{Width: w, Height: h, Tiles: tiles}
}

func TestValidatePenalizesAllOceanMap(t *testing.T) {
	m := newBlankMap(20, 20)
	report := Validate(Input{Map: m, Budget: mapgen.TerrainBudget{}})
	if report.Passed {
		t.Fatal("expected an all-ocean map (0% land, no rivers, no starts) to fail validation")
	}
	if report.Metrics.LandPercent != 0 {
		t.Fatalf("expected 0%% land, got %.1f", report.Metrics.LandPercent)
	}
}

func TestValidateScoresReasonableMapHigher(t *testing.T) {
	m := newBlankMap(20, 20)
	// A 12x10 land block (120 of 400 tiles = 30% land, inside the preferred
	// [20,40] band) split into four quarter-columns of distinct terrain so
	// no single terrain exceeds the 30%-of-land threshold.
	for x := 2; x < 14; x++ {
		for y := 2; y < 12; y++ {
			var terrain mapgen.Terrain
			switch {
			case x < 5:
				terrain = mapgen.TerrainGrassland
			case x < 8:
				terrain = mapgen.TerrainPlains
			case x < 11:
				terrain = mapgen.TerrainForest
			default:
				terrain = mapgen.TerrainDesert
			}
			m.Tiles[x][y].Terrain = terrain
			m.Tiles[x][y].ContinentID = 1
		}
	}
	for x := 11; x < 14; x++ {
		for y := 2; y < 12; y++ {
			m.Tiles[x][y].RiverMask = mapgen.RiverMask(mapgen.RiverNorth)
		}
	}
	m.StartingPositions = []mapgen.StartPosition{
		{X: 3, Y: 3, PlayerID: 1},
		{X: 12, Y: 10, PlayerID: 2},
	}

	oceanReport := Validate(Input{Map: newBlankMap(20, 20), Budget: mapgen.TerrainBudget{}})
	landReport := Validate(Input{Map: m, Budget: mapgen.TerrainBudget{RiverPct: 25, ForestPct: 25, DesertPct: 25}})

	if landReport.Score <= oceanReport.Score {
		t.Fatalf("expected a map with land, starts and rivers to score higher than an all-ocean map: land=%.1f ocean=%.1f", landReport.Score, oceanReport.Score)
	}
	if !landReport.Passed {
		t.Fatalf("expected the land map to pass the >=70 threshold, got score %.1f with issues %v", landReport.Score, landReport.Issues)
	}
}

func TestValidateStartPositionsFlagsWaterStart(t *testing.T) {
	var issues []Issue
	m := newBlankMap(10, 10)
	m.StartingPositions = []mapgen.StartPosition{{X: 0, Y: 0, PlayerID: 1}}
	validateStartPositions(m, &issues)

	found := false
	for _, is := range issues {
		if is.Severity == SeverityError {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a start position placed on ocean to raise an error issue")
	}
}

func TestValidateStartPositionsFlagsOutOfBounds(t *testing.T) {
	var issues []Issue
	m := newBlankMap(10, 10)
	m.StartingPositions = []mapgen.StartPosition{{X: 99, Y: 99, PlayerID: 1}}
	validateStartPositions(m, &issues)

	if len(issues) == 0 {
		t.Fatal("expected an out-of-bounds start position to raise an issue")
	}
}

func TestValidateStartPositionsAcceptsValidLandStarts(t *testing.T) {
	var issues []Issue
	m := newBlankMap(10, 10)
	m.Tiles[3][3].Terrain = mapgen.TerrainGrassland
	m.Tiles[7][7].Terrain = mapgen.TerrainGrassland
	m.StartingPositions = []mapgen.StartPosition{{X: 3, Y: 3, PlayerID: 1}, {X: 7, Y: 7, PlayerID: 2}}
	validateStartPositions(m, &issues)

	for _, is := range issues {
		if is.Severity == SeverityError {
			t.Fatalf("did not expect an error for two well-spaced land starts, got %q", is.Message)
		}
	}
}

func TestValidateRiversFlagsNoRivers(t *testing.T) {
	var issues []Issue
	m := newBlankMap(10, 10)
	validateRivers(m, countTerrains(m), mapgen.TerrainBudget{RiverPct: 10}, 50, &issues)

	if len(issues) != 1 || issues[0].Severity != SeverityError {
		t.Fatalf("expected exactly one error issue for a map with no rivers, got %v", issues)
	}
}

func TestValidateRiversFlagsBrokenMaskAtEdge(t *testing.T) {
	var issues []Issue
	m := newBlankMap(5, 5)
	m.Tiles[0][0].Terrain = mapgen.TerrainGrassland
	m.Tiles[0][0].RiverMask = mapgen.RiverMask(mapgen.RiverWest)
	validateRivers(m, countTerrains(m), mapgen.TerrainBudget{RiverPct: 4}, 25, &issues)

	found := false
	for _, is := range issues {
		if is.Message == "1 river mask bits point off the map" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a river mask bit pointing off the map's west edge to be flagged, got %v", issues)
	}
}

func TestPenaltyFromIssuesWeighsErrorsMoreThanWarnings(t *testing.T) {
	errPenalty := penaltyFromIssues([]Issue{{Severity: SeverityError, Message: "x"}})
	warnPenalty := penaltyFromIssues([]Issue{{Severity: SeverityWarn, Message: "x"}})
	if errPenalty <= warnPenalty {
		t.Fatalf("expected an error issue to penalize more than a warning: error=%v warn=%v", errPenalty, warnPenalty)
	}
}

func TestPenaltyFromIssuesClampedAt100(t *testing.T) {
	issues := make([]Issue, 20)
	for i := range issues {
		issues[i] = Issue{Severity: SeverityError, Message: "x"}
	}
	if got := penaltyFromIssues(issues); got != 100 {
		t.Fatalf("expected penalty to clamp at 100 with many errors, got %v", got)
	}
}

func TestValidateContinentsCountsDisjointLandmasses(t *testing.T) {
	var issues []Issue
	m := newBlankMap(20, 20)
	for x := 1; x < 4; x++ {
		for y := 1; y < 4; y++ {
			m.Tiles[x][y].ContinentID = 1
		}
	}
	for x := 15; x < 18; x++ {
		for y := 15; y < 18; y++ {
			m.Tiles[x][y].ContinentID = 2
		}
	}
	_, count, _ := validateContinents(m, 18, &issues)
	if count != 2 {
		t.Fatalf("expected 2 distinct continent IDs to be counted, got %d", count)
	}
}

func TestValidateTerrainFlagsOutOfRangeLandPercent(t *testing.T) {
	var issues []Issue
	m := newBlankMap(10, 10)
	score := validateTerrain(m, countTerrains(m), 100, 0, 0, &issues)
	if score >= 100 {
		t.Fatalf("expected 0%% land percent to be penalized, got score %v", score)
	}
}
