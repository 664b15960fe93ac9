// Package validator implements MapValidator (V1, §4.18): it scores a
// produced map across terrain, continent, river, parameter-compliance and
// start-position dimensions and returns a pass/fail verdict plus metrics.
package validator

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"civgen/internal/mapgen"
)

// Severity classifies one reported issue.
type Severity string

const (
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Issue is one validator finding.
type Issue struct {
	Severity Severity
	Message  string
}

// Metrics is the set of measured quantities the report is built from.
type Metrics struct {
	LandPercent        float64
	ContinentCount      int
	LargestContinentPct float64
	RiverPercent        float64
	ForestPercent       float64
	DesertPercent       float64
	MountainPercent     float64
	GenerationTimeMs    int64
}

// Report is MapValidator's output.
type Report struct {
	Passed  bool
	Score   float64
	Issues  []Issue
	Metrics Metrics
}

// Input bundles the parameters MapValidator needs beyond the map itself:
// the budget LandBuilder derived (to compare actuals against) and the
// measured generation time.
type Input struct {
	Map               *mapgen.MapData
	Budget            mapgen.TerrainBudget
	GenerationTimeMs  int64
}

// Validate runs every dimension in §4.18 and produces a scored Report.
func Validate(in Input) Report {
	m := in.Map
	tiles := m.Width * m.Height

	terrainCounts := countTerrains(m)
	landTiles := tiles - terrainCounts[mapgen.TerrainOcean] - terrainCounts[mapgen.TerrainCoast] - terrainCounts[mapgen.TerrainDeepOcean]
	landPct := pct(landTiles, tiles)

	var issues []Issue

	terrainScore := validateTerrain(m, terrainCounts, tiles, landTiles, landPct, &issues)
	continentScore, continentCount, largestPct := validateContinents(m, landTiles, &issues)
	validateRivers(m, terrainCounts, in.Budget, landTiles, &issues)
	validateParameterCompliance(terrainCounts, in.Budget, landTiles, &issues)
	validateStartPositions(m, &issues)

	issuePenalty := penaltyFromIssues(issues)
	score := terrainScore*0.4 + continentScore*0.3 + (100-issuePenalty)*0.3
	score = clamp(score, 0, 100)

	riverTiles := 0
	for _, row := range m.Tiles {
		for _, t := range row {
			if t.RiverMask != 0 {
				riverTiles++
			}
		}
	}

	return Report{
		Passed: score >= 70,
		Score:  score,
		Issues: issues,
		Metrics: Metrics{
			LandPercent:         landPct,
			ContinentCount:      continentCount,
			LargestContinentPct: largestPct,
			RiverPercent:        pct(riverTiles, landTiles),
			ForestPercent:       pct(terrainCounts[mapgen.TerrainForest]+terrainCounts[mapgen.TerrainJungle], landTiles),
			DesertPercent:       pct(terrainCounts[mapgen.TerrainDesert], landTiles),
			MountainPercent:     pct(terrainCounts[mapgen.TerrainMountains], landTiles),
			GenerationTimeMs:    in.GenerationTimeMs,
		},
	}
}

func countTerrains(m *mapgen.MapData) map[mapgen.Terrain]int {
	counts := map[mapgen.Terrain]int{}
	for _, row := range m.Tiles {
		for _, t := range row {
			counts[t.Terrain]++
		}
	}
	return counts
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func validateTerrain(m *mapgen.MapData, counts map[mapgen.Terrain]int, tiles, landTiles int, landPct float64, issues *[]Issue) float64 {
	score := 100.0

	if landPct < 15 || landPct > 60 {
		*issues = append(*issues, Issue{SeverityError, fmt.Sprintf("land percent %.1f outside [15,60]", landPct)})
		score -= 30
	} else if landPct < 20 || landPct > 40 {
		*issues = append(*issues, Issue{SeverityWarn, fmt.Sprintf("land percent %.1f outside preferred [20,40]", landPct)})
		score -= 10
	}

	for t, n := range counts {
		if t == mapgen.TerrainOcean || t == mapgen.TerrainCoast || t == mapgen.TerrainDeepOcean || t == mapgen.TerrainLake {
			continue
		}
		share := pct(n, landTiles)
		if share > 50 {
			*issues = append(*issues, Issue{SeverityError, fmt.Sprintf("%s covers %.1f%% of land, exceeds 50%%", t, share)})
			score -= 20
		} else if share > 30 {
			*issues = append(*issues, Issue{SeverityWarn, fmt.Sprintf("%s covers %.1f%% of land, exceeds 30%%", t, share)})
			score -= 5
		}
	}

	for _, essential := range []mapgen.Terrain{mapgen.TerrainGrassland, mapgen.TerrainPlains, mapgen.TerrainForest} {
		if pct(counts[essential], landTiles) < 1 {
			*issues = append(*issues, Issue{SeverityWarn, fmt.Sprintf("essential terrain %s is below 1%% of land", essential)})
			score -= 5
		}
	}

	return clamp(score, 0, 100)
}

func validateContinents(m *mapgen.MapData, landTiles int, issues *[]Issue) (score float64, count int, largestPct float64) {
	sizes := map[int]int{}
	for _, row := range m.Tiles {
		for _, t := range row {
			if t.ContinentID > 0 {
				sizes[t.ContinentID]++
			}
		}
	}
	count = len(sizes)

	expected := maxInt(1, (m.Width*m.Height)/5000)
	score = 100.0

	largest := 0
	small := 0
	isolated := 0
	for _, size := range sizes {
		if size > largest {
			largest = size
		}
		if size < 10 {
			small++
		}
		if size == 1 {
			isolated++
		}
	}
	largestPct = pct(largest, landTiles)

	if largestPct > 80 {
		*issues = append(*issues, Issue{SeverityWarn, fmt.Sprintf("largest continent is %.1f%% of land", largestPct)})
		score -= 10
	}
	if count > 0 && pct(small, count) > 50 {
		*issues = append(*issues, Issue{SeverityWarn, "over half of continents are smaller than 10 tiles"})
		score -= 10
	}
	if pct(isolated, maxInt(landTiles, 1)) > 5 {
		*issues = append(*issues, Issue{SeverityWarn, "isolated single-tile land exceeds 5% of land"})
		score -= 10
	}
	if absInt(count-expected) > maxInt(1, expected/2) {
		*issues = append(*issues, Issue{SeverityWarn, fmt.Sprintf("continent count %d far from expected %d", count, expected)})
		score -= 10
	}

	return clamp(score, 0, 100), count, largestPct
}

func validateRivers(m *mapgen.MapData, counts map[mapgen.Terrain]int, budget mapgen.TerrainBudget, landTiles int, issues *[]Issue) {
	riverTiles := 0
	brokenMasks := 0
	for x, row := range m.Tiles {
		for y, t := range row {
			if t.RiverMask == 0 {
				continue
			}
			riverTiles++
			for _, dir := range []mapgen.RiverDir{mapgen.RiverNorth, mapgen.RiverEast, mapgen.RiverSouth, mapgen.RiverWest} {
				if !t.RiverMask.Has(dir) {
					continue
				}
				nx, ny := neighborOf(x, y, dir)
				if nx < 0 || nx >= m.Width || ny < 0 || ny >= m.Height {
					brokenMasks++
				}
			}
		}
	}

	if riverTiles == 0 {
		*issues = append(*issues, Issue{SeverityError, "no rivers generated"})
		return
	}

	actual := pct(riverTiles, landTiles)
	dev := math.Abs(actual - budget.RiverPct)
	if dev > 3 {
		*issues = append(*issues, Issue{SeverityError, fmt.Sprintf("river percent %.1f deviates %.1f pts from requested %.1f", actual, dev, budget.RiverPct)})
	} else if dev > 2 {
		*issues = append(*issues, Issue{SeverityWarn, fmt.Sprintf("river percent %.1f deviates %.1f pts from requested %.1f", actual, dev, budget.RiverPct)})
	}

	if brokenMasks > 0 {
		*issues = append(*issues, Issue{SeverityError, fmt.Sprintf("%d river mask bits point off the map", brokenMasks)})
	}
}

func neighborOf(x, y int, dir mapgen.RiverDir) (int, int) {
	switch dir {
	case mapgen.RiverNorth:
		return x, y - 1
	case mapgen.RiverEast:
		return x + 1, y
	case mapgen.RiverSouth:
		return x, y + 1
	default:
		return x - 1, y
	}
}

// hardcodedOverrides are common literal values implementers sometimes
// return instead of actually computing adjustTerrainParam; flagged so a
// reviewer can catch a stubbed-out budget.
var hardcodedOverrides = map[int]bool{15: true, 20: true, 25: true, 30: true}

func validateParameterCompliance(counts map[mapgen.Terrain]int, budget mapgen.TerrainBudget, landTiles int, issues *[]Issue) {
	checks := []struct {
		name     string
		actual   float64
		expected float64
	}{
		{"forest", pct(counts[mapgen.TerrainForest]+counts[mapgen.TerrainJungle], landTiles), budget.ForestPct + budget.JunglePct},
		{"desert", pct(counts[mapgen.TerrainDesert], landTiles), budget.DesertPct},
		{"mountain", pct(counts[mapgen.TerrainMountains], landTiles), budget.MountainPct},
	}
	for _, c := range checks {
		if math.Abs(c.actual-c.expected) > 10 {
			*issues = append(*issues, Issue{SeverityWarn, fmt.Sprintf("%s percent %.1f far from expected %.1f", c.name, c.actual, c.expected)})
		}
		if hardcodedOverrides[int(c.actual)] {
			*issues = append(*issues, Issue{SeverityWarn, fmt.Sprintf("%s percent %.0f matches a common hardcoded override", c.name, c.actual)})
		}
	}
}

func validateStartPositions(m *mapgen.MapData, issues *[]Issue) {
	if len(m.StartingPositions) == 0 {
		*issues = append(*issues, Issue{SeverityError, "no starting positions"})
		return
	}

	for _, sp := range m.StartingPositions {
		if sp.X < 0 || sp.X >= m.Width || sp.Y < 0 || sp.Y >= m.Height {
			*issues = append(*issues, Issue{SeverityError, fmt.Sprintf("start position for player %d is out of bounds", sp.PlayerID)})
			continue
		}
		tile := m.Tiles[sp.X][sp.Y]
		if tile.Terrain.IsWater() {
			*issues = append(*issues, Issue{SeverityError, fmt.Sprintf("start position for player %d is on water", sp.PlayerID)})
		}
	}

	if len(m.StartingPositions) < 2 {
		return
	}

	var dists []float64
	for i := 0; i < len(m.StartingPositions); i++ {
		for j := i + 1; j < len(m.StartingPositions); j++ {
			a, b := m.StartingPositions[i], m.StartingPositions[j]
			dists = append(dists, euclidean(a.X, a.Y, b.X, b.Y))
		}
	}

	minDim := minInt(m.Width, m.Height)
	minDist, _ := stats.Min(dists)
	if minDist < float64(minDim)/8 {
		*issues = append(*issues, Issue{SeverityWarn, fmt.Sprintf("minimum start-position distance %.1f below min(w,h)/8", minDist)})
	}

	mean, _ := stats.Mean(dists)
	stddev, _ := stats.StandardDeviation(dists)
	if mean > 0 && stddev >= 0.5*mean {
		*issues = append(*issues, Issue{SeverityWarn, "start-position distances are not well balanced (stddev >= 0.5*mean)"})
	}
}

func euclidean(x1, y1, x2, y2 int) float64 {
	dx, dy := float64(x1-x2), float64(y1-y2)
	return math.Sqrt(dx*dx + dy*dy)
}

func penaltyFromIssues(issues []Issue) float64 {
	penalty := 0.0
	for _, is := range issues {
		if is.Severity == SeverityError {
			penalty += 15
		} else {
			penalty += 5
		}
	}
	return clamp(penalty, 0, 100)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
