package strategy

import (
	"context"
	"math"
	"time"

	appErrors "civgen/internal/errors"
	"civgen/internal/logging"
	"civgen/internal/mapgen"
)

const maxFairIslandsAttempts = 3

// playersPerIslandForAll picks the ALL-mode grouping (§4.17 PreCheck): 3 if
// the player count divides evenly by 3 and is at least 6, else 2 if it
// divides evenly by 2 and is at least 4, else every player gets their own
// island.
func playersPerIslandForAll(n int) int {
	switch {
	case n%3 == 0 && n >= 6:
		return 3
	case n%2 == 0 && n >= 4:
		return 2
	default:
		return 1
	}
}

// minIslandSize is the floor applied to every island-mass intermediate in
// the PreCheck (§4.17 step 1). The spec names the symbol without a value;
// 8 tiles clears the largest RemoveTinyIslands threshold of 5, used by
// every generator except random (whose threshold is 1-2).
const minIslandSize = 8

func fairIslandsPreCheck(params GenerationParams) (playersPerIsland int, err error) {
	playersPerIsland = playersPerIslandForAll(params.PlayerCount)

	tiles := params.Width * params.Height
	polarTiles := int(2 * mapgen.IceBase(params.TemperatureParam) / mapgen.MaxColatitude * float64(tiles))
	playermass := (tiles*params.LandPercent - polarTiles) / (params.PlayerCount * 100)

	if playermass <= 0 {
		return 0, appErrors.FallbackToIsland("playermass is non-positive for this width/height/landpercent/playerCount combination")
	}

	islandmass1 := maxInt(minIslandSize, playersPerIsland*playermass*7/10)
	islandmass2 := maxInt(minIslandSize, 2*playermass/10)
	islandmass3 := maxInt(minIslandSize, playermass/10)

	if islandmass1 <= minIslandSize {
		return 0, appErrors.FallbackToIsland("islandmass1 does not clear minIslandSize")
	}

	numBigIslands := ceilDiv(params.PlayerCount, playersPerIsland)
	totalNeeded := islandmass1*numBigIslands + 2*islandmass2 + 3*islandmass3
	budget := 1.2 * float64(tiles) * float64(params.LandPercent) / 100
	if float64(totalNeeded) > budget {
		return 0, appErrors.FallbackToIsland("island mass plan exceeds 1.2x the land tile budget")
	}

	return playersPerIsland, nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// parameterAdjustment monotonically relaxes the terrain budget each retry:
// attempt 1 runs unmodified (factor 1.0), and the factor falls linearly to
// 0.85 on the last attempt; applyAdjustment scales steepness by the factor
// and wetness by 2-factor.
func parameterAdjustment(attempt, maxAttempts int) float64 {
	if maxAttempts <= 1 {
		return 1.0
	}
	frac := float64(attempt-1) / float64(maxAttempts-1)
	return 1.0 - 0.15*frac
}

func applyAdjustment(params GenerationParams, factor float64) GenerationParams {
	adjusted := params
	adjusted.Steepness = clampPct(int(float64(params.Steepness) * factor))
	adjusted.Wetness = clampPct(int(float64(params.Wetness) * (2 - factor)))
	return adjusted
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// attemptDeadline returns the per-attempt timeout (§4.17 step 2): 30s plus
// 10s per retry beyond the first.
func attemptDeadline(attempt int) time.Duration {
	return time.Duration(30_000+(attempt-1)*10_000) * time.Millisecond
}

// GenerateFairIslands runs S3: an admissibility PreCheck, a bounded retry
// loop over IslandStrategy with progressively relaxed parameters and a
// per-attempt deadline, and a PostCheck validating major-island count,
// start-position spacing and resource balance. A failed PreCheck or
// exhausted retries signal FALLBACK_TO_ISLAND so the caller can rerun
// IslandStrategy directly (§4.17); a cancelled ctx yields
// GENERATION_TIMEOUT, and any other IslandStrategy error is returned as is.
func GenerateFairIslands(ctx context.Context, params GenerationParams) (*GenerationResult, error) {
	fairParams := params
	fairParams.StartPosMode = StartPosAll

	playersPerIsland, err := fairIslandsPreCheck(fairParams)
	if err != nil {
		logging.LogWarning(ctx, "fair islands precheck failed, falling back", map[string]interface{}{"reason": err.Error()})
		return nil, err
	}

	original := fairParams
	for attempt := 1; attempt <= maxFairIslandsAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, appErrors.Timeout("context cancelled before fair-islands attempt")
		default:
		}

		factor := parameterAdjustment(attempt, maxFairIslandsAttempts)
		attemptParams := applyAdjustment(original, factor)

		attemptCtx, cancel := context.WithTimeout(ctx, attemptDeadline(attempt))
		result, genErr := GenerateIsland(attemptCtx, attemptParams)
		cancel()

		if genErr != nil {
			if attemptCtx.Err() != nil {
				logging.LogWarning(ctx, "fair islands attempt timed out", map[string]interface{}{"attempt": attempt})
				continue
			}
			return nil, genErr
		}

		if postCheckFairIslands(result.Map, playersPerIsland, original.Width, original.Height) {
			logging.LogInfo(ctx, "fair islands succeeded", map[string]interface{}{"attempt": attempt})
			return result, nil
		}

		logging.LogWarning(ctx, "fair islands postcheck failed, retrying", map[string]interface{}{"attempt": attempt})
	}

	return nil, appErrors.FallbackToIsland("exhausted retry attempts without passing postcheck")
}

// postCheckFairIslands validates §4.17 step 2's PostCheck: at least one
// start exists (the count is not compared with the player count), enough
// major islands, minimum pairwise start-position spacing, and resource
// balance across starts.
func postCheckFairIslands(m *mapgen.MapData, playersPerIsland, width, height int) bool {
	if len(m.StartingPositions) == 0 {
		return false
	}

	sizes := map[int]int{}
	for _, row := range m.Tiles {
		for _, t := range row {
			if t.ContinentID > 0 && !t.Terrain.IsWater() {
				sizes[t.ContinentID]++
			}
		}
	}
	majorIslands := 0
	for _, size := range sizes {
		if size >= 20 {
			majorIslands++
		}
	}
	expectedMajor := ceilDiv(len(m.StartingPositions), playersPerIsland)
	if majorIslands < expectedMajor {
		return false
	}

	minDim := width
	if height < minDim {
		minDim = height
	}
	requiredMinDist := float64(minDim) / (float64(len(m.StartingPositions)) * 0.8)
	for i := 0; i < len(m.StartingPositions); i++ {
		for j := i + 1; j < len(m.StartingPositions); j++ {
			a, b := m.StartingPositions[i], m.StartingPositions[j]
			d := math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
			if d < requiredMinDist {
				return false
			}
		}
	}

	minR, maxR := -1, 0
	for _, sp := range m.StartingPositions {
		count, _ := resourceRangeNear(m, sp.X, sp.Y, 3)
		if minR < 0 || count < minR {
			minR = count
		}
		if count > maxR {
			maxR = count
		}
	}
	// maxR == 0: no resources placed at all; resource assignment is an external collaborator (§1 Non-goals)
	if maxR > 0 && (minR < 2 || float64(minR)/float64(maxR) < 0.6) {
		return false
	}

	return true
}

func resourceRangeNear(m *mapgen.MapData, cx, cy, radius int) (min, max int) {
	count := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
				continue
			}
			if m.Tiles[x][y].Resource != "" {
				count++
			}
		}
	}
	return count, count
}
