package strategy

import (
	"context"
	"fmt"
	"time"

	"civgen/internal/logging"
	"civgen/internal/mapgen"
	"civgen/internal/mapgen/validator"
	"civgen/internal/rng"
)

// GenerationResult is what a top-level strategy returns on success: the
// finalized map plus the MapValidator report computed against it.
type GenerationResult struct {
	Map       *mapgen.MapData
	Validator validator.Report
}

// GenerateHeightBased runs S1: it dispatches on generator in
// {fractal, random, fracture}, builds the height field, runs LandBuilder,
// places one start position per player along a simple spacing heuristic,
// and validates the result. There is no retry logic at this layer (§4.14).
func GenerateHeightBased(ctx context.Context, params GenerationParams) (*GenerationResult, error) {
	if params.Generator != mapgen.GeneratorFractal && params.Generator != mapgen.GeneratorRandom && params.Generator != mapgen.GeneratorFracture {
		return nil, fmt.Errorf("GenerateHeightBased: unsupported generator %q", params.Generator)
	}

	logging.LogInfo(ctx, "height-based generation starting", map[string]interface{}{
		"generator": string(params.Generator),
		"width":     params.Width,
		"height":    params.Height,
	})

	start := time.Now()
	source := rng.New(seedToInt64(params.Seed))

	w := mapgen.NewWorldBuffer(params.Width, params.Height, params.Seed, string(params.Generator))
	hf := mapgen.BuildHeightField(params.Width, params.Height, params.LandPercent, params.Steepness, params.Generator, source.Fork("heightfield"))

	lb := mapgen.LandBuilderParams{
		Generator:                  params.Generator,
		LandPercent:                params.LandPercent,
		Steepness:                  params.Steepness,
		Wetness:                    params.Wetness,
		TemperatureParam:           params.TemperatureParam,
		PolesEnabled:               true,
		CleanupTemperatureAfterUse: params.CleanupTemperatureMapAfterUse,
		HasRiverGenerator:          true,
	}
	result := lb.Run(w, params.Ruleset, hf, source.Fork("landbuilder"))
	mapgen.ApplyWetnessField(w, params.Wetness)

	starts := placeStartPositions(w, params.PlayerCount, source.Fork("startpos"))
	emitted := w.Finalize(start.Format(time.RFC3339), starts)

	report := validator.Validate(validator.Input{
		Map:              emitted,
		Budget:           result.Budget,
		GenerationTimeMs: time.Since(start).Milliseconds(),
	})

	logging.LogInfo(ctx, "height-based generation finished", map[string]interface{}{
		"score":  report.Score,
		"passed": report.Passed,
	})

	return &GenerationResult{Map: emitted, Validator: report}, nil
}

// seedToInt64 hashes a string seed into an int64 for rng.New, so callers
// supply the human-readable seed the spec describes (§6 Inputs) while the
// deterministic PRNG keeps its simple integer seed API.
func seedToInt64(seed string) int64 {
	var h uint64 = 0xcbf29ce484222325
	for i := 0; i < len(seed); i++ {
		h ^= uint64(seed[i])
		h *= 0x100000001b3
	}
	return int64(h)
}

// placeStartPositions spreads one starting tile per player across land
// tiles, maximizing minimum pairwise spacing with a simple greedy farthest-
// point selection — good enough for HeightBasedStrategy, which (unlike
// IslandStrategy) doesn't already know where the islands are.
func placeStartPositions(w *mapgen.WorldBuffer, playerCount int, source *rng.Source) []mapgen.StartPosition {
	var land [][2]int
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			if !w.Tiles[x][y].Terrain.IsWater() {
				land = append(land, [2]int{x, y})
			}
		}
	}
	if len(land) == 0 {
		return nil
	}

	starts := make([]mapgen.StartPosition, 0, playerCount)
	first := land[source.Intn(len(land))]
	starts = append(starts, mapgen.StartPosition{X: first[0], Y: first[1], PlayerID: 1})

	for len(starts) < playerCount && len(starts) < len(land) {
		best := land[0]
		bestDist := -1.0
		for _, cand := range land {
			minDist := minDistToStarts(cand, starts)
			if minDist > bestDist {
				bestDist = minDist
				best = cand
			}
		}
		starts = append(starts, mapgen.StartPosition{X: best[0], Y: best[1], PlayerID: len(starts) + 1})
	}
	return starts
}

func minDistToStarts(p [2]int, starts []mapgen.StartPosition) float64 {
	min := -1.0
	for _, s := range starts {
		dx, dy := float64(p[0]-s.X), float64(p[1]-s.Y)
		d := dx*dx + dy*dy
		if min < 0 || d < min {
			min = d
		}
	}
	return min
}
