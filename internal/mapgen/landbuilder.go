package mapgen

import "civgen/internal/rng"

// LandBuilderParams collects the world-shape inputs LandBuilder.Run needs,
// as an explicit dependency struct rather than a back-reference into a
// generator object (§9 re-architecture note).
type LandBuilderParams struct {
	Generator                  Generator
	LandPercent                int
	Steepness                  int
	Wetness                    int
	TemperatureParam           int
	PolesEnabled               bool
	CleanupTemperatureAfterUse bool
	HasRiverGenerator          bool
}

// Result carries the artifacts LandBuilder.Run produces besides the
// mutated WorldBuffer: the temperature field (nil if cleaned up) and the
// budget actually used, which MapValidator's parameter-compliance check
// needs.
type Result struct {
	Temperature *TemperatureField
	Budget      TerrainBudget
	ShoreLevel  int
}

// Run executes the exact step sequence from §4.6: height normalization,
// land/ocean classification, relief, temperature, climate-gated terrain
// placement, tiny-island cleanup, continent labeling, rivers, ocean
// smoothing, lake regeneration, biome transitions, and the final
// makePlains sweep. No stage fails; stage 12 is skipped when
// HasRiverGenerator is false. The wetness field is computed right after
// stage 12, so biome transitions see it.
func (p LandBuilderParams) Run(w *WorldBuffer, ruleset *TerrainRuleset, hf *HeightField, source *rng.Source) Result {
	hf.ApplyTo(w)

	// 1. normalize poles
	if p.PolesEnabled {
		NormalizePoles(w, p.TemperatureParam)
	}

	// 2. classify land/ocean
	classifyLandOcean(w, ruleset, hf.ShoreLevel)

	// 3. renormalize poles
	if p.PolesEnabled {
		RenormalizePoles(w, p.TemperatureParam)
	}

	// 4. placement map init, ocean tiles placed
	SetAllOceanTilesPlaced(w)

	// 5. terrain budget
	budget := AdjustTerrainParam(p.LandPercent, p.Steepness, p.Wetness, p.TemperatureParam)

	// 6. relief
	PlaceRelief(w, hf, ruleset, p.Generator, p.Steepness, source.Fork("relief"))

	// 7. temperature (must precede step 8's climate-gated placement)
	temperature := BuildTemperatureField(w, p.TemperatureParam)
	temperature.ApplyTo(w)

	// 8. hmap_low_level + terrain placer
	PlaceTerrain(w, ruleset, budget, hf.ShoreLevel, source.Fork("terrainplacer"))

	// 9. tiny islands, then continent labeling
	RemoveTinyIslands(w, p.Generator, source.Fork("tinyislands"))
	LabelContinents(w)

	// 10. destroy placement map — nothing further consults it, so this is a
	// logical no-op; PlacementMap's lifecycle ends here by convention.

	// 11. final pole renormalization
	if p.PolesEnabled {
		RenormalizePoles(w, p.TemperatureParam)
	}

	// 12. rivers, if available
	if p.HasRiverGenerator {
		GenerateRivers(w, ruleset, budget.RiverPct, source.Fork("rivers"))
	}
	ApplyWetnessField(w, p.Wetness)

	// 13. ocean smoother
	SmoothOcean(w, ruleset, source.Fork("oceansmoother"))

	// 14. regenerate lakes
	RegenerateLakes(w)

	// 15. biome transitions
	RunBiomeTransitions(w, ruleset, source.Fork("biometransition"))

	// 16. makePlains final sweep
	MakePlains(w)

	var tf *TemperatureField
	if !p.CleanupTemperatureAfterUse {
		tf = temperature
	}

	return Result{Temperature: tf, Budget: budget, ShoreLevel: hf.ShoreLevel}
}

// classifyLandOcean implements §4.6 step 2: ocean below shoreLevel (with a
// depth nudge from the 3x3 land/ocean neighbor ratio, capped at
// OceanDepthMax), land_fill above it. OceanSmoother revisits this depth
// assignment wholesale at step 13, so this pass only needs to be a
// reasonable first cut.
func classifyLandOcean(w *WorldBuffer, ruleset *TerrainRuleset, shoreLevel int) {
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			elevation := w.HeightAt(x, y)
			if elevation >= shoreLevel {
				w.Tiles[x][y].Terrain = landFill
				continue
			}
			ratio := landNeighborRatio3x3(w, hfHeightGreaterEqual(w, shoreLevel), x, y)
			depth := clampInt(int(ratio*float64(OceanDepthMax)), 0, OceanDepthMax)
			w.Tiles[x][y].Terrain = closestOceanDepthTerrain(ruleset, depth)
		}
	}
}

// hfHeightGreaterEqual returns a predicate usable by landNeighborRatio3x3
// before terrain has been assigned to every tile yet (classification is
// still in progress at the point this runs).
func hfHeightGreaterEqual(w *WorldBuffer, shoreLevel int) func(x, y int) bool {
	return func(x, y int) bool {
		return w.HeightAt(x, y) >= shoreLevel
	}
}

func landNeighborRatio3x3(w *WorldBuffer, isLand func(x, y int) bool, x, y int) float64 {
	land, total := 0, 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			xx, yy := x+dx, y+dy
			if !w.InBounds(xx, yy) {
				continue
			}
			total++
			if isLand(xx, yy) {
				land++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(land) / float64(total)
}

// MakePlains resolves every land tile still holding landFill by its
// temperature class (§4.6 step 16, invariant 6). Frozen/Cold land falls
// back to tundra; everything else to plains.
func MakePlains(w *WorldBuffer) {
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			tile := &w.Tiles[x][y]
			if tile.Terrain != landFill {
				continue
			}
			switch tile.Temperature {
			case Frozen, Cold:
				tile.Terrain = TerrainTundra
			default:
				tile.Terrain = TerrainPlains
			}
			w.Placed.SetPlaced(x, y)
		}
	}
}
