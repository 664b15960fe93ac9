package mapgen

import "math"

// TerrainBudget is the set of terrain quantity percentages LandBuilder
// derives before any placement pass runs (§4.13).
type TerrainBudget struct {
	MountainPct float64
	ForestPct   float64
	JunglePct   float64
	RiverPct    float64
	SwampPct    float64
	DesertPct   float64
}

// AdjustTerrainParam computes the terrain quantity budget from the four
// world-shape parameters, following the exact formulas in §4.13. The
// polar/factor intermediates aren't exposed; callers only need the
// resulting percentages.
func AdjustTerrainParam(landPercent, steepness, wetness, temperatureParam int) TerrainBudget {
	L := float64(landPercent)
	S := float64(steepness)
	W := float64(wetness)
	T := float64(temperatureParam)
	mc := float64(MaxColatitude)

	iceBase := IceBase(temperatureParam)
	tropicalLevel := TropicalLevel(temperatureParam)

	polar := 2 * iceBase * L / mc
	mountFactor := (100 - polar - 24) / 10000
	factor := (100 - polar - 0.8*S) / 10000

	mountainPct := mountFactor * S * 90
	forestRaw := factor * (W*40 + 700)
	junglePct := forestRaw * (mc - tropicalLevel) / (2 * mc)
	forestPct := forestRaw - junglePct
	riverPct := (100 - polar) * (3 + W/12) / 100
	swampPct := factor * math.Max(0, W*12-150+T*10)
	desertPct := factor * math.Max(0, T*15-250+(100-W)*10)

	return TerrainBudget{
		MountainPct: mountainPct,
		ForestPct:   forestPct,
		JunglePct:   junglePct,
		RiverPct:    riverPct,
		SwampPct:    swampPct,
		DesertPct:   desertPct,
	}
}
