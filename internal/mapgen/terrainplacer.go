package mapgen

import "civgen/internal/rng"

// wetnessCond is the coarse early-stage wetness bucket §4.8's placement
// table conditions on. It is deliberately distinct from the 0..100
// WetnessField (§4.5): that field needs rivers to exist first, but
// TerrainPlacer runs at step 8, before RiverGenerator (step 12). Instead
// each candidate tile's bucket is derived from its Chebyshev distance to
// the nearest water tile, already fixed by step 2's land/ocean pass.
type wetnessCond int

const (
	wetAll wetnessCond = iota
	wetDry
	wetNotDry
)

const dryProximityRadius = 3 // tiles farther than this from water classify as dry

func placementIsDry(w *WorldBuffer, x, y int) bool {
	for r := 0; r <= dryProximityRadius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if maxInt(absInt(dx), absInt(dy)) != r {
					continue
				}
				xx, yy := x+dx, y+dy
				if !w.InBounds(xx, yy) {
					continue
				}
				if w.Tiles[xx][yy].Terrain.IsWater() {
					return false
				}
			}
		}
	}
	return true
}

func (c wetnessCond) match(w *WorldBuffer, x, y int) bool {
	switch c {
	case wetDry:
		return placementIsDry(w, x, y)
	case wetNotDry:
		return !placementIsDry(w, x, y)
	default:
		return true
	}
}

// mountainCond is the hmap_low_level-relative condition from §4.8's table.
type mountainCond int

const (
	mountainNone mountainCond = iota
	mountainLow
	mountainNotLow
)

func (c mountainCond) match(elevation, lowLevel int) bool {
	switch c {
	case mountainLow:
		return elevation < lowLevel
	case mountainNotLow:
		return elevation >= lowLevel
	default:
		return true
	}
}

// tempCond is the temperature-set condition from §4.8's table.
type tempCond struct {
	set    TemperatureSet
	single Temperature // when != 0, match requires exact equality (e.g. TROPICAL)
}

func condNotFrozen() tempCond { return tempCond{set: NotFrozen} }
func condHot() tempCond       { return tempCond{set: Hot} }
func condTropical() tempCond  { return tempCond{single: Tropical} }

func (c tempCond) match(t Temperature) bool {
	if c.single != 0 {
		return t == c.single
	}
	return c.set.Contains(t)
}

// placementRule is one row of §4.8's table.
type placementRule struct {
	name            string
	target, prefer, avoid Property
	wetness         wetnessCond
	temp            tempCond
	mountain        mountainCond
}

// HMapLowLevel is the elevation threshold separating "low" land (eligible
// for swamp) from "high" land (§4.8, GLOSSARY).
func HMapLowLevel(shoreLevel int, swampPct float64) int {
	return int(4*swampPct*float64(HMax-shoreLevel)/100) + shoreLevel
}

// PlaceTerrain runs the quantity-budgeted climate placement of §4.8: for
// each of forests/jungles/swamps/deserts/alt_deserts, repeatedly draw a
// random unplaced land tile matching the rule's conditions and commit a
// ruleset-chosen terrain, until its budget is exhausted or candidates run
// out (at which point the remaining budget spills to plains).
func PlaceTerrain(w *WorldBuffer, ruleset *TerrainRuleset, budget TerrainBudget, shoreLevel int, source *rng.Source) {
	landTiles := countLandTiles(w)
	lowLevel := HMapLowLevel(shoreLevel, budget.SwampPct)

	rules := []struct {
		rule  placementRule
		count int
	}{
		{placementRule{"forests", PropFoliage, PropTemperate, PropTropical, wetAll, condNotFrozen(), mountainNone}, budgetCount(budget.ForestPct, landTiles)},
		{placementRule{"jungles", PropFoliage, PropTropical, PropCold, wetAll, condTropical(), mountainNone}, budgetCount(budget.JunglePct, landTiles)},
		{placementRule{"swamps", PropWet, Unused, PropFoliage, wetNotDry, condHot(), mountainLow}, budgetCount(budget.SwampPct, landTiles)},
		// The desert budget has no separate alt-desert formula in §4.13; it
		// is split evenly between the two desert variants (dry tiles only vs.
		// any wetness) so both draw from the same overall allotment.
		{placementRule{"deserts", PropDry, PropTropical, PropCold, wetDry, condNotFrozen(), mountainNotLow}, budgetCount(budget.DesertPct, landTiles) / 2},
		{placementRule{"alt_deserts", PropDry, PropTropical, PropWet, wetAll, condNotFrozen(), mountainNotLow}, budgetCount(budget.DesertPct, landTiles) / 2},
	}

	spillover := 0
	for _, r := range rules {
		spillover += placeBudgetedRule(w, ruleset, r.rule, r.count, lowLevel, source)
	}
	placeSpillover(w, ruleset, spillover, source)
}

func budgetCount(pct float64, landTiles int) int {
	n := int(pct / 100 * float64(landTiles))
	if n < 0 {
		return 0
	}
	return n
}

func countLandTiles(w *WorldBuffer) int {
	n := 0
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			if !w.Tiles[x][y].Terrain.IsWater() {
				n++
			}
		}
	}
	return n
}

const maxPickTries = 200

// placeBudgetedRule places up to count tiles matching rule, returning the
// remaining (unplaceable) count to spill to the fallback bucket.
func placeBudgetedRule(w *WorldBuffer, ruleset *TerrainRuleset, rule placementRule, count, lowLevel int, source *rng.Source) int {
	placed := 0
	for placed < count {
		x, y, ok := findCandidate(w, rule, lowLevel, source)
		if !ok {
			break
		}
		terrain := ruleset.PickTerrain(rule.target, rule.prefer, rule.avoid, source)
		w.Tiles[x][y].Terrain = terrain
		w.Placed.SetPlaced(x, y)
		placed++
	}
	return count - placed
}

func findCandidate(w *WorldBuffer, rule placementRule, lowLevel int, source *rng.Source) (int, int, bool) {
	for try := 0; try < maxPickTries; try++ {
		x, y := source.Intn(w.Width), source.Intn(w.Height)
		if !w.Placed.NotPlaced(x, y) {
			continue
		}
		tile := &w.Tiles[x][y]
		if tile.Terrain.IsWater() {
			continue
		}
		if !rule.wetness.match(w, x, y) {
			continue
		}
		if !rule.temp.match(tile.Temperature) {
			continue
		}
		if !rule.mountain.match(w.HeightAt(x, y), lowLevel) {
			continue
		}
		return x, y, true
	}
	return 0, 0, false
}

// placeSpillover plants plains (the fallback bucket) on random unplaced
// land tiles, up to count. Any land left over after this is resolved later
// by LandBuilder's final makePlains sweep.
func placeSpillover(w *WorldBuffer, ruleset *TerrainRuleset, count int, source *rng.Source) {
	placed := 0
	for try := 0; placed < count && try < count*maxPickTries; try++ {
		x, y := source.Intn(w.Width), source.Intn(w.Height)
		if !w.Placed.NotPlaced(x, y) || w.Tiles[x][y].Terrain.IsWater() {
			continue
		}
		w.Tiles[x][y].Terrain = TerrainPlains
		w.Placed.SetPlaced(x, y)
		placed++
	}
	_ = ruleset
}
