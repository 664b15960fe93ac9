package mapgen

import "civgen/internal/rng"

// Property is one of the fixed climate-affinity properties a terrain entry
// carries (§6 ruleset.json shape).
type Property string

const (
	PropCold        Property = "COLD"
	PropDry         Property = "DRY"
	PropFoliage     Property = "FOLIAGE"
	PropFrozen      Property = "FROZEN"
	PropGreen       Property = "GREEN"
	PropMountainous Property = "MOUNTAINOUS"
	PropOceanDepth  Property = "OCEAN_DEPTH"
	PropTemperate   Property = "TEMPERATE"
	PropTropical    Property = "TROPICAL"
	PropWet         Property = "WET"

	// Unused is the sentinel meaning "this parameter of pickTerrain does not
	// constrain the draw".
	Unused Property = ""
)

// TerrainEntry is one row of the ruleset table.
type TerrainEntry struct {
	Terrain      Terrain
	Properties   map[Property]int
	MoveCost     int
	Defense      int
	Food         int
	Shields      int
	Trade        int
	TransformTo  Terrain
	CanHaveRiver bool
	NotGenerated bool
}

// TerrainRuleset is the immutable, read-only terrain table (L1). It is
// constructed once at load time and never mutated afterward — unlike the
// module-level mutable global the re-architecture notes call out, every
// consumer holds the same *TerrainRuleset by reference.
type TerrainRuleset struct {
	id      string
	entries map[Terrain]TerrainEntry
	order   []Terrain // fixed iteration order, so weighted draws are deterministic given the same rng stream
}

// NewTerrainRuleset builds a ruleset from an ordered list of entries. Order
// is preserved as the table's iteration order.
func NewTerrainRuleset(id string, entries []TerrainEntry) *TerrainRuleset {
	r := &TerrainRuleset{
		id:      id,
		entries: make(map[Terrain]TerrainEntry, len(entries)),
		order:   make([]Terrain, 0, len(entries)),
	}
	for _, e := range entries {
		r.entries[e.Terrain] = e
		r.order = append(r.order, e.Terrain)
	}
	return r
}

// ID returns the ruleset identifier (e.g. "classic").
func (r *TerrainRuleset) ID() string { return r.id }

// Properties returns the climate-affinity table for t, or nil if t is not in
// the ruleset.
func (r *TerrainRuleset) Properties(t Terrain) map[Property]int {
	return r.entries[t].Properties
}

// Entry returns the full table row for t and whether it exists.
func (r *TerrainRuleset) Entry(t Terrain) (TerrainEntry, bool) {
	e, ok := r.entries[t]
	return e, ok
}

// TransformTo returns the terrain t transforms into (e.g. forest -> jungle
// under BiomeTransitioner climate swaps), or t itself if none is defined.
func (r *TerrainRuleset) TransformTo(t Terrain) Terrain {
	e, ok := r.entries[t]
	if !ok || e.TransformTo == "" {
		return t
	}
	return e.TransformTo
}

// CanHaveRiver reports whether a river may terminate in or pass through t.
func (r *TerrainRuleset) CanHaveRiver(t Terrain) bool {
	return r.entries[t].CanHaveRiver
}

// PickTerrain implements the weighted draw and fallback ladder from §4.1.
//
// Candidates are every generatable terrain whose prefer property is > 0 (if
// prefer != Unused) and whose avoid property is 0 (if avoid != Unused);
// weight is properties(terrain)[target], or 1 if target == Unused. If no
// candidate survives, the constraints are dropped one at a time — prefer,
// then avoid, then target — terminating in at most 3 hops (property P6); if
// still nothing survives, grassland is returned.
func (r *TerrainRuleset) PickTerrain(target, prefer, avoid Property, source *rng.Source) Terrain {
	stages := []struct{ target, prefer, avoid Property }{
		{target, prefer, avoid},
		{target, Unused, avoid},
		{target, Unused, Unused},
		{Unused, Unused, Unused},
	}

	for _, s := range stages {
		if t, ok := r.drawOnce(s.target, s.prefer, s.avoid, source); ok {
			return t
		}
	}
	return TerrainGrassland
}

func (r *TerrainRuleset) drawOnce(target, prefer, avoid Property, source *rng.Source) (Terrain, bool) {
	candidates := make([]Terrain, 0, len(r.order))
	weights := make([]int, 0, len(r.order))

	for _, t := range r.order {
		e := r.entries[t]
		if e.NotGenerated {
			continue
		}
		if prefer != Unused && e.Properties[prefer] <= 0 {
			continue
		}
		if avoid != Unused && e.Properties[avoid] != 0 {
			continue
		}
		w := 1
		if target != Unused {
			w = e.Properties[target]
			if w <= 0 {
				continue
			}
		}
		candidates = append(candidates, t)
		weights = append(weights, w)
	}

	if len(candidates) == 0 {
		return "", false
	}
	return weightedDraw(candidates, weights, source), true
}

func weightedDraw(candidates []Terrain, weights []int, source *rng.Source) Terrain {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return candidates[0]
	}
	roll := int(source.Float64() * float64(total))
	for i, w := range weights {
		if roll < w {
			return candidates[i]
		}
		roll -= w
	}
	return candidates[len(candidates)-1]
}
