package mapgen

import (
	"testing"

	"civgen/internal/rng"
)

func TestPickTerrainHonorsTarget(t *testing.T) {
	r := DefaultRuleset()
	source := rng.New(1)

	seen := map[Terrain]bool{}
	for i := 0; i < 200; i++ {
		t := r.PickTerrain(PropMountainous, Unused, Unused, source)
		seen[t] = true
	}
	if !seen[TerrainMountains] && !seen[TerrainHills] {
		t.Fatalf("expected repeated MOUNTAINOUS draws to surface mountains or hills, got %v", seen)
	}
}

func TestPickTerrainFallsBackToGrassland(t *testing.T) {
	// A ruleset with only NotGenerated entries has no candidate at any
	// stage of the ladder, so PickTerrain must terminate at grassland
	// rather than looping or panicking.
	r := NewTerrainRuleset("empty", []TerrainEntry{
		{Terrain: TerrainDesert, NotGenerated: true, Properties: map[Property]int{PropDry: 10}},
	})
	source := rng.New(2)

	got := r.PickTerrain(PropDry, Unused, Unused, source)
	if got != TerrainGrassland {
		t.Fatalf("expected fallback to grassland, got %v", got)
	}
}

func TestPickTerrainAvoidExcludesMatches(t *testing.T) {
	r := NewTerrainRuleset("test", []TerrainEntry{
		{Terrain: TerrainDesert, Properties: map[Property]int{PropDry: 5}},
		{Terrain: TerrainSwamp, Properties: map[Property]int{PropWet: 5}},
	})
	source := rng.New(3)

	for i := 0; i < 50; i++ {
		got := r.PickTerrain(Unused, Unused, PropWet, source)
		if got == TerrainSwamp {
			t.Fatalf("PickTerrain returned a terrain carrying the avoided property")
		}
	}
}

func TestTransformToDefaultsToSelf(t *testing.T) {
	r := DefaultRuleset()
	if got := r.TransformTo(TerrainOcean); got != TerrainOcean {
		t.Fatalf("expected TransformTo with no mapping to return the input terrain, got %v", got)
	}
}

func TestDefaultRulesetHasEssentialTerrains(t *testing.T) {
	r := DefaultRuleset()
	for _, terrain := range []Terrain{TerrainGrassland, TerrainOcean, TerrainMountains, TerrainForest} {
		if _, ok := r.Entry(terrain); !ok {
			t.Fatalf("expected classic ruleset to define %v", terrain)
		}
	}
}
