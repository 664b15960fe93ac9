package mapgen

import (
	"encoding/json"
	"fmt"
	"os"
)

// rulesetFile is the on-disk shape of a ruleset.json overlay (§6 ruleset
// format). It keys terrain by name rather than embedding Terrain directly
// so a ruleset file can be hand-written without knowing Go's JSON tagging.
type rulesetFile struct {
	Terrains map[Terrain]struct {
		Properties    map[Property]int `json:"properties"`
		MoveCost      int              `json:"moveCost"`
		Defense       int              `json:"defense"`
		Food          int              `json:"food"`
		Shields       int              `json:"shields"`
		Trade         int              `json:"trade"`
		TransformTo   Terrain          `json:"transformTo,omitempty"`
		CanHaveRiver  bool             `json:"canHaveRiver"`
		NotGenerated  bool             `json:"notGenerated,omitempty"`
	} `json:"terrains"`
}

// LoadRuleset reads a ruleset.json file and overlays it onto DefaultRuleset,
// matching combat/config.LoadFromFile's "start from defaults, unmarshal on
// top" pattern. Terrain entries present in the file replace the default
// entry for that terrain; terrains not mentioned keep their classic values.
func LoadRuleset(id, path string) (*TerrainRuleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset file: %w", err)
	}

	var rf rulesetFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse ruleset JSON: %w", err)
	}

	base := DefaultRuleset()
	entries := make(map[Terrain]TerrainEntry, len(base.entries))
	for t, e := range base.entries {
		entries[t] = e
	}
	for t, row := range rf.Terrains {
		entries[t] = TerrainEntry{
			Terrain:      t,
			Properties:   row.Properties,
			MoveCost:     row.MoveCost,
			Defense:      row.Defense,
			Food:         row.Food,
			Shields:      row.Shields,
			Trade:        row.Trade,
			TransformTo:  row.TransformTo,
			CanHaveRiver: row.CanHaveRiver,
			NotGenerated: row.NotGenerated,
		}
	}

	merged := make([]TerrainEntry, 0, len(entries))
	for _, t := range base.order {
		merged = append(merged, entries[t])
		delete(entries, t)
	}
	for _, e := range entries {
		merged = append(merged, e)
	}

	return NewTerrainRuleset(id, merged), nil
}

// DefaultRuleset returns the built-in "classic" terrain table (§6 ruleset
// format). It ships in-module as a Go literal so the default generation
// path never touches the filesystem; LoadRuleset overlays a JSON file for
// callers that name a different rulesetId.
func DefaultRuleset() *TerrainRuleset {
	return NewTerrainRuleset("classic", []TerrainEntry{
		{
			Terrain:      TerrainOcean,
			Properties:   map[Property]int{PropOceanDepth: 10},
			MoveCost:     1,
			NotGenerated: true,
		},
		{
			Terrain:      TerrainCoast,
			Properties:   map[Property]int{PropOceanDepth: 30},
			MoveCost:     1,
			NotGenerated: true,
		},
		{
			Terrain:      TerrainDeepOcean,
			Properties:   map[Property]int{PropOceanDepth: 90},
			MoveCost:     1,
			NotGenerated: true,
		},
		{
			Terrain:      TerrainLake,
			Properties:   map[Property]int{PropOceanDepth: 10},
			MoveCost:     1,
			NotGenerated: true,
		},
		{
			Terrain:      TerrainGrassland,
			Properties:   map[Property]int{PropGreen: 50, PropTemperate: 60},
			MoveCost:     1,
			Food:         3,
			CanHaveRiver: true,
			TransformTo:  TerrainPlains,
		},
		{
			Terrain:      TerrainPlains,
			Properties:   map[Property]int{PropGreen: 40, PropDry: 20, PropTemperate: 40},
			MoveCost:     1,
			Food:         2,
			CanHaveRiver: true,
			TransformTo:  TerrainGrassland,
		},
		{
			Terrain:      TerrainDesert,
			Properties:   map[Property]int{PropDry: 100, PropTropical: 40},
			MoveCost:     1,
			Food:         1,
			CanHaveRiver: true,
			TransformTo:  TerrainPlains,
		},
		{
			Terrain:      TerrainTundra,
			Properties:   map[Property]int{PropCold: 100, PropFrozen: 20},
			MoveCost:     1,
			Food:         1,
			CanHaveRiver: true,
			TransformTo:  TerrainDesert,
		},
		{
			Terrain:      TerrainForest,
			Properties:   map[Property]int{PropFoliage: 100, PropTemperate: 60},
			MoveCost:     2,
			Food:         1,
			Shields:      2,
			CanHaveRiver: true,
			TransformTo:  TerrainJungle,
		},
		{
			Terrain:      TerrainJungle,
			Properties:   map[Property]int{PropFoliage: 90, PropTropical: 100},
			MoveCost:     2,
			Food:         1,
			Shields:      1,
			CanHaveRiver: true,
			TransformTo:  TerrainForest,
		},
		{
			Terrain:      TerrainSwamp,
			Properties:   map[Property]int{PropWet: 100, PropTropical: 30},
			MoveCost:     2,
			Food:         1,
			CanHaveRiver: true,
			TransformTo:  TerrainGrassland,
		},
		{
			Terrain:      TerrainHills,
			Properties:   map[Property]int{PropMountainous: 50, PropGreen: 20},
			MoveCost:     2,
			Defense:      50,
			Shields:      2,
			CanHaveRiver: true,
			TransformTo:  TerrainGrassland,
		},
		{
			Terrain:      TerrainMountains,
			Properties:   map[Property]int{PropMountainous: 100},
			MoveCost:     3,
			Defense:      100,
			Shields:      1,
			CanHaveRiver: false,
			TransformTo:  TerrainHills,
		},
	})
}
