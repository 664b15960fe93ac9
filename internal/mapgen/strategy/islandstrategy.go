package strategy

import (
	"context"
	"time"

	"civgen/internal/errors"
	"civgen/internal/logging"
	"civgen/internal/mapgen"
	"civgen/internal/mapgen/validator"
	"civgen/internal/rng"
)

// island is one painted landmass: its tiles and the players assigned to
// start on it.
type island struct {
	tiles   [][2]int
	players []int
}

// GenerateIsland runs S2: it divides the land-mass budget into big/medium/
// small island buckets keyed by StartPosMode, paints each bucket by
// bucketed growth, then runs the shared climate/relief/river/biome
// pipeline and per-continent terrain variety (fillIslandTerrain, §4.16)
// before validating.
func GenerateIsland(ctx context.Context, params GenerationParams) (*GenerationResult, error) {
	start := time.Now()
	source := rng.New(seedToInt64(params.Seed))

	w := mapgen.NewWorldBuffer(params.Width, params.Height, params.Seed, string(mapgen.GeneratorIsland))
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			w.Tiles[x][y].Terrain = mapgen.TerrainOcean
		}
	}

	islands, err := planIslands(params)
	if err != nil {
		return nil, err
	}

	totalMass := totalLandTiles(params)
	paintIslands(w, islands, totalMass, source.Fork("paint"))

	mapgen.SetAllOceanTilesPlaced(w)
	budget := mapgen.AdjustTerrainParam(params.LandPercent, params.Steepness, params.Wetness, params.TemperatureParam)

	// Fabricate a height field consistent with the painted land/ocean split
	// so relief and temperature have an elevation signal to work from.
	hf := islandHeightField(w, source.Fork("heightfield"))

	mapgen.PlaceRelief(w, hf, params.Ruleset, mapgen.GeneratorIsland, params.Steepness, source.Fork("relief"))

	tf := mapgen.BuildTemperatureField(w, params.TemperatureParam)
	tf.ApplyTo(w)

	mapgen.PlaceTerrain(w, params.Ruleset, budget, hf.ShoreLevel, source.Fork("terrainplacer"))

	mapgen.RemoveTinyIslands(w, mapgen.GeneratorIsland, source.Fork("tinyislands"))
	mapgen.LabelContinents(w)

	mapgen.GenerateRivers(w, params.Ruleset, budget.RiverPct, source.Fork("rivers"))
	mapgen.SmoothOcean(w, params.Ruleset, source.Fork("oceansmoother"))
	mapgen.RegenerateLakes(w)
	mapgen.ApplyWetnessField(w, params.Wetness)
	mapgen.RunBiomeTransitions(w, params.Ruleset, source.Fork("biometransition"))

	fillIslandTerrainVariety(w, params.Ruleset, source.Fork("variety"))

	mapgen.MakePlains(w)

	starts := assignStartPositions(w, islands, params.PlayerCount)
	emitted := w.Finalize(start.Format(time.RFC3339), starts)

	report := validator.Validate(validator.Input{
		Map:              emitted,
		Budget:           budget,
		GenerationTimeMs: time.Since(start).Milliseconds(),
	})

	logging.LogInfo(ctx, "island generation finished", map[string]interface{}{
		"score":  report.Score,
		"passed": report.Passed,
	})

	return &GenerationResult{Map: emitted, Validator: report}, nil
}

func totalLandTiles(params GenerationParams) int {
	return params.Width * params.Height * params.LandPercent / 100
}

// planIslands dispatches on StartPosMode to the three named sub-generators
// (§4.15) and returns the island/mass plan without painting anything yet.
func planIslands(params GenerationParams) ([]island, error) {
	if params.LandPercent > 85 {
		return nil, errors.FallbackToRandom("landpercent exceeds the island generators' 85% cap")
	}

	switch params.StartPosMode {
	case StartPosVariable:
		if params.Width < 30 || params.Height < 30 {
			return planMapGenerator4(params)
		}
		return planMapGenerator2(params)
	case StartPosDefault, StartPosSingle:
		if params.Width < 40 || params.Height < 40 {
			return planMapGenerator4(params)
		}
		return planMapGenerator3(params)
	default: // TWO_ON_THREE, ALL
		return planMapGenerator4(params)
	}
}

// planMapGenerator2 (VARIABLE): one big continent, one medium continent,
// then one small island per player. It assigns no sizes; paintIslands gives
// the big continent 50%, the medium one 30% and the small islands an even
// split of the last 20%, not a 70/20/10 split.
func planMapGenerator2(params GenerationParams) ([]island, error) {
	total := totalLandTiles(params)
	var plan []island
	plan = append(plan, island{players: allPlayers(params.PlayerCount)})
	plan = append(plan, island{})
	for p := 1; p <= params.PlayerCount; p++ {
		plan = append(plan, island{players: []int{p}})
	}
	_ = total
	return plan, nil
}

// planMapGenerator3 (DEFAULT/SINGLE): bigIslands = floor(sqrt(playerCount))
// continents with the players spread evenly across them, plus one
// supplementary single-player island per player. It assigns no sizes: the
// continents are not sized totalMass/bigIslands and the supplementary
// islands carry no 11/8 multiplier; paintIslands' fixed shares decide.
func planMapGenerator3(params GenerationParams) ([]island, error) {
	bigIslands := isqrt(params.PlayerCount)
	if bigIslands < 1 {
		bigIslands = 1
	}

	var plan []island
	playersPerBig := distributeEvenly(params.PlayerCount, bigIslands)
	for _, players := range playersPerBig {
		plan = append(plan, island{players: players})
	}
	for p := 1; p <= params.PlayerCount; p++ {
		plan = append(plan, island{players: []int{p}})
	}
	return plan, nil
}

// planMapGenerator4 (TWO_ON_THREE/ALL): players_per_island in {2,3} chosen
// from how evenly playerCount divides, floor(playerCount/3) multi-player
// islands, then one single-player island per remaining player.
func planMapGenerator4(params GenerationParams) ([]island, error) {
	playersPerIsland := 2
	if params.PlayerCount%3 == 0 && params.PlayerCount >= 6 {
		playersPerIsland = 3
	}

	var plan []island
	remaining := params.PlayerCount
	nextPlayer := 1
	for remaining >= playersPerIsland && len(plan) < params.PlayerCount/3 {
		players := make([]int, 0, playersPerIsland)
		for i := 0; i < playersPerIsland; i++ {
			players = append(players, nextPlayer)
			nextPlayer++
		}
		plan = append(plan, island{players: players})
		remaining -= playersPerIsland
	}
	for ; remaining > 0; remaining-- {
		plan = append(plan, island{players: []int{nextPlayer}})
		nextPlayer++
	}
	return plan, nil
}

func allPlayers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func distributeEvenly(playerCount, buckets int) [][]int {
	out := make([][]int, buckets)
	p := 1
	for i := 0; p <= playerCount; i = (i + 1) % buckets {
		out[i] = append(out[i], p)
		p++
	}
	return out
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// paintIslands grows each planned island by randomized flood-fill from a
// random seed point, sized by its share of totalMass (the first island gets
// 50%, the second 30%, and every further island an even split of the
// remaining 20%; a lone island gets only 50%, a pair 80%). If
// fewer than 95% of the big continent's target is filled, the seed is
// re-rolled once before accepting the shortfall (§4.15).
func paintIslands(w *mapgen.WorldBuffer, islands []island, totalMass int, source *rng.Source) {
	if len(islands) == 0 || totalMass <= 0 {
		return
	}

	shares := make([]float64, len(islands))
	remaining := 1.0
	if len(islands) >= 1 {
		shares[0] = 0.5
		remaining -= shares[0]
	}
	if len(islands) >= 2 {
		shares[1] = 0.3
		remaining -= shares[1]
	}
	rest := len(islands) - 2
	if rest > 0 {
		each := remaining / float64(rest)
		for i := 2; i < len(islands); i++ {
			shares[i] = each
		}
	}

	occupied := make([]bool, w.Width*w.Height)
	for i := range islands {
		target := int(shares[i] * float64(totalMass))
		if target < 4 {
			target = 4
		}

		var tiles [][2]int
		for attempt := 0; attempt < 2; attempt++ {
			tiles = growIsland(w, occupied, target, source)
			if i > 0 || float64(len(tiles)) >= 0.95*float64(target) {
				break
			}
		}

		for _, t := range tiles {
			occupied[t[1]*w.Width+t[0]] = true
			w.Tiles[t[0]][t[1]].Terrain = mapgen.TerrainGrassland // land_fill
		}
		islands[i].tiles = tiles
	}
}

func growIsland(w *mapgen.WorldBuffer, occupied []bool, target int, source *rng.Source) [][2]int {
	sx, sy := source.Intn(w.Width), source.Intn(w.Height)
	if occupied[sy*w.Width+sx] {
		// nudge to an unoccupied tile via a short bounded scan
		found := false
		for dy := -2; dy <= 2 && !found; dy++ {
			for dx := -2; dx <= 2 && !found; dx++ {
				xx, yy := sx+dx, sy+dy
				if w.InBounds(xx, yy) && !occupied[yy*w.Width+xx] {
					sx, sy, found = xx, yy, true
				}
			}
		}
	}

	visited := map[[2]int]bool{{sx, sy}: true}
	frontier := [][2]int{{sx, sy}}
	var tiles [][2]int

	for len(tiles) < target && len(frontier) > 0 {
		idx := source.Intn(len(frontier))
		p := frontier[idx]
		frontier = append(frontier[:idx], frontier[idx+1:]...)

		if occupied[p[1]*w.Width+p[0]] {
			continue
		}
		tiles = append(tiles, p)

		for _, d := range [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
			np := [2]int{p[0] + d[0], p[1] + d[1]}
			if !w.InBounds(np[0], np[1]) || visited[np] || occupied[np[1]*w.Width+np[0]] {
				continue
			}
			visited[np] = true
			frontier = append(frontier, np)
		}
	}
	return tiles
}

// islandHeightField gives painted land an elevation above shoreLevel and
// ocean below it, so relief/temperature have a meaningful signal without
// re-running a full HeightField strategy the island layout didn't use.
func islandHeightField(w *mapgen.WorldBuffer, source *rng.Source) *mapgen.HeightField {
	values := make([]int, w.Width*w.Height)
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			idx := y*w.Width + x
			if w.Tiles[x][y].Terrain.IsWater() {
				values[idx] = int(source.Float64() * 300)
			} else {
				values[idx] = 400 + int(source.Float64()*600)
			}
		}
	}
	smoothed := mapgen.SmoothGrid(intsToFloats(values), w.Width, w.Height)
	ints := make([]int, len(smoothed))
	for i, v := range smoothed {
		ints[i] = int(v)
	}
	hf := &mapgen.HeightField{Width: w.Width, Height: w.Height, Values: ints}
	hf.ShoreLevel = 350
	hf.MountainLevel = (mapgen.HMax-hf.ShoreLevel)*30/100 + hf.ShoreLevel
	hf.ApplyTo(w)
	return hf
}

func intsToFloats(v []int) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// fillIslandTerrainVariety implements §4.16 fillIslandTerrain: for each
// continent and each of {forest, desert, mountain, swamp}, draw candidate
// land tiles at random (up to 10x a small per-continent target) and place
// the ruleset-chosen terrain on each one, up to the target, that is
// currently grassland or plains (whether or not TerrainPlacer placed it)
// and whose temperature/wetness fit — this is the per-island "extra
// variety" layer, run after the shared climate placement.
func fillIslandTerrainVariety(w *mapgen.WorldBuffer, ruleset *mapgen.TerrainRuleset, source *rng.Source) {
	continents := map[int][][2]int{}
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			id := w.Tiles[x][y].ContinentID
			if id > 0 {
				continents[id] = append(continents[id], [2]int{x, y})
			}
		}
	}

	type varietyClass struct {
		target, prefer, avoid mapgen.Property
		temp                  func(mapgen.Temperature) bool
		minWetness            int
	}
	classes := []varietyClass{
		{mapgen.PropFoliage, mapgen.PropTemperate, mapgen.PropTropical, func(t mapgen.Temperature) bool { return t != mapgen.Frozen }, 40},
		{mapgen.PropDry, mapgen.PropTropical, mapgen.PropCold, func(t mapgen.Temperature) bool { return t != mapgen.Frozen }, 0},
		{mapgen.PropMountainous, mapgen.Unused, mapgen.Unused, func(mapgen.Temperature) bool { return true }, 0},
		{mapgen.PropWet, mapgen.Unused, mapgen.PropFoliage, func(t mapgen.Temperature) bool { return t == mapgen.Temperate || t == mapgen.Tropical }, 50},
	}

	for _, tiles := range continents {
		if len(tiles) == 0 {
			continue
		}
		target := maxInt(1, len(tiles)/20)
		for _, c := range classes {
			tries := target * 10
			placed := 0
			for i := 0; i < tries && placed < target; i++ {
				p := tiles[source.Intn(len(tiles))]
				tile := &w.Tiles[p[0]][p[1]]
				if tile.Terrain != mapgen.TerrainGrassland && tile.Terrain != mapgen.TerrainPlains {
					continue
				}
				if !c.temp(tile.Temperature) || tile.Wetness < c.minWetness {
					continue
				}
				tile.Terrain = ruleset.PickTerrain(c.target, c.prefer, c.avoid, source)
				placed++
			}
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// assignStartPositions gives each planned island's players a start tile
// drawn from that island's own painted tiles.
func assignStartPositions(w *mapgen.WorldBuffer, islands []island, playerCount int) []mapgen.StartPosition {
	var starts []mapgen.StartPosition
	for _, isl := range islands {
		if len(isl.tiles) == 0 || len(isl.players) == 0 {
			continue
		}
		step := maxInt(1, len(isl.tiles)/len(isl.players))
		for i, player := range isl.players {
			idx := (i * step) % len(isl.tiles)
			p := isl.tiles[idx]
			if w.Tiles[p[0]][p[1]].Terrain.IsWater() {
				continue
			}
			starts = append(starts, mapgen.StartPosition{X: p[0], Y: p[1], PlayerID: player})
		}
	}
	return starts
}
