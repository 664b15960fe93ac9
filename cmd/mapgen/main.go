package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"civgen/internal/errors"
	"civgen/internal/logging"
	"civgen/internal/mapgen"
	"civgen/internal/mapgen/strategy"
)

func main() {
	logging.InitLogger()

	width := flag.Int("width", 60, "map width")
	height := flag.Int("height", 40, "map height")
	seed := flag.String("seed", "demo-seed", "generation seed")
	generator := flag.String("generator", "fractal", "fractal|random|fracture|island|fair")
	players := flag.Int("players", 4, "player count")
	landpercent := flag.Int("landpercent", 30, "land percent 0..100")
	steepness := flag.Int("steepness", 30, "steepness 0..100")
	wetness := flag.Int("wetness", 50, "wetness 0..100")
	temperature := flag.Int("temperature", 50, "temperatureParam 0..100")
	startpos := flag.String("startpos", "DEFAULT", "DEFAULT|SINGLE|TWO_ON_THREE|ALL|VARIABLE")
	flag.Parse()

	req := strategy.WorldGenRequest{
		Width:            *width,
		Height:           *height,
		Seed:             *seed,
		Generator:        mapgen.Generator(*generator),
		StartPosMode:     strategy.StartPosMode(*startpos),
		TemperatureParam: *temperature,
		LandPercent:      *landpercent,
		Steepness:        *steepness,
		Wetness:          *wetness,
		PlayerCount:      *players,
		RulesetID:        "classic",
	}

	ctx := logging.WithGeneration(context.Background(), "")
	mapper := strategy.NewConfigMapper()
	params, err := mapper.MapToParams(req)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	result, err := generate(ctx, params)
	if err != nil {
		var ge *errors.GenerationError
		if as, ok := err.(*errors.GenerationError); ok {
			ge = as
		}
		if ge != nil {
			fmt.Fprintf(os.Stderr, "generation failed: %s\n", ge.Error())
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("generation crashed")
	}

	printSummary(result)
}

// generate dispatches to the appropriate top-level strategy, applying the
// fallback chain the spec's failure surface describes (§6/§7): fair falls
// back to island, island falls back to random (a plain height-based
// fractal run) when its own admissibility check fails.
func generate(ctx context.Context, params strategy.GenerationParams) (*strategy.GenerationResult, error) {
	switch params.Generator {
	case mapgen.GeneratorFair:
		result, err := strategy.GenerateFairIslands(ctx, params)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, errors.KindFallbackToIsland) {
			return strategy.GenerateIsland(ctx, params)
		}
		return nil, err
	case mapgen.GeneratorIsland:
		result, err := strategy.GenerateIsland(ctx, params)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, errors.KindFallbackToRandom) {
			fallback := params
			fallback.Generator = mapgen.GeneratorFractal
			return strategy.GenerateHeightBased(ctx, fallback)
		}
		return nil, err
	default:
		return strategy.GenerateHeightBased(ctx, params)
	}
}

func printSummary(result *strategy.GenerationResult) {
	m := result.Map
	fmt.Printf("map %dx%d seed=%s generated=%s\n", m.Width, m.Height, m.Seed, m.GeneratedAt)
	fmt.Printf("validator: passed=%v score=%.1f\n", result.Validator.Passed, result.Validator.Score)
	for _, issue := range result.Validator.Issues {
		fmt.Printf("  [%s] %s\n", issue.Severity, issue.Message)
	}
	fmt.Printf("starting positions:\n")
	for _, sp := range m.StartingPositions {
		fmt.Printf("  player %d at (%d,%d)\n", sp.PlayerID, sp.X, sp.Y)
	}

	printASCII(m)
}

var terrainGlyph = map[mapgen.Terrain]byte{
	mapgen.TerrainOcean:     '~',
	mapgen.TerrainCoast:     ',',
	mapgen.TerrainDeepOcean: '^',
	mapgen.TerrainLake:      'o',
	mapgen.TerrainGrassland: '.',
	mapgen.TerrainPlains:    '_',
	mapgen.TerrainDesert:    ':',
	mapgen.TerrainTundra:    '"',
	mapgen.TerrainForest:    'f',
	mapgen.TerrainJungle:    'j',
	mapgen.TerrainSwamp:     's',
	mapgen.TerrainHills:     'h',
	mapgen.TerrainMountains: '^',
}

func printASCII(m *mapgen.MapData) {
	for y := 0; y < m.Height; y++ {
		row := make([]byte, m.Width)
		for x := 0; x < m.Width; x++ {
			g, ok := terrainGlyph[m.Tiles[x][y].Terrain]
			if !ok {
				g = '?'
			}
			row[x] = g
		}
		fmt.Println(string(row))
	}
}
