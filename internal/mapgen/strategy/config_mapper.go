// Package strategy implements the top-level generation drivers (S1-S3,
// §4.14-4.17): HeightBasedStrategy, IslandStrategy, and FairIslandsStrategy.
// It imports mapgen but mapgen never imports strategy.
package strategy

import (
	"civgen/internal/mapgen"
	appErrors "civgen/internal/errors"
)

// StartPosMode is the configuration of how players map to islands
// (GLOSSARY).
type StartPosMode string

const (
	StartPosDefault     StartPosMode = "DEFAULT"
	StartPosSingle      StartPosMode = "SINGLE"
	StartPosTwoOnThree  StartPosMode = "TWO_ON_THREE"
	StartPosAll         StartPosMode = "ALL"
	StartPosVariable    StartPosMode = "VARIABLE"
)

// WorldGenRequest is the external configuration shape a caller supplies
// (§6 Inputs). ConfigMapper translates it into the internal
// GenerationParams every strategy consumes.
type WorldGenRequest struct {
	Width, Height                   int
	Seed                            string
	Generator                       mapgen.Generator
	StartPosMode                    StartPosMode
	TemperatureParam                int
	LandPercent, Steepness, Wetness int
	PlayerCount                     int
	CleanupTemperatureMapAfterUse   bool
	RulesetID                       string
}

// GenerationParams is the internal, validated parameter set every strategy
// runs against (the orchestrator.GenerationParams pattern, adapted).
type GenerationParams struct {
	Width, Height                   int
	Seed                            string
	Generator                       mapgen.Generator
	StartPosMode                    StartPosMode
	TemperatureParam                int
	LandPercent, Steepness, Wetness int
	PlayerCount                     int
	CleanupTemperatureMapAfterUse   bool
	Ruleset                         *mapgen.TerrainRuleset
}

// ConfigMapper validates a WorldGenRequest and resolves its ruleset
// (combat/config.Default()-style: ship the classic table in-module, only
// touch the filesystem when rulesetId names an override file).
type ConfigMapper struct {
	rulesetLoader func(id string) (*mapgen.TerrainRuleset, error)
}

// NewConfigMapper builds a mapper using the built-in classic ruleset for
// the default ID and mapgen.LoadRuleset for any other.
func NewConfigMapper() *ConfigMapper {
	return &ConfigMapper{}
}

// MapToParams validates req and produces GenerationParams, or an
// INVALID_CONFIG error (§6 Failure surface) if the request can't produce a
// map at all.
func (m *ConfigMapper) MapToParams(req WorldGenRequest) (GenerationParams, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return GenerationParams{}, appErrors.InvalidConfig("width and height must be positive, got %dx%d", req.Width, req.Height)
	}
	if req.PlayerCount < 1 {
		return GenerationParams{}, appErrors.InvalidConfig("playerCount must be >= 1, got %d", req.PlayerCount)
	}
	if req.LandPercent < 0 || req.LandPercent > 100 {
		return GenerationParams{}, appErrors.InvalidConfig("landpercent must be 0..100, got %d", req.LandPercent)
	}
	if req.Steepness < 0 || req.Steepness > 100 {
		return GenerationParams{}, appErrors.InvalidConfig("steepness must be 0..100, got %d", req.Steepness)
	}
	if req.Wetness < 0 || req.Wetness > 100 {
		return GenerationParams{}, appErrors.InvalidConfig("wetness must be 0..100, got %d", req.Wetness)
	}

	temperatureParam := req.TemperatureParam
	if temperatureParam == 0 {
		temperatureParam = 50
	}
	if temperatureParam < 0 || temperatureParam > 100 {
		return GenerationParams{}, appErrors.InvalidConfig("temperatureParam must be 0..100, got %d", temperatureParam)
	}

	generator := req.Generator
	if generator == "" {
		generator = mapgen.GeneratorFractal
	}

	ruleset, err := m.resolveRuleset(req.RulesetID)
	if err != nil {
		return GenerationParams{}, appErrors.InvalidConfig("load ruleset %q: %v", req.RulesetID, err)
	}

	return GenerationParams{
		Width:                         req.Width,
		Height:                        req.Height,
		Seed:                          req.Seed,
		Generator:                     generator,
		StartPosMode:                  req.StartPosMode,
		TemperatureParam:              temperatureParam,
		LandPercent:                   req.LandPercent,
		Steepness:                     req.Steepness,
		Wetness:                       req.Wetness,
		PlayerCount:                   req.PlayerCount,
		CleanupTemperatureMapAfterUse: req.CleanupTemperatureMapAfterUse,
		Ruleset:                       ruleset,
	}, nil
}

func (m *ConfigMapper) resolveRuleset(id string) (*mapgen.TerrainRuleset, error) {
	if m.rulesetLoader != nil {
		return m.rulesetLoader(id)
	}
	if id == "" || id == "classic" {
		return mapgen.DefaultRuleset(), nil
	}
	return mapgen.LoadRuleset(id, id)
}
