// Package errors provides the failure surface for the world generation
// pipeline.
//
// # Core Types
//
//   - GenerationError: an expected, typed failure (admissibility, post-
//     validation rejection, timeout, invalid config) carried as a value
//     along the call chain.
//   - InvariantBreach: an unexpected internal error, raised via panic; the
//     module installs no recover for it.
//
// # Usage
//
// Returning an expected failure:
//
//	if landPercent > 85 {
//	    return nil, errors.FallbackToRandom("landpercent exceeds island cap")
//	}
//
// Inspecting a failure kind:
//
//	if errors.Is(err, errors.KindFallbackToIsland) {
//	    return strategy.GenerateIsland(ctx, params)
//	}
//
// Raising an invariant breach:
//
//	if tile.ContinentID == 0 {
//	    errors.Raise("ContinentLabeler", "land tile left with continentId 0")
//	}
package errors
