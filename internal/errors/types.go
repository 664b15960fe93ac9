package errors

import "fmt"

// Kind distinguishes the expected failure modes the generation pipeline can
// surface to a caller (spec §6 Failure surface, §7 Error handling design).
type Kind string

const (
	// KindFallbackToIsland is raised when FairIslandsStrategy cannot produce
	// an acceptable map within its retry budget and the caller should rerun
	// IslandStrategy directly.
	KindFallbackToIsland Kind = "FALLBACK_TO_ISLAND"
	// KindFallbackToRandom is raised when an island sub-generator's
	// precondition fails (e.g. landpercent too high for the chosen mode).
	KindFallbackToRandom Kind = "FALLBACK_TO_RANDOM"
	// KindGenerationTimeout is raised when a strategy attempt exceeds its
	// deadline.
	KindGenerationTimeout Kind = "GENERATION_TIMEOUT"
	// KindInvalidConfig is raised when the caller's configuration cannot
	// produce a map at all (non-positive dimensions, playerCount < 1, ...).
	KindInvalidConfig Kind = "INVALID_CONFIG"
)

// GenerationError is a structured, expected failure: a stable kind tag plus
// a human-readable reason. It is never raised for invariant breaches — those
// are programmer errors and panic instead (see InvariantBreach).
type GenerationError struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is reports whether err is a GenerationError of the given kind.
func Is(err error, kind Kind) bool {
	ge, ok := err.(*GenerationError)
	return ok && ge.Kind == kind
}

// FallbackToIsland builds a KindFallbackToIsland error.
func FallbackToIsland(reason string) *GenerationError {
	return &GenerationError{Kind: KindFallbackToIsland, Reason: reason}
}

// FallbackToRandom builds a KindFallbackToRandom error.
func FallbackToRandom(reason string) *GenerationError {
	return &GenerationError{Kind: KindFallbackToRandom, Reason: reason}
}

// Timeout builds a KindGenerationTimeout error.
func Timeout(reason string) *GenerationError {
	return &GenerationError{Kind: KindGenerationTimeout, Reason: reason}
}

// InvalidConfig builds a KindInvalidConfig error.
func InvalidConfig(format string, args ...any) *GenerationError {
	return &GenerationError{Kind: KindInvalidConfig, Reason: fmt.Sprintf(format, args...)}
}

// InvariantBreach is an unexpected internal error — the caller must not
// retry automatically without changing inputs. It is raised via panic (see
// Raise), never returned from an inner stage; nothing in this module
// recovers the panic.
type InvariantBreach struct {
	Stage  string
	Reason string
}

func (e *InvariantBreach) Error() string {
	return fmt.Sprintf("invariant breach in %s: %s", e.Stage, e.Reason)
}

// Raise panics with an InvariantBreach. Stages call this when they detect a
// state that should be structurally impossible (e.g. a land tile with
// continentId 0 after labeling).
func Raise(stage, reason string) {
	panic(&InvariantBreach{Stage: stage, Reason: reason})
}
