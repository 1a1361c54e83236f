package genetic

// ConstrainedDraw generates solutions under a validity predicate
// Draws are retried up to MaxAttempts; the caller-supplied fallback is returned
// when no attempt is accepted
type ConstrainedDraw[S Solution] struct {
	// Generate produces one attempt; ok=false means no attempt is possible at all
	Generate func(rng Rand) (solution S, ok bool)
	// Accept validates an attempt, nil accepts everything
	Accept func(solution S) bool
	// MaxAttempts limits retries, values below 1 are treated as 1
	MaxAttempts int
}

// Draw returns the first accepted attempt and true, or fallback and false
func (cd *ConstrainedDraw[S]) Draw(rng Rand, fallback S) (S, bool) {
	attempts := cd.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		candidate, ok := cd.Generate(rng)
		if !ok {
			return fallback, false
		}
		if cd.Accept == nil || cd.Accept(candidate) {
			return candidate, true
		}
	}
	return fallback, false
}
