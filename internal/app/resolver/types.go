package resolver

type Outcome string

const (
	OutcomeHit      Outcome = "hit"
	OutcomeLoaded   Outcome = "loaded"
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)
