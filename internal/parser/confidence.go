package parser

// Weights is the tunable confidence policy. The contract is monotonicity
// (more signals never lower the score) and boundedness (result in [0,1]);
// the exact values are calibration knobs surfaced through configuration.
type Weights struct {
	ExplicitTag   float64
	Duration      float64
	Location      float64
	KeywordHit    float64
	KeywordHitCap float64
}

// DefaultWeights returns the stock policy: an explicit tag dominates,
// structured fields add fixed amounts, keyword hits saturate.
func DefaultWeights() Weights {
	return Weights{
		ExplicitTag:   0.5,
		Duration:      0.2,
		Location:      0.15,
		KeywordHit:    0.05,
		KeywordHitCap: 0.15,
	}
}

// score computes the clamped confidence for the gathered signals. hits is
// the winning type's keyword count (zero when an explicit tag decided the
// classification).
func (w Weights) score(hasTag, hasDuration, hasLocation bool, hits int) float64 {
	var c float64
	if hasTag {
		c += w.ExplicitTag
	}
	if hasDuration {
		c += w.Duration
	}
	if hasLocation {
		c += w.Location
	}
	if hits > 0 {
		keyword := float64(hits) * w.KeywordHit
		if keyword > w.KeywordHitCap {
			keyword = w.KeywordHitCap
		}
		c += keyword
	}
	if c > 1 {
		c = 1
	}
	if c < 0 {
		c = 0
	}
	return c
}
