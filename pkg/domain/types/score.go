package types

// SimilarityScore is a semantic similarity confidence in [0,1].
// 1.0 means identical meaning, 0.0 means unrelated.
type SimilarityScore float64

// Clamp forces the score into the [0,1] range. Upstream models
// occasionally return values outside the requested bounds.
func (s SimilarityScore) Clamp() SimilarityScore {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// IsValid checks if the score is within the [0,1] range
func (s SimilarityScore) IsValid() bool {
	return s >= 0 && s <= 1
}

// Float64 returns the score as a plain float64
func (s SimilarityScore) Float64() float64 {
	return float64(s)
}
