package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/opsintake/incident-wizard/pkg/domain/types"
)

func TestSimilarityScoreClamp(t *testing.T) {
	gt.Value(t, types.SimilarityScore(-0.5).Clamp()).Equal(types.SimilarityScore(0))
	gt.Value(t, types.SimilarityScore(1.7).Clamp()).Equal(types.SimilarityScore(1))
	gt.Value(t, types.SimilarityScore(0.42).Clamp()).Equal(types.SimilarityScore(0.42))
}

func TestSimilarityScoreIsValid(t *testing.T) {
	gt.Value(t, types.SimilarityScore(0).IsValid()).Equal(true)
	gt.Value(t, types.SimilarityScore(1).IsValid()).Equal(true)
	gt.Value(t, types.SimilarityScore(1.01).IsValid()).Equal(false)
	gt.Value(t, types.SimilarityScore(-0.01).IsValid()).Equal(false)
}
