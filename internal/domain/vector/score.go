package vector

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/resumatch/internal/domain"
)

// scoreDecimals is the number of decimal digits kept in a similarity score.
const scoreDecimals = 3

// Score returns the cosine similarity of a and b clamped to [0, 1] and rounded to 3 decimals.
// Identical non-zero vectors score exactly 1; a zero-magnitude vector scores 0.
func Score(a, b Sparse) (float64, error) {
	if a.Dim != b.Dim {
		return 0, fmt.Errorf("score %d-dim vs %d-dim: %w", a.Dim, b.Dim, domain.ErrShapeMismatch)
	}

	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0, nil
	}
	if a.Equal(b) {
		return 1, nil
	}

	return Round(clamp(a.Dot(b) / (na * nb))), nil
}

// Round rounds a score to 3 decimal digits, half away from zero.
func Round(v float64) float64 {
	p := math.Pow10(scoreDecimals)
	return math.Round(v*p) / p
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
