// Package vector holds the sparse document vector and the similarity scorer.
package vector

import "math"

// Sparse is a document vector over a fixed vocabulary as parallel arrays of indices and values.
// Indices are vocabulary positions, sorted ascending and unique.
type Sparse struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NewDense builds a Sparse vector from a dense slice, keeping non-zero entries only.
func NewDense(values []float64) Sparse {
	v := Sparse{Dim: len(values)}
	for i, x := range values {
		if x != 0 {
			v.Indices = append(v.Indices, i)
			v.Values = append(v.Values, x)
		}
	}
	return v
}

// Len returns the number of non-zero entries.
func (v Sparse) Len() int { return len(v.Indices) }

// IsZero reports whether the vector has no non-zero weight.
func (v Sparse) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean magnitude.
func (v Sparse) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product. Both vectors must share a dimension.
func (v Sparse) Dot(o Sparse) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Equal reports whether both vectors have the same dimension and identical entries.
func (v Sparse) Equal(o Sparse) bool {
	if v.Dim != o.Dim || len(v.Indices) != len(o.Indices) {
		return false
	}
	for i := range v.Indices {
		if v.Indices[i] != o.Indices[i] || v.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}

// Dense expands the vector into a slice of length Dim.
func (v Sparse) Dense() []float64 {
	out := make([]float64, v.Dim)
	for i, idx := range v.Indices {
		out[idx] = v.Values[i]
	}
	return out
}
