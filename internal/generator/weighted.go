package generator

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

var ErrInvalidWeights = errors.New("invalid sampling weights")

// Weighted samples items with fixed probability mass via cumulative-weight bisection.
type Weighted[T any] struct {
	items []T
	cum   []float64
	total float64
}

func NewWeighted[T any](items []T, weights []float64) (*Weighted[T], error) {
	if len(items) == 0 || len(items) != len(weights) {
		return nil, ErrInvalidWeights
	}
	cum := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, ErrInvalidWeights
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, ErrInvalidWeights
	}
	return &Weighted[T]{items: items, cum: cum, total: total}, nil
}

// Pick consumes exactly one Float64 from r.
func (w *Weighted[T]) Pick(r *rand.Rand) T {
	x := r.Float64() * w.total
	i := sort.Search(len(w.cum), func(i int) bool { return w.cum[i] > x })
	if i >= len(w.items) {
		i = len(w.items) - 1
	}
	return w.items[i]
}

// Probability returns the normalized weight of item i.
func (w *Weighted[T]) Probability(i int) float64 {
	prev := 0.0
	if i > 0 {
		prev = w.cum[i-1]
	}
	return (w.cum[i] - prev) / w.total
}
