// Package ring provides a fixed-capacity ring buffer used for the bounded
// per-session histories: pitch and volume samples and gesture labels. Once
// full, each push evicts the oldest entry.
package ring

import "math"

type Buffer[T any] struct {
	items []T
	head  int
	size  int
}

func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{
		items: make([]T, capacity),
	}
}

// Push appends v, evicting the oldest entry when the buffer is full.
func (b *Buffer[T]) Push(v T) {
	b.items[(b.head+b.size)%len(b.items)] = v
	if b.size < len(b.items) {
		b.size++
		return
	}
	b.head = (b.head + 1) % len(b.items)
}

// Len reports how many entries are currently held.
func (b *Buffer[T]) Len() int {
	return b.size
}

// Values returns the entries oldest-first.
func (b *Buffer[T]) Values() []T {
	out := make([]T, 0, b.size)
	for i := 0; i < b.size; i++ {
		out = append(out, b.items[(b.head+i)%len(b.items)])
	}
	return out
}

// Reset discards all entries without releasing capacity.
func (b *Buffer[T]) Reset() {
	b.head = 0
	b.size = 0
}

// =====================================================================================================================

// Mean returns the arithmetic mean of the retained float entries.
func Mean(b *Buffer[float64]) float64 {
	if b.size == 0 {
		return 0
	}
	var sum float64
	for _, v := range b.Values() {
		sum += v
	}
	return sum / float64(b.size)
}

// CoefficientOfVariation returns std-dev divided by mean, or 0 when the
// buffer is empty or the mean is 0.
func CoefficientOfVariation(b *Buffer[float64]) float64 {
	mean := Mean(b)
	if mean == 0 || b.size < 2 {
		return 0
	}
	var sq float64
	for _, v := range b.Values() {
		d := v - mean
		sq += d * d
	}
	variance := sq / float64(b.size)
	return math.Sqrt(variance) / mean
}
