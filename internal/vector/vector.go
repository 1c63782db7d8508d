// Package vector provides cosine similarity and exact top-k selection over
// an in-memory corpus of embedding vectors.
package vector

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
)

// MinScore is the sentinel score assigned when a similarity cannot be
// computed (zero-norm vector, NaN). It sorts below every real cosine value.
const MinScore = -1.0

// Cosine returns the cosine similarity dot(a,b) / (|a|*|b|) as a float64.
// When either vector has zero norm, or the lengths disagree, it returns
// MinScore instead of failing: a single unusable stored vector must never
// abort a ranking pass.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return MinScore
	}
	var dot, na, nb float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return MinScore
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if math.IsNaN(s) {
		return MinScore
	}
	return s
}

// Hit is one ranked corpus entry.
type Hit struct {
	// Position is the entry's index in the corpus slice passed to TopK.
	Position int

	// Score is the cosine similarity against the query vector.
	Score float64
}

// TopK returns the k highest-scoring vectors for the query, in descending
// score order. Exactly equal scores are broken by ascending corpus position
// so results are reproducible.
//
// Every stored vector's length is validated against the query before any
// score is computed; a disagreement fails with ErrDimensionMismatch rather
// than silently ranking against incompatible vectors.
//
// Selection uses a bounded min-heap of size k: O(n log k) time, O(k) space.
// The deliberate alternative to a full sort, since k is small relative to
// the corpus.
func TopK(query []float32, vectors [][]float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be > 0, got %d", domain.ErrInvalidInput, k)
	}
	if len(vectors) == 0 {
		return nil, nil
	}

	for i := range vectors {
		if len(vectors[i]) != len(query) {
			return nil, fmt.Errorf("%w: query has %d dimensions, stored vector %d has %d",
				domain.ErrDimensionMismatch, len(query), i, len(vectors[i]))
		}
	}

	h := make(minHeap, 0, k)
	for i := range vectors {
		score := Cosine(query, vectors[i])
		switch {
		case h.Len() < k:
			heap.Push(&h, Hit{Position: i, Score: score})
		case score > h[0].Score:
			// Replace the current minimum only on a strictly greater
			// score, so earlier corpus entries win boundary ties.
			h[0] = Hit{Position: i, Score: score}
			heap.Fix(&h, 0)
		}
	}

	hits := make([]Hit, len(h))
	copy(hits, h)
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Position < hits[j].Position
	})
	return hits, nil
}

// minHeap orders hits by ascending score; among equal scores the later
// corpus position is evicted first.
type minHeap []Hit

func (h minHeap) Len() int { return len(h) }

func (h minHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].Position > h[j].Position
}

func (h minHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) { *h = append(*h, x.(Hit)) }

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
