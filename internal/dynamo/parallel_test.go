package dynamo

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRange(t *testing.T) {
	tests := []struct {
		n, minChunk int
	}{
		{0, 4},
		{1, 4},
		{10, 4},
		{1000, 64},
		{1001, 7},
		{5, 0},
	}

	for _, tt := range tests {
		hits := make([]int32, tt.n)
		ParallelFor(tt.n, tt.minChunk, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Errorf("n=%d chunk=%d: index %d visited %d times", tt.n, tt.minChunk, i, h)
			}
		}
	}
}
