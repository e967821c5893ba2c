package services

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSample(t *testing.T) {
	s := NewSampler(rand.NewPCG(1, 2))

	tests := []struct {
		name    string
		ids     []int64
		count   int
		wantLen int
	}{
		{name: "clamped to available ids", ids: []int64{1, 2, 3}, count: 5, wantLen: 3},
		{name: "empty input", ids: []int64{}, count: 5, wantLen: 0},
		{name: "nil input", ids: nil, count: 5, wantLen: 0},
		{name: "zero count", ids: []int64{1, 2}, count: 0, wantLen: 0},
		{name: "subset", ids: []int64{10, 20, 30, 40, 50, 60, 70}, count: 5, wantLen: 5},
		{name: "duplicated input ids", ids: []int64{4, 4, 4, 9}, count: 5, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Sample(tt.ids, tt.count)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)

			seen := map[int64]bool{}
			for _, id := range got {
				assert.Contains(t, tt.ids, id)
				assert.False(t, seen[id], "id %d chosen twice", id)
				seen[id] = true
			}
		})
	}
}

func TestSampleReturnsPermutationWhenCountExceedsIDs(t *testing.T) {
	s := NewSampler(nil)

	got := s.Sample([]int64{1, 2, 3}, 5)
	assert.ElementsMatch(t, []int64{1, 2, 3}, got)
}

func TestSampleReachesEveryID(t *testing.T) {
	s := NewSampler(rand.NewPCG(7, 7))
	ids := []int64{1, 2, 3, 4}

	hits := map[int64]int{}
	for i := 0; i < 400; i++ {
		for _, id := range s.Sample(ids, 1) {
			hits[id]++
		}
	}
	for _, id := range ids {
		assert.Positive(t, hits[id], "id %d never sampled", id)
	}
}
