package services

import (
	"math/rand/v2"
	"sync"
)

// Sampler picks distinct ids uniformly at random.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a sampler drawing from src, or from a randomly seeded
// source when src is nil.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Sampler{rng: rand.New(src)}
}

// Sample returns min(count, number of distinct ids) ids without replacement.
func (s *Sampler) Sample(ids []int64, count int) []int64 {
	pool := distinct(ids)
	if len(pool) == 0 || count <= 0 {
		return []int64{}
	}
	if count > len(pool) {
		count = len(pool)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	chosen := make([]int64, 0, count)
	taken := make(map[int64]struct{}, count)
	for len(chosen) < count {
		id := pool[s.rng.IntN(len(pool))]
		if _, ok := taken[id]; ok {
			continue
		}
		taken[id] = struct{}{}
		chosen = append(chosen, id)
	}
	return chosen
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
