package memory

import (
	"context"
	"sync"
)

// RankStore keeps the rank baseline in process.
type RankStore struct {
	mu    sync.Mutex
	ranks map[int]int
}

func NewRankStore() *RankStore {
	return &RankStore{ranks: map[int]int{}}
}

func (r *RankStore) SaveRanks(_ context.Context, ranks map[int]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ranks = make(map[int]int, len(ranks))
	for id, rank := range ranks {
		r.ranks[id] = rank
	}
	return nil
}

func (r *RankStore) LoadRanks(_ context.Context) (map[int]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]int, len(r.ranks))
	for id, rank := range r.ranks {
		out[id] = rank
	}
	return out, nil
}
