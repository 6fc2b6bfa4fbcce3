// Package redisrank keeps the leaderboard rank baseline in a Redis hash so
// every instance computes trends against the same snapshot.
package redisrank

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/redis/go-redis/v9"
	"strconv"
)

const DefaultKey = "podium:rank_baseline"

type Store struct {
	client *redis.Client
	key    string
}

func New(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

// SaveRanks swaps the hash content in one MULTI/EXEC.
func (s *Store) SaveRanks(ctx context.Context, ranks map[int]int) error {
	fields := make(map[string]interface{}, len(ranks))
	for id, rank := range ranks {
		fields[strconv.Itoa(id)] = rank
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(fields) > 0 {
			pipe.HSet(ctx, s.key, fields)
		}
		return nil
	})
	if err != nil {
		logging.Log.Errorf("RANK: failed to save baseline to redis: %v", err)
		return fmt.Errorf("save rank baseline: %w", err)
	}
	return nil
}

func (s *Store) LoadRanks(ctx context.Context) (map[int]int, error) {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		logging.Log.Errorf("RANK: failed to load baseline from redis: %v", err)
		return nil, fmt.Errorf("load rank baseline: %w", err)
	}
	ranks := make(map[int]int, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		rank, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		ranks[id] = rank
	}
	return ranks, nil
}
