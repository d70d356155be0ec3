package vision

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a rolling archive of recently submitted frames, kept per session
// in a Redis sorted set scored by timestamp. It exists for operator
// debugging; analysis results are never stored, only the raw frames, and
// the whole set expires after the TTL.
type Store struct {
	redis    *redis.Client
	frameTTL time.Duration
}

func NewStore(redisClient *redis.Client, frameTTL time.Duration) *Store {
	if frameTTL == 0 {
		frameTTL = 60 * time.Second
	}
	return &Store{
		redis:    redisClient,
		frameTTL: frameTTL,
	}
}

func frameKey(sessionID string) string {
	return fmt.Sprintf("frames:%s", sessionID)
}

func (s *Store) StoreFrame(ctx context.Context, frame *Frame) error {
	member := redis.Z{
		Score:  float64(frame.Timestamp),
		Member: frame.Data,
	}

	pipe := s.redis.Pipeline()
	pipe.ZAdd(ctx, frameKey(frame.SessionID), member)
	pipe.Expire(ctx, frameKey(frame.SessionID), s.frameTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) Latest(ctx context.Context, sessionID string) (*Frame, error) {
	results, err := s.redis.ZRevRangeWithScores(ctx, frameKey(sessionID), 0, 0).Result()
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	data, ok := results[0].Member.(string)
	if !ok {
		return nil, fmt.Errorf("invalid frame data type")
	}

	return &Frame{
		SessionID: sessionID,
		Timestamp: int64(results[0].Score),
		Data:      []byte(data),
	}, nil
}

func (s *Store) Purge(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, frameKey(sessionID)).Err()
}
