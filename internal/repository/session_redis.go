package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rentalconnect/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps sessions as JSON values that expire with the session.
// A per-user set indexes session ids so all of a user's sessions can be revoked.
type RedisSessionStore struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, prefix: "rc", now: time.Now}
}

func (s *RedisSessionStore) sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, id)
}

func (s *RedisSessionStore) userKey(userID int64) string {
	return fmt.Sprintf("%s:user_sessions:%d", s.prefix, userID)
}

func (s *RedisSessionStore) Create(ctx context.Context, sess *domain.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = s.now()
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.sessionKey(sess.ID), raw, ttl)
	pipe.SAdd(ctx, s.userKey(sess.UserID), sess.ID)
	pipe.Expire(ctx, s.userKey(sess.UserID), ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.rdb.Get(ctx, s.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, s.sessionKey(id))
	pipe.SRem(ctx, s.userKey(sess.UserID), id)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisSessionStore) DeleteByUser(ctx context.Context, userID int64) error {
	ids, err := s.rdb.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.sessionKey(id))
	}
	keys = append(keys, s.userKey(userID))
	return s.rdb.Del(ctx, keys...).Err()
}

// DeleteExpired is a no-op: Redis evicts session keys on their own TTL.
func (s *RedisSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
