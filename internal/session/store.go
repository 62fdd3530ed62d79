// Package session holds the ephemeral binding between an issued token and an
// account. A JWT is only honored while its session record is still present,
// so logout and moderation can cut access before the token expires.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID     string
	UserID uuid.UUID
	Role   string
}

type Store interface {
	Create(ctx context.Context, s *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func key(id string) string {
	return "session:" + id
}

func (s *redisStore) Create(ctx context.Context, sess *Session, ttl time.Duration) error {
	if err := s.client.HSet(ctx, key(sess.ID), "user_id", sess.UserID.String(), "role", sess.Role).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key(sess.ID), ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, id string) (*Session, error) {
	vals, err := s.client.HGetAll(ctx, key(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, ErrNotFound
	}

	userID, err := uuid.Parse(vals["user_id"])
	if err != nil {
		return nil, ErrNotFound
	}

	return &Session{ID: id, UserID: userID, Role: vals["role"]}, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, key(id)).Err()
}
