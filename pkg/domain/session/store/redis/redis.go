package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uw-gac/phenotag/pkg/domain/session"
	"github.com/uw-gac/phenotag/pkg/domain/session/store"
)

// session store over a shared redis, for deployments running more than one
// service replica behind a load balancer.
//
// Keys expire after the idle TTL; every access refreshes it. Redis reaps
// expired keys itself, so nothing else needs to.
type redisStore struct { // implements store.Store
	client redis.UniversalClient
	ttl    time.Duration
}

func New(client redis.UniversalClient, ttl time.Duration) *redisStore {
	return &redisStore{client: client, ttl: ttl}
}

var _ store.Store = &redisStore{}

func key(actor string, ns session.Namespace) string {
	return fmt.Sprintf("phenotag:session:%s:%s", ns, actor)
}

func (r *redisStore) Put(ctx context.Context, s session.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(s.Actor, s.Namespace), payload, r.ttl).Err()
}

func (r *redisStore) Get(
	ctx context.Context, actor string, ns session.Namespace,
) (session.Session, error) {
	payload, err := r.client.Get(ctx, key(actor, ns)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Session{}, session.ErrNoSession
		}
		return session.Session{}, err
	}

	s := session.Session{}
	if err := json.Unmarshal(payload, &s); err != nil {
		return session.Session{}, err
	}

	// refresh the idle deadline; best effort, the value is untouched
	if err := r.client.Expire(ctx, key(actor, ns), r.ttl).Err(); err != nil {
		return session.Session{}, err
	}
	return s, nil
}

func (r *redisStore) Delete(
	ctx context.Context, actor string, ns session.Namespace,
) error {
	return r.client.Del(ctx, key(actor, ns)).Err()
}
