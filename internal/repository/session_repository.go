package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/campus-credit-api/internal/models"
	appErrors "github.com/noah-isme/campus-credit-api/pkg/errors"
)

const sessionKeyPrefix = "view_session:"

type sessionEntry struct {
	session   models.ViewSession
	expiresAt time.Time
}

// MemorySessionRepository keeps view sessions in process memory. Expired entries
// are evicted lazily when touched or counted.
type MemorySessionRepository struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]sessionEntry
}

// NewMemorySessionRepository constructs an in-memory session store.
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]sessionEntry),
	}
}

// Save stores the session and refreshes its expiry.
func (r *MemorySessionRepository) Save(_ context.Context, session *models.ViewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[session.ID] = sessionEntry{session: cloneSession(*session), expiresAt: r.now().Add(r.ttl)}
	return nil
}

// Get returns a copy of the stored session.
func (r *MemorySessionRepository) Get(_ context.Context, id string) (*models.ViewSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	if r.expired(entry) {
		delete(r.entries, id)
		return nil, appErrors.ErrSessionNotFound
	}

	session := cloneSession(entry.session)
	return &session, nil
}

// Delete removes the session. Deleting an unknown id reports ErrSessionNotFound.
func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok || r.expired(entry) {
		delete(r.entries, id)
		return appErrors.ErrSessionNotFound
	}
	delete(r.entries, id)
	return nil
}

// Count returns the number of live sessions.
func (r *MemorySessionRepository) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.entries {
		if r.expired(entry) {
			delete(r.entries, id)
		}
	}
	return len(r.entries), nil
}

func (r *MemorySessionRepository) expired(entry sessionEntry) bool {
	return r.ttl > 0 && !r.now().Before(entry.expiresAt)
}

func cloneSession(s models.ViewSession) models.ViewSession {
	if s.Notifications != nil {
		s.Notifications = append([]models.Notification(nil), s.Notifications...)
	}
	s.Selection = s.Selection.Clone()
	return s
}

// RedisSessionRepository stores view sessions as JSON payloads with a TTL.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository constructs a Redis backed session store.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, ttl: ttl}
}

// Save marshals the session and refreshes its TTL.
func (r *RedisSessionRepository) Save(ctx context.Context, session *models.ViewSession) error {
	payload, err := encodeSession(session)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, sessionKey(session.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", session.ID, err)
	}
	return nil
}

// Get loads the session.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*models.ViewSession, error) {
	raw, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}

	return decodeSession(id, raw)
}

// Delete removes the session.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	if removed == 0 {
		return appErrors.ErrSessionNotFound
	}
	return nil
}

// Count scans the session keyspace.
func (r *RedisSessionRepository) Count(ctx context.Context) (int, error) {
	count := 0
	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan sessions: %w", err)
	}
	return count, nil
}

func encodeSession(session *models.ViewSession) ([]byte, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	return payload, nil
}

func decodeSession(id string, raw []byte) (*models.ViewSession, error) {
	var session models.ViewSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &session, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}
