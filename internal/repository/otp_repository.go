package repository

// This file stores pending one-time passcodes for checkout verification.
// Only a bcrypt hash of the code is ever stored; the plaintext code exists
// in the email event and nowhere else.  The Redis-backed store is the
// production path; the in-memory store covers local development without
// Redis.

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPNotFound is returned when no pending code exists for an email,
// either because none was requested, it expired, or it was already
// consumed. Handlers should present it the same as a wrong code.
var ErrOTPNotFound = errors.New("otp not found")

// OTPStore persists pending passcode hashes keyed by email.  A hash is
// deleted on successful verification so a code cannot be replayed; a
// failed attempt leaves it in place until the TTL runs out.
type OTPStore interface {
	// Put stores the hash for an email, replacing any pending code.
	Put(ctx context.Context, email, hash string, ttl time.Duration) error
	// Get returns the pending hash for an email.
	Get(ctx context.Context, email string) (string, error)
	// Delete removes the pending hash after a successful verification.
	Delete(ctx context.Context, email string) error
}

// RedisOTPStore keeps pending hashes in Redis under otp:<email> with the
// configured TTL.
type RedisOTPStore struct {
	rdb *redis.Client
}

// NewRedisOTPStore returns a store bound to the provided client.
func NewRedisOTPStore(rdb *redis.Client) *RedisOTPStore { return &RedisOTPStore{rdb: rdb} }

func otpKey(email string) string { return "otp:" + email }

// Put stores the hash, replacing any pending code for the email.
func (s *RedisOTPStore) Put(ctx context.Context, email, hash string, ttl time.Duration) error {
	return s.rdb.Set(ctx, otpKey(email), hash, ttl).Err()
}

// Get returns the pending hash for an email.
func (s *RedisOTPStore) Get(ctx context.Context, email string) (string, error) {
	hash, err := s.rdb.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrOTPNotFound
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

// Delete removes the pending hash.
func (s *RedisOTPStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, otpKey(email)).Err()
}

// MemoryOTPStore is a process-local OTPStore for development and tests.
// Expiry is checked lazily on Get.
type MemoryOTPStore struct {
	mu      sync.Mutex
	pending map[string]memoryOTP
}

type memoryOTP struct {
	hash      string
	expiresAt time.Time
}

// NewMemoryOTPStore returns an empty in-memory store.
func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{pending: make(map[string]memoryOTP)}
}

// Put stores the hash, replacing any pending code for the email.
func (s *MemoryOTPStore) Put(_ context.Context, email, hash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[email] = memoryOTP{hash: hash, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get returns the pending hash, treating expired entries as absent.
func (s *MemoryOTPStore) Get(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.pending[email]
	if !ok {
		return "", ErrOTPNotFound
	}
	if time.Now().After(rec.expiresAt) {
		delete(s.pending, email)
		return "", ErrOTPNotFound
	}
	return rec.hash, nil
}

// Delete removes the pending hash.
func (s *MemoryOTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, email)
	return nil
}
