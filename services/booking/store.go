package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"unityconsult/models"
	"unityconsult/utils"
)

// SessionStore persists wizard sessions across the payment-gateway redirect
// boundary. Reads and writes are typed; every stored session carries a schema
// version and stale versions are treated as expired.
type SessionStore interface {
	Save(ctx context.Context, session *models.WizardSession) error
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Delete(ctx context.Context, sessionID string) error

	// BindTxRef maps a transaction reference to its session so the gateway
	// callback can re-enter the wizard.
	BindTxRef(ctx context.Context, txRef, sessionID string) error
	GetByTxRef(ctx context.Context, txRef string) (*models.WizardSession, error)
}

// RedisSessionStore implements SessionStore on Redis with a TTL long enough
// to survive the round trip to the payment gateway.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisSessionStore constructs a store on the shared session cache client.
func NewRedisSessionStore() *RedisSessionStore {
	return &RedisSessionStore{
		Client: utils.GetSessionCacheClient(),
		TTL:    utils.WizardSessionTTL,
	}
}

func sessionKey(sessionID string) string {
	return utils.WizardSessionPrefix + sessionID
}

func txRefKey(txRef string) string {
	return utils.WizardSessionPrefix + "tx:" + txRef
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.WizardSession) error {
	session.Version = models.WizardSessionVersion
	session.UpdatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKey(session.SessionID), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, err := s.Client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, ErrSessionNotFound
	}

	var session models.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	if session.Version != models.WizardSessionVersion {
		// Written by an older build; do not trust the shape.
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *RedisSessionStore) BindTxRef(ctx context.Context, txRef, sessionID string) error {
	if err := s.Client.Set(ctx, txRefKey(txRef), sessionID, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to bind transaction reference: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) GetByTxRef(ctx context.Context, txRef string) (*models.WizardSession, error) {
	sessionID, err := s.Client.Get(ctx, txRefKey(txRef)).Result()
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return s.Get(ctx, sessionID)
}
