package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPSecretStore keeps per-owner TOTP secrets and remembers codes already spent.
type OTPSecretStore struct {
	client redis.Cmdable
	prefix string
}

// NewOTPSecretStore creates a new OTPSecretStore.
func NewOTPSecretStore(client redis.Cmdable) *OTPSecretStore {
	return &OTPSecretStore{
		client: client,
		prefix: "goinvest:otp:",
	}
}

// Secret returns the secret of ownerID, or "" if none was issued yet.
func (s *OTPSecretStore) Secret(ctx context.Context, ownerID string) (string, error) {
	secret, err := s.client.Get(ctx, s.prefix+"secret:"+ownerID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return secret, err
}

// SetSecretIfAbsent stores secret for ownerID unless one exists, and returns the secret in effect.
func (s *OTPSecretStore) SetSecretIfAbsent(ctx context.Context, ownerID, secret string) (string, error) {
	key := s.prefix + "secret:" + ownerID
	set, err := s.client.SetNX(ctx, key, secret, 0).Result()
	if err != nil {
		return "", err
	}
	if set {
		return secret, nil
	}
	return s.client.Get(ctx, key).Result()
}

// IsUsed reports whether code is currently marked as spent.
func (s *OTPSecretStore) IsUsed(ctx context.Context, ownerID, code string) (bool, error) {
	n, err := s.client.Exists(ctx, s.usedKey(ownerID, code)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkUsed records code as spent for ttl. It returns false if the code was already spent.
func (s *OTPSecretStore) MarkUsed(ctx context.Context, ownerID, code string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.usedKey(ownerID, code), 1, ttl).Result()
}

func (s *OTPSecretStore) usedKey(ownerID, code string) string {
	return s.prefix + "used:" + ownerID + ":" + code
}
