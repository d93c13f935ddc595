package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iho/goinvest/internal/domain"
)

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OwnerLocker implements usecase.OwnerLocker with a SET NX PX lease, so commands on
// the same owner are serialized across processes.
type OwnerLocker struct {
	client  redis.Cmdable
	prefix  string
	lease   time.Duration
	maxWait time.Duration
}

// NewOwnerLocker creates a new OwnerLocker. lease bounds how long a crashed holder
// keeps the lock; maxWait bounds how long Lock polls for it.
func NewOwnerLocker(client redis.Cmdable, lease, maxWait time.Duration) *OwnerLocker {
	return &OwnerLocker{
		client:  client,
		prefix:  "goinvest:lock:owner:",
		lease:   lease,
		maxWait: maxWait,
	}
}

// Lock blocks until the lock of ownerID is held, maxWait passes or ctx is done.
func (l *OwnerLocker) Lock(ctx context.Context, ownerID string) (func(), error) {
	key := l.prefix + ownerID
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 100 * time.Millisecond
	b.MaxElapsedTime = l.maxWait

	err = backoff.Retry(func() error {
		ok, err := l.client.SetNX(ctx, key, token, l.lease).Result()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ok {
			return domain.ErrOwnerBusy
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, fmt.Errorf("lock owner %s: %w", ownerID, err)
	}

	return func() {
		// A fresh context: the caller's may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
	}, nil
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
