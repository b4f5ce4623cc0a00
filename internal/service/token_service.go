package service

import (
	"context"
	"sync"
	"time"

	"impact360-payments/internal/core/domain"
	"impact360-payments/internal/core/ports"
	"impact360-payments/pkg/apperror"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// CredentialCache implements ports.TokenProvider. It holds the gateway
// bearer token for the process lifetime and refreshes it on demand.
// Concurrent callers observing an expired token coalesce into a single
// gateway call.
type CredentialCache struct {
	gateway ports.Gateway
	margin  time.Duration
	log     zerolog.Logger
	now     func() time.Time

	mu    sync.RWMutex
	cred  *domain.Credential
	group singleflight.Group
}

// NewCredentialCache creates a credential cache. margin is subtracted
// from the gateway's stated expiry when judging validity, so a token is
// never handed out that could lapse mid-request.
func NewCredentialCache(gateway ports.Gateway, margin time.Duration, log zerolog.Logger) *CredentialCache {
	return &CredentialCache{
		gateway: gateway,
		margin:  margin,
		log:     log,
		now:     time.Now,
	}
}

// Token returns a valid bearer token, refreshing from the gateway when
// the cached one is missing or inside the safety margin.
func (c *CredentialCache) Token(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.cred.Valid(c.now(), c.margin) {
		token := c.cred.Token
		c.mu.RUnlock()
		return token, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("token", func() (interface{}, error) {
		// Another caller may have refreshed while we queued.
		c.mu.RLock()
		if c.cred.Valid(c.now(), c.margin) {
			token := c.cred.Token
			c.mu.RUnlock()
			return token, nil
		}
		c.mu.RUnlock()

		cred, err := c.gateway.RequestToken(ctx)
		if err != nil {
			c.log.Error().Err(err).Msg("token refresh failed")
			return nil, apperror.Authentication(err)
		}

		c.mu.Lock()
		c.cred = cred
		c.mu.Unlock()

		c.log.Info().Time("expires_at", cred.ExpiresAt).Msg("access token refreshed")
		return cred.Token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached credential. The next Token call refreshes
// unconditionally.
func (c *CredentialCache) Invalidate() {
	c.mu.Lock()
	c.cred = nil
	c.mu.Unlock()
}
