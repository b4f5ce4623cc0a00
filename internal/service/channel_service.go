package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"impact360-payments/internal/core/ports"
	"impact360-payments/pkg/apperror"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// ChannelRegistry implements ports.ChannelRegistry. Discovery runs at
// most once per process: an id supplied via configuration short-circuits
// everything, otherwise registration is attempted and a conflict falls
// back to a list lookup matched on the callback URL.
type ChannelRegistry struct {
	gateway     ports.Gateway
	tokens      ports.TokenProvider
	callbackURL string
	log         zerolog.Logger

	mu    sync.RWMutex
	id    string
	group singleflight.Group
}

// NewChannelRegistry creates a channel registry. configuredID may be
// empty; when set it is returned as-is without any gateway call.
func NewChannelRegistry(gateway ports.Gateway, tokens ports.TokenProvider, callbackURL, configuredID string, log zerolog.Logger) *ChannelRegistry {
	return &ChannelRegistry{
		gateway:     gateway,
		tokens:      tokens,
		callbackURL: callbackURL,
		id:          configuredID,
		log:         log,
	}
}

// ChannelID returns the resolved IPN channel id, performing one-time
// discovery on first use. Concurrent first calls coalesce into a single
// discovery attempt.
func (r *ChannelRegistry) ChannelID(ctx context.Context) (string, error) {
	r.mu.RLock()
	if r.id != "" {
		id := r.id
		r.mu.RUnlock()
		return id, nil
	}
	r.mu.RUnlock()

	v, err, _ := r.group.Do("ipn-channel", func() (interface{}, error) {
		r.mu.RLock()
		if r.id != "" {
			id := r.id
			r.mu.RUnlock()
			return id, nil
		}
		r.mu.RUnlock()

		id, err := r.discover(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.id = id
		r.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// discover registers the callback URL, falling back to the list lookup
// when the gateway reports it already registered.
func (r *ChannelRegistry) discover(ctx context.Context) (string, error) {
	token, err := r.tokens.Token(ctx)
	if err != nil {
		return "", err
	}

	ch, err := r.gateway.RegisterIPN(ctx, token, r.callbackURL)
	if err == nil {
		r.log.Info().Str("ipn_id", ch.ID).Str("url", ch.CallbackURL).Msg("IPN channel registered")
		return ch.ID, nil
	}
	if !errors.Is(err, ports.ErrChannelAlreadyRegistered) {
		r.log.Error().Err(err).Str("url", r.callbackURL).Msg("IPN registration failed")
		return "", apperror.ChannelResolution(err)
	}

	r.log.Info().Str("url", r.callbackURL).Msg("IPN URL already registered, fetching existing channel")

	channels, err := r.gateway.ListIPNs(ctx, token)
	if err != nil {
		r.log.Error().Err(err).Msg("IPN list lookup failed")
		return "", apperror.ChannelResolution(err)
	}
	for _, c := range channels {
		if c.CallbackURL == r.callbackURL {
			r.log.Info().Str("ipn_id", c.ID).Msg("found existing IPN channel")
			return c.ID, nil
		}
	}
	return "", apperror.ChannelResolution(fmt.Errorf("no registered channel matches %s", r.callbackURL))
}
