package domain

import "time"

// Credential is a short-lived bearer token issued by the gateway.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether the token can still be used at now, keeping the
// given safety margin ahead of the gateway's own expiry so in-flight
// requests don't race the cutoff.
func (c *Credential) Valid(now time.Time, margin time.Duration) bool {
	if c == nil || c.Token == "" {
		return false
	}
	return now.Before(c.ExpiresAt.Add(-margin))
}

// NotificationChannel is a registered IPN webhook endpoint at the gateway.
type NotificationChannel struct {
	ID          string `json:"ipn_id"`
	CallbackURL string `json:"url"`
}
