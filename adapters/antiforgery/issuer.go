// Package antiforgery issues and verifies tokens that tie a submission to the
// form a session rendered. A token stays valid for the current and the
// previous half-lifetime tick, so its age is between lifetime/2 and lifetime.
package antiforgery

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// DefaultAction scopes tokens to quote submissions
const DefaultAction = "fqc_nonce"

// DefaultLifetime matches a one-day token validity
const DefaultLifetime = 24 * time.Hour

const tokenLength = 20

// Issuer creates and checks tokens
type Issuer struct {
	secret   []byte
	action   string
	lifetime time.Duration
	now      func() time.Time
}

// Option customizes an Issuer
type Option func(*Issuer)

// WithAction changes the action the tokens are scoped to
func WithAction(action string) Option {
	return func(i *Issuer) { i.action = action }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer creates an issuer. A non-positive lifetime uses DefaultLifetime.
func NewIssuer(secret string, lifetime time.Duration, opts ...Option) *Issuer {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	i := &Issuer{
		secret:   []byte(secret),
		action:   DefaultAction,
		lifetime: lifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue returns the token for session at the current tick
func (i *Issuer) Issue(session string) string {
	return i.token(session, i.tick())
}

// Verify reports whether token was issued for session in this or the
// previous tick. Empty sessions and tokens never verify.
func (i *Issuer) Verify(session, token string) bool {
	if session == "" || len(token) != tokenLength {
		return false
	}
	tick := i.tick()
	for _, t := range []int64{tick, tick - 1} {
		if hmac.Equal([]byte(token), []byte(i.token(session, t))) {
			return true
		}
	}
	return false
}

// Lifetime returns the maximum age of a token
func (i *Issuer) Lifetime() time.Duration {
	return i.lifetime
}

func (i *Issuer) tick() int64 {
	half := int64(i.lifetime / 2)
	if half <= 0 {
		half = 1
	}
	now := i.now().UnixNano()
	return (now + half - 1) / half
}

func (i *Issuer) token(session string, tick int64) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(i.action))
	mac.Write([]byte{'|'})
	mac.Write([]byte(session))
	mac.Write([]byte{'|'})
	mac.Write([]byte(strconv.FormatInt(tick, 10)))
	return hex.EncodeToString(mac.Sum(nil))[:tokenLength]
}
