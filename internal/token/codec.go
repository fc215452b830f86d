// Package token encodes and verifies the signed bearer tokens that
// replace server-side sessions. A token is HMAC-signed over its header
// and payload with a single configured secret; verification recomputes
// the signature before trusting any payload field, including expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Verification failures, in the order they are detected.
var (
	// ErrMalformed indicates the token could not be parsed into
	// header/payload/signature segments or its payload is unreadable.
	ErrMalformed = errors.New("token: malformed")

	// ErrBadSignature indicates the recomputed signature does not match.
	ErrBadSignature = errors.New("token: bad signature")

	// ErrExpired indicates a well-signed token past its expiry.
	ErrExpired = errors.New("token: expired")
)

// Codec encodes claims into signed token strings and verifies them back.
// It holds the only copy of the signing secret; issuance and verification
// always agree on the key. Verification is side-effect-free, so it is
// safe to run concurrently and to retry.
type Codec struct {
	cfg Config
	now func() time.Time
}

// NewCodec creates a Codec from config.
func NewCodec(cfg *Config) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Codec{cfg: *cfg, now: time.Now}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.cfg.TTL
}

// Encode signs the claims into a compact token string. Signing is
// deterministic: identical claims and key always yield the same token.
func (c *Codec) Encode(claims *Claims) (string, error) {
	tok := gojwt.NewWithClaims(c.cfg.signingMethod(), claims)
	signed, err := tok.SignedString([]byte(c.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Decode verifies a token string and returns its claims. The signature
// is checked before the payload is trusted; a tampered token fails with
// ErrBadSignature even when it also looks expired. Failures map to
// exactly one of ErrMalformed, ErrBadSignature, or ErrExpired.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := gojwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		gojwt.WithValidMethods([]string{c.cfg.signingMethod().Alg()}),
		gojwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, classify(err)
	}
	if !tok.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

// keyFunc returns the shared secret for signature verification.
func (c *Codec) keyFunc(tok *gojwt.Token) (interface{}, error) {
	expected := c.cfg.signingMethod()
	if tok.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", tok.Method.Alg())
	}
	return []byte(c.cfg.Secret), nil
}

// classify maps golang-jwt errors onto the package taxonomy. Signature
// errors take precedence over expiry so a forged token never surfaces
// as merely expired.
func classify(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid),
		errors.Is(err, gojwt.ErrSignatureInvalid),
		errors.Is(err, gojwt.ErrTokenUnverifiable):
		return ErrBadSignature
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}
