package token

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Issuer turns an authenticated identity into a signed, time-bounded
// token. It is a pure function of the identity, the clock, and the
// codec's configured TTL and secret.
type Issuer struct {
	codec *Codec
	now   func() time.Time
}

// NewIssuer creates an Issuer backed by the given codec.
func NewIssuer(codec *Codec) *Issuer {
	return &Issuer{codec: codec, now: time.Now}
}

// Issue builds a claim set for the subject and role and signs it.
// issued_at is now, expires_at is now + the configured TTL.
func (i *Issuer) Issue(subject, role string) (string, error) {
	now := i.now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    i.codec.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(i.codec.cfg.TTL)),
		},
		Role: role,
	}
	return i.codec.Encode(claims)
}
