package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T, ttl time.Duration) *Codec {
	t.Helper()
	codec, err := NewCodec(&Config{Secret: testSecret, TTL: ttl})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	return codec
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := newTestCodec(t, 10*time.Minute)
	issuer := NewIssuer(codec)

	signed, err := issuer.Issue("a@b.com", "MANAGER")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := claims.RegisteredClaims.Subject; got != "a@b.com" {
		t.Errorf("subject = %q, want %q", got, "a@b.com")
	}
	if claims.Role != "MANAGER" {
		t.Errorf("role = %q, want MANAGER", claims.Role)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("expected issued-at and expiry to be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 10*time.Minute {
		t.Errorf("lifetime = %v, want 10m", got)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	codec := newTestCodec(t, time.Minute)
	issuer := NewIssuer(codec)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return at }

	t1, err := issuer.Issue("a@b.com", "MANAGER")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	t2, err := issuer.Issue("a@b.com", "MANAGER")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if t1 != t2 {
		t.Error("identical claims and key should produce identical tokens")
	}
}

func TestDecodeExpiry(t *testing.T) {
	// Issue a 10-minute token, then verify at +5m and +11m.
	codec := newTestCodec(t, 10*time.Minute)
	issuer := NewIssuer(codec)
	base := time.Now()
	issuer.now = func() time.Time { return base }

	signed, err := issuer.Issue("a@b.com", "MANAGER")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	codec.now = func() time.Time { return base.Add(5 * time.Minute) }
	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("Decode at +5m failed: %v", err)
	}
	if claims.Role != "MANAGER" {
		t.Errorf("role = %q, want MANAGER", claims.Role)
	}

	codec.now = func() time.Time { return base.Add(11 * time.Minute) }
	if _, err := codec.Decode(signed); !errors.Is(err, ErrExpired) {
		t.Errorf("Decode at +11m = %v, want ErrExpired", err)
	}
}

func TestDecodeTamperedPayload(t *testing.T) {
	codec := newTestCodec(t, 10*time.Minute)
	issuer := NewIssuer(codec)

	signed, err := issuer.Issue("a@b.com", "MANAGER")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Rewrite the payload segment to claim a different role, keeping
	// the original signature.
	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	body["role"] = "ADMINISTRATOR"
	forgedPayload, _ := json.Marshal(body)
	forged := parts[0] + "." + base64.RawURLEncoding.EncodeToString(forgedPayload) + "." + parts[2]

	if _, err := codec.Decode(forged); !errors.Is(err, ErrBadSignature) {
		t.Errorf("Decode(forged) = %v, want ErrBadSignature", err)
	}
}

func TestDecodeWrongKey(t *testing.T) {
	codec := newTestCodec(t, 10*time.Minute)
	signed, err := NewIssuer(codec).Issue("a@b.com", "MANAGER")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other, err := NewCodec(&Config{Secret: "another-secret-that-is-32-bytes!"})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	if _, err := other.Decode(signed); !errors.Is(err, ErrBadSignature) {
		t.Errorf("Decode with wrong key = %v, want ErrBadSignature", err)
	}
}

func TestDecodeRejectsOtherSigningMethod(t *testing.T) {
	hs256, err := NewCodec(&Config{Secret: testSecret, Method: HS256})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	signed, err := NewIssuer(hs256).Issue("a@b.com", "MANAGER")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	hs512 := newTestCodec(t, time.Minute)
	if _, err := hs512.Decode(signed); !errors.Is(err, ErrBadSignature) {
		t.Errorf("Decode(HS256 token) = %v, want ErrBadSignature", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	codec := newTestCodec(t, time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "abc.def"},
		{"non-base64 payload", "eyJhbGciOiJIUzUxMiJ9.!!!.sig"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := codec.Decode(tc.token); !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode(%q) = %v, want ErrMalformed", tc.token, err)
			}
		})
	}
}

func TestZeroTTLGetsDefault(t *testing.T) {
	codec, err := NewCodec(&Config{Secret: testSecret})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	if got := codec.TTL(); got != 15*time.Minute {
		t.Errorf("TTL() = %v, want the 15m default", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Secret: testSecret}, false},
		{"missing secret", Config{}, true},
		{"short secret", Config{Secret: "short"}, true},
		{"bad method", Config{Secret: testSecret, Method: "RS256"}, true},
		{"negative ttl", Config{Secret: testSecret, TTL: -time.Minute}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.ApplyDefaults()
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr = %v", err, tc.wantErr)
			}
		})
	}
}
