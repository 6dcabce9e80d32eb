package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-secret-that-is-at-least-32-chars-long",
		TokenLifetimeMinutes: 60,
	}
}

// newTestService creates a service with a frozen clock so expiry behavior
// can be tested deterministically.
func newTestService(t *testing.T, now time.Time) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	impl.timeFunc = func() time.Time { return now }
	return impl
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "too-short",
		TokenLifetimeMinutes: 60,
	})
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(60*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestJWTService_ExpiredToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, issued)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{
			name: "valid just before expiry",
			now:  issued.Add(60*time.Minute - time.Second),
		},
		{
			name:    "expired at exactly the expiry instant",
			now:     issued.Add(60 * time.Minute),
			wantErr: ErrExpiredToken,
		},
		{
			name:    "expired well after expiry",
			now:     issued.Add(2 * time.Hour),
			wantErr: ErrExpiredToken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc.timeFunc = func() time.Time { return tc.now }
			_, err := svc.ValidateToken(ctx, token)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJWTService_TamperedToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "alice@example.com")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.ValidateToken(ctx, tampered)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestJWTService_UnparseableToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a token at all", token: "garbage"},
		{name: "wrong segment count", token: "a.b"},
		{name: "non-base64 segments", token: "!!!.???.***"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tc.token)
			assert.ErrorIs(t, err, ErrUnparseableToken)
		})
	}
}

func TestJWTService_WrongKey(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "alice@example.com")
	require.NoError(t, err)

	other, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "another-secret-that-is-32-chars-or-more",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	otherImpl := other.(*hmacJWTService)
	otherImpl.timeFunc = func() time.Time { return now }

	_, err = otherImpl.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
