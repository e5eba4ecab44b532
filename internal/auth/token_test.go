package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftmatch/jobmatch-service/internal/domain"
)

var seeker = domain.Identity{UserID: 7, Email: "a@x.com", Role: domain.RoleJobSeeker}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func TestTokenIssueVerify(t *testing.T) {
	clock := newClock()
	tm := NewTokenManager("k1", time.Hour, WithClock(clock.Now))

	tok, err := tm.Issue(seeker)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.ID)
	assert.Equal(t, clock.t.Add(time.Hour), tok.ExpiresAt)

	claims, err := tm.Verify(context.Background(), tok.Value)
	require.NoError(t, err)
	assert.Equal(t, seeker, claims.Identity())
	assert.Equal(t, tok.ID, claims.ID)
}

func TestTokenExpiryBoundary(t *testing.T) {
	clock := newClock()
	tm := NewTokenManager("k1", time.Hour, WithClock(clock.Now))

	tok, err := tm.Issue(seeker)
	require.NoError(t, err)

	clock.Advance(time.Hour - time.Second)
	_, err = tm.Verify(context.Background(), tok.Value)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = tm.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenDefaultTTLIsSevenDays(t *testing.T) {
	clock := newClock()
	tm := NewTokenManager("k1", 0, WithClock(clock.Now))

	tok, err := tm.Issue(seeker)
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(7*24*time.Hour), tok.ExpiresAt)
}

func TestTokenWrongKey(t *testing.T) {
	issuer := NewTokenManager("k1", time.Hour)
	verifier := NewTokenManager("k2", time.Hour)

	tok, err := issuer.Issue(seeker)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiredWithWrongKeyIsInvalid(t *testing.T) {
	clock := newClock()
	issuer := NewTokenManager("k1", time.Minute, WithClock(clock.Now))
	verifier := NewTokenManager("k2", time.Minute, WithClock(clock.Now))

	tok, err := issuer.Issue(seeker)
	require.NoError(t, err)
	clock.Advance(time.Hour)

	_, err = verifier.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTampered(t *testing.T) {
	tm := NewTokenManager("k1", time.Hour)
	tok, err := tm.Issue(seeker)
	require.NoError(t, err)

	parts := strings.Split(tok.Value, ".")
	require.Len(t, parts, 3)
	other, err := tm.Issue(domain.Identity{UserID: 8, Email: "b@x.com", Role: domain.RoleShopOwner})
	require.NoError(t, err)
	forged := parts[0] + "." + strings.Split(other.Value, ".")[1] + "." + parts[2]

	_, err = tm.Verify(context.Background(), forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsNoneAlgorithm(t *testing.T) {
	tm := NewTokenManager("k1", time.Hour)
	claims := &Claims{
		UserID: 7,
		Email:  "a@x.com",
		Role:   domain.RoleJobSeeker,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Verify(context.Background(), unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRevocation(t *testing.T) {
	tm := NewTokenManager("k1", time.Hour, WithDenylist(NewMemoryDenylist(nil)))
	require.True(t, tm.RevocationEnabled())

	tok, err := tm.Issue(seeker)
	require.NoError(t, err)
	other, err := tm.Issue(seeker)
	require.NoError(t, err)

	claims, err := tm.Verify(context.Background(), tok.Value)
	require.NoError(t, err)
	require.NoError(t, tm.Revoke(context.Background(), claims))

	_, err = tm.Verify(context.Background(), tok.Value)
	assert.ErrorIs(t, err, ErrRevokedToken)

	_, err = tm.Verify(context.Background(), other.Value)
	assert.NoError(t, err)
}

func TestTokenRevokeWithoutDenylistIsNoop(t *testing.T) {
	tm := NewTokenManager("k1", time.Hour)
	tok, err := tm.Issue(seeker)
	require.NoError(t, err)

	claims, err := tm.Verify(context.Background(), tok.Value)
	require.NoError(t, err)
	require.NoError(t, tm.Revoke(context.Background(), claims))

	_, err = tm.Verify(context.Background(), tok.Value)
	assert.NoError(t, err)
}

func TestMemoryDenylistForgetsExpiredEntries(t *testing.T) {
	clock := newClock()
	d := NewMemoryDenylist(clock.Now)

	require.NoError(t, d.Revoke(context.Background(), "jti", clock.t.Add(time.Minute)))
	revoked, err := d.IsRevoked(context.Background(), "jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	clock.Advance(2 * time.Minute)
	revoked, err = d.IsRevoked(context.Background(), "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, d.entries)
}
