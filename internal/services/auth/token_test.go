package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyunw/bboard/internal/dependencies/mocks"
	"github.com/hyunw/bboard/internal/model"
)

func testAccount() *model.Account {
	return &model.Account{
		ID:          "acct-1",
		Username:    "alice",
		DisplayName: "Alice",
	}
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour, clk)

	token, err := issuer.Issue(testAccount())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Alice", claims.DisplayName)
}

func TestVerifyFailsAfterExpiry(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour, clk)

	token, err := issuer.Issue(testAccount())
	require.NoError(t, err)

	// Valid right up to the expiry window
	clk.Advance(59 * time.Minute)
	_, err = issuer.Verify(token)
	require.NoError(t, err)

	clk.Advance(2 * time.Minute)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyFailsWithWrongSecret(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer([]byte("right-secret"), time.Hour, clk)
	other := NewTokenIssuer([]byte("wrong-secret"), time.Hour, clk)

	token, err := issuer.Issue(testAccount())
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalidSignature)
}

func TestVerifyFailsWithMalformedToken(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour, clk)

	_, err := issuer.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyFailsWithEmptyToken(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour, clk)

	_, err := issuer.Verify("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}
