package auth

import (
	"errors"
	"testing"
	"time"

	"boardhub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTime() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func testJWT(secret string) *JWT {
	j := NewJWT(secret, "boardhub-test", time.Hour)
	j.now = testTime
	return j
}

func TestIssueVerify(t *testing.T) {
	j := testJWT("secret")

	token, err := j.Issue(&models.User{ID: 42, Nickname: "u42", Grade: models.GradeModerator})
	require.NoError(t, err)

	ident, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), ident.UserID)
	assert.Equal(t, "u42", ident.Nickname)
	assert.True(t, ident.IsModerator())
}

func TestVerifyRejects(t *testing.T) {
	j := testJWT("secret")
	good, err := j.Issue(&models.User{ID: 7})
	require.NoError(t, err)

	expired := testJWT("secret")
	expired.now = func() time.Time { return testTime().Add(-2 * time.Hour) }
	old, err := expired.Issue(&models.User{ID: 7})
	require.NoError(t, err)

	other, err := testJWT("other-secret").Issue(&models.User{ID: 7})
	require.NoError(t, err)

	zero, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "boardhub-test",
			ExpiresAt: jwt.NewNumericDate(testTime().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":        "",
		"malformed":    "not.a.jwt",
		"expired":      old,
		"wrong secret": other,
		"no user":      zero,
		"truncated":    good[:len(good)-4],
	}
	for name, tok := range cases {
		_, err := j.Verify(tok)
		assert.True(t, errors.Is(err, ErrInvalidCredential), "%s: %v", name, err)
	}
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	j := testJWT("secret")
	foreign := NewJWT("secret", "someone-else", time.Hour)
	foreign.now = testTime

	tok, err := foreign.Issue(&models.User{ID: 1})
	require.NoError(t, err)

	_, err = j.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc"))
	assert.Equal(t, "abc", BearerToken("abc"))
	assert.Equal(t, "", BearerToken(""))
}

func TestOwns(t *testing.T) {
	assert.True(t, Owns(3, 3))
	assert.False(t, Owns(3, 4))
	assert.False(t, Owns(0, 0))
}
