package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"boardhub/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential covers malformed, expired and badly signed bearer tokens.
var ErrInvalidCredential = errors.New("invalid credential")

var supportedAlgs = []string{jwt.SigningMethodHS256.Alg()}

// Identity is the caller as proven by a verified bearer token. It is rebuilt on every request.
type Identity struct {
	UserID   uint
	Nickname string
	Grade    int
}

func (i Identity) IsModerator() bool {
	return i.Grade >= models.GradeModerator
}

// Verifier turns a bearer credential into an Identity.
type Verifier interface {
	Verify(token string) (Identity, error)
}

type accessClaims struct {
	jwt.RegisteredClaims

	UserID   uint   `json:"userId"`
	Nickname string `json:"nickname,omitempty"`
	Grade    int    `json:"grade"`
}

// JWT signs and verifies HS256 access tokens with a shared secret.
type JWT struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret, issuer string, ttl time.Duration) *JWT {
	return &JWT{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs an access token for u.
func (j *JWT) Issue(u *models.User) (string, error) {
	now := j.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   fmt.Sprintf("%d", u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserID:   u.ID,
		Nickname: u.Nickname,
		Grade:    u.Grade,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

func (j *JWT) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, fmt.Errorf("%w: empty token", ErrInvalidCredential)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(supportedAlgs),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	}

	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(*jwt.Token) (any, error) {
		return j.secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || claims.UserID == 0 {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredential, jwt.ErrTokenInvalidClaims)
	}

	return Identity{
		UserID:   claims.UserID,
		Nickname: claims.Nickname,
		Grade:    claims.Grade,
	}, nil
}

// BearerToken strips the "Bearer " scheme from an Authorization header value.
func BearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return strings.TrimSpace(header)
}

// Owns reports whether the claimed owner of a resource is the verified caller.
func Owns(claimedOwnerID, callerID uint) bool {
	return claimedOwnerID != 0 && claimedOwnerID == callerID
}
