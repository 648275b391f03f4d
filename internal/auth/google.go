package auth

import (
	"context"
	"crypto/rsa"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

var googleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

// GoogleProfile is the subset of a Google ID token used for sign-in.
type GoogleProfile struct {
	jwt.RegisteredClaims

	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// IDTokenDecoder extracts the profile from an ID token issued by an external provider.
type IDTokenDecoder interface {
	Decode(idToken string) (*GoogleProfile, error)
}

// GoogleVerifier checks an ID token's RS256 signature against Google's key set, its
// audience against the OAuth client id and its issuer against Google's.
type GoogleVerifier struct {
	clientID string
	keys     jwk.Set
	now      func() time.Time
}

// NewGoogleVerifier returns a verifier refusing every token when clientID or keys is empty.
func NewGoogleVerifier(clientID string, keys jwk.Set) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		keys:     keys,
		now:      time.Now,
	}
}

// NewGoogleKeySet fetches the key set at url and keeps it refreshed in the background
// until ctx ends.
func NewGoogleKeySet(ctx context.Context, url string) (jwk.Set, error) {
	cache := jwk.NewCache(ctx)
	if err := cache.Register(url); err != nil {
		return nil, fmt.Errorf("register key set: %w", err)
	}
	if _, err := cache.Refresh(ctx, url); err != nil {
		return nil, fmt.Errorf("fetch key set: %w", err)
	}
	return jwk.NewCachedSet(cache, url), nil
}

func (g *GoogleVerifier) Decode(idToken string) (*GoogleProfile, error) {
	if g.clientID == "" || g.keys == nil {
		return nil, fmt.Errorf("%w: google sign-in is not configured", ErrInvalidCredential)
	}

	profile := &GoogleProfile{}
	_, err := jwt.ParseWithClaims(idToken, profile, g.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(g.clientID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	if !slices.Contains(googleIssuers, profile.Issuer) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, jwt.ErrTokenInvalidIssuer)
	}
	if profile.Email == "" || !profile.EmailVerified {
		return nil, fmt.Errorf("%w: id token has no verified email", ErrInvalidCredential)
	}
	return profile, nil
}

func (g *GoogleVerifier) key(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	key, ok := g.keys.LookupKeyID(kid)
	if !ok {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}

	var pub rsa.PublicKey
	if err := key.Raw(&pub); err != nil {
		return nil, fmt.Errorf("google key %q: %w", kid, err)
	}
	return &pub, nil
}
