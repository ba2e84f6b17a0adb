package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/uw-gac/phenotag/pkg/domain"
)

// Claims carries an actor's role scope in a signed token.
//
// The subject is the actor's account name. Study scopes are study ids, not
// accessions; the issuer resolves names to ids when minting the token.
type Claims struct {
	jwt.RegisteredClaims

	// DCC marks coordinating-center staff. They can tag, review and
	// decide on every study.
	DCC bool `json:"dcc,omitempty"`

	// Taggable lists studies the actor may tag variables of.
	Taggable []int64 `json:"taggable,omitempty"`

	// Represents lists studies the actor responds on behalf of.
	Represents []int64 `json:"represents,omitempty"`
}

// Verify parses and verifies an HS256 token and extracts the actor.
func Verify(token string, key []byte) (domain.Actor, error) {
	claims := Claims{}
	parsed, err := jwt.ParseWithClaims(
		token, &claims,
		func(t *jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %s", domain.ErrPermissionDenied, err)
	}
	if !parsed.Valid {
		return domain.Actor{}, fmt.Errorf("%w: invalid token", domain.ErrPermissionDenied)
	}
	if claims.Subject == "" {
		return domain.Actor{}, fmt.Errorf("%w: token has no subject", domain.ErrPermissionDenied)
	}

	return domain.Actor{
		Name:       claims.Subject,
		DCC:        claims.DCC,
		Taggable:   claims.Taggable,
		Represents: claims.Represents,
	}, nil
}

// Issue mints an HS256 token for the actor, expiring after expiresIn.
//
// Used by tests and by operators provisioning credentials out of band.
func Issue(actor domain.Actor, key []byte, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
		DCC:        actor.DCC,
		Taggable:   actor.Taggable,
		Represents: actor.Represents,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}
