package auth

import (
	"errors"
	"time"

	"supplier-core/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// Claims is the decoded, verified payload of a bearer token.
type Claims map[string]any

// TokenService signs and verifies HS256 bearer tokens with a shared secret.
// There is no refresh mechanism and no revocation list; a token is good
// until its expiry.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// IssueToken signs the given claims with an expiry of now + 24 hours.
func (s *TokenService) IssueToken(claims Claims) (string, error) {
	payload := jwt.MapClaims{}
	for k, v := range claims {
		payload[k] = v
	}
	payload["exp"] = jwt.NewNumericDate(time.Now().Add(tokenTTL))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(s.secret)
}

// VerifyToken validates signature and expiry. Expired tokens surface as
// entity.ErrTokenExpired; every other decode or signature failure collapses
// to entity.ErrTokenInvalid.
func (s *TokenService) VerifyToken(token string) (Claims, error) {
	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, entity.ErrTokenExpired
		}
		return nil, entity.ErrTokenInvalid
	}
	payload, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, entity.ErrTokenInvalid
	}
	return Claims(payload), nil
}
