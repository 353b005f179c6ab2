package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. The middleware reports these messages verbatim, so
// they never carry key material or claim contents.
var (
	ErrMissingToken     = errors.New("access denied: no token provided")
	ErrMalformedToken   = errors.New("invalid token: malformed")
	ErrInvalidSignature = errors.New("invalid token: signature verification failed")
	ErrTokenExpired     = errors.New("token expired")
)

// Identity is the per-request result of verifying a session token. It is
// rebuilt on every request and never persisted.
type Identity struct {
	UserID string
	Email  string
}

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) Generate(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token's signature and expiry and extracts the identity.
// Signature verification is mandatory; a token whose payload parses but whose
// signature does not verify is rejected.
func (s *TokenService) Verify(tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Identity{}, ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenExpired):
		return Identity{}, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Identity{}, ErrInvalidSignature
	case err != nil:
		return Identity{}, ErrInvalidSignature
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidSignature
	}

	return Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
