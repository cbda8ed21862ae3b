package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller established by a verified token.
type Identity struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// Claims is the signed token payload: the user's email and id, plus iat/exp
// when the service has a TTL.
type Claims struct {
	Email string `json:"email"`
	ID    int    `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a service signing with secret. A zero ttl issues
// tokens without an expiry claim.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

func (s *TokenService) Issue(id Identity) (string, error) {
	claims := Claims{Email: id.Email, ID: id.ID}
	if s.ttl > 0 {
		now := s.now()
		claims.Subject = strconv.Itoa(id.ID)
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature (and expiry, when present) and returns the identity.
func (s *TokenService) Verify(token string) (Identity, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Identity{}, err
	}
	if !parsed.Valid || claims.ID <= 0 {
		return Identity{}, errors.New("token carries no user id")
	}
	return Identity{ID: claims.ID, Email: claims.Email}, nil
}
