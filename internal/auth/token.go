package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, unsigned, expired, and otherwise
// unverifiable tokens.
var ErrInvalidToken = errors.New("invalid token")

// TokenConfig configures the token service. The secret comes from
// process configuration; it is never embedded in guard code.
type TokenConfig struct {
	// Secret signs and verifies tokens (HS256).
	Secret []byte

	// TTL bounds a token's lifetime. Zero disables expiry.
	TTL time.Duration
}

// TokenService issues and verifies signed session tokens.
type TokenService struct {
	config TokenConfig
}

func NewTokenService(config TokenConfig) (*TokenService, error) {
	if len(config.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	return &TokenService{config: config}, nil
}

// tokenClaims is the JWT wire shape. The acct_type field selects which
// identity fields are meaningful.
type tokenClaims struct {
	AcctType AccountKind `json:"acct_type"`
	Handle   string      `json:"handle,omitempty"`
	UserID   uint        `json:"user_id,omitempty"`
	Username string      `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a token embedding the given claims.
func (s *TokenService) Issue(claims Claims) (string, error) {
	wire := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if s.config.TTL != 0 {
		wire.ExpiresAt = jwt.NewNumericDate(time.Now().Add(s.config.TTL))
	}

	switch c := claims.(type) {
	case CompanyClaims:
		wire.AcctType = AccountCompany
		wire.Handle = c.Handle
	case IndividualClaims:
		wire.AcctType = AccountIndividual
		wire.UserID = c.ID
		wire.Username = c.Username
	default:
		return "", fmt.Errorf("unsupported claims type %T", claims)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wire)
	signed, err := token.SignedString(s.config.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims variant.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	var wire tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &wire, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.config.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	switch wire.AcctType {
	case AccountCompany:
		return CompanyClaims{Handle: wire.Handle}, nil
	case AccountIndividual:
		return IndividualClaims{ID: wire.UserID, Username: wire.Username}, nil
	default:
		return nil, ErrInvalidToken
	}
}
