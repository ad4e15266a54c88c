package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token kinds carried in the claims
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrWrongType    = errors.New("unexpected token type")
)

// Claims is the JWT payload for session tokens
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	UserType string    `json:"user_type"`
	Type     string    `json:"type"`
	jwt.RegisteredClaims
}

// Pair is an access+refresh token pair returned on successful authentication
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Maker signs and verifies session token pairs
type Maker struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewMaker creates a token Maker with the given signing secret and lifetimes
func NewMaker(secret string, accessTTL, refreshTTL time.Duration) *Maker {
	return &Maker{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (m *Maker) sign(userID uuid.UUID, userType, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		UserType: userType,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// GeneratePair issues an access+refresh pair for the given user
func (m *Maker) GeneratePair(userID uuid.UUID, userType string) (*Pair, error) {
	access, err := m.sign(userID, userType, TypeAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(userID, userType, TypeRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{Access: access, Refresh: refresh}, nil
}

// Verify parses a signed token and returns its claims if valid and of the
// expected type
func (m *Maker) Verify(tokenStr, expectedType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.Type != expectedType {
		return nil, ErrWrongType
	}
	return claims, nil
}
