// Package auth signs and verifies session tokens.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the numeric account id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

func GenerateToken(userID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken returns common.ErrTokenExpired for expired tokens and
// an error wrapping common.ErrInvalidToken for anything else that fails.
func GetUserIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// Manager binds a secret and a token lifetime.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

func (m *Manager) Issue(userID int64) (string, error) {
	return GenerateToken(userID, m.secret, m.ttl)
}

func (m *Manager) Verify(token string) (int64, error) {
	return GetUserIDFromToken(token, m.secret)
}
