// Package auth issues and verifies the HS256 access tokens that the blob
// service accepts.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the owner the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	OwnerID string `json:"owner_id"`
}

// GenerateToken signs a token for ownerID that expires after validity.
func GenerateToken(ownerID string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		OwnerID: ownerID,
	})

	return token.SignedString(secretKey)
}

// OwnerIDFromToken verifies tokenString and returns its owner. Expired tokens
// yield common.ErrTokenExpired, anything else that fails verification
// common.ErrInvalidToken.
func OwnerIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.OwnerID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.OwnerID, nil
}

// UnverifiedOwnerID reads the owner from a token without checking its
// signature. Clients use it to learn their own identity; servers must not.
func UnverifiedOwnerID(tokenString string) (string, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.OwnerID == "" {
		return "", common.ErrInvalidToken
	}
	return claims.OwnerID, nil
}
