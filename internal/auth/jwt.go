package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func sign(userID int64, email, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString([]byte(secret))
}

// MintTokens issues an access/refresh pair for the user. Both tokens
// carry the same claims and differ only in lifetime.
func MintTokens(userID int64, email, role, secret string, accessTTL, refreshTTL time.Duration) (TokenPair, error) {
	access, err := sign(userID, email, role, secret, accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := sign(userID, email, role, secret, refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseClaims verifies the signature and expiry and returns the claims.
func ParseClaims(tokenStr, secret string) (*Claims, error) {
	keyfunc := func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
