// utils/auth.go
package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Token types carried in the "typ" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenPair is the signed access/refresh pair returned on login,
// registration and refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

func accessTTL() time.Duration {
	minutes := 60
	if env := os.Getenv("JWT_ACCESS_MINUTES"); env != "" {
		if m, err := strconv.Atoi(env); err == nil {
			minutes = m
		}
	}
	return time.Duration(minutes) * time.Minute
}

func refreshTTL() time.Duration {
	days := 7
	if env := os.Getenv("JWT_REFRESH_DAYS"); env != "" {
		if d, err := strconv.Atoi(env); err == nil {
			days = d
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

func signToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"typ": tokenType,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	})
	return token.SignedString(secret)
}

// GenerateTokenPair issues a fresh access/refresh pair for the user.
func GenerateTokenPair(userID uint) (TokenPair, error) {
	access, err := signToken(userID, TokenTypeAccess, accessTTL())
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := signToken(userID, TokenTypeRefresh, refreshTTL())
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// ParseToken verifies signature and expiry and returns the subject user id.
// wantType must match the token's "typ" claim, so a refresh token cannot be
// used where an access token is expected.
func ParseToken(tokenString, wantType string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret()
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != wantType {
		return 0, fmt.Errorf("%w: wrong token type", ErrInvalidToken)
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
