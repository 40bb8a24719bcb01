package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const RoleOrganizer = "organizer"

var ErrInvalidToken = errors.New("invalid or expired token")

// OrganizerClaims grant write access to a single tournament.
type OrganizerClaims struct {
	TournamentID string `json:"tournament_id"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateOrganizerToken подписывает HS256 токен организатора турнира.
func GenerateOrganizerToken(secret []byte, tournamentID string, ttl time.Duration, now time.Time) (string, error) {
	claims := OrganizerClaims{
		TournamentID: tournamentID,
		Role:         RoleOrganizer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tournamentID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseOrganizerToken verifies signature, algorithm and expiry and returns the claims.
func ParseOrganizerToken(secret []byte, tokenString string) (*OrganizerClaims, error) {
	claims := &OrganizerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleOrganizer || claims.TournamentID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
