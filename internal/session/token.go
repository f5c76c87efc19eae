package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the access token carries. The session it names is the
// source of truth; the token alone grants nothing once the session is gone.
type Claims struct {
	UserID    uint
	Email     string
	Role      string
	SessionID string
}

func IssueToken(secret string, s Session) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret not configured")
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": s.UserID,
		"email":   s.Email,
		"role":    s.Role,
		"sid":     s.ID,
		"iat":     s.CreatedAt.Unix(),
		"exp":     s.ExpiresAt.Unix(),
	})
	return t.SignedString([]byte(secret))
}

func ParseToken(secret, raw string) (Claims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, errors.New("invalid or expired token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid token claims")
	}
	var c Claims
	if v, ok := mc["user_id"].(float64); ok {
		c.UserID = uint(v)
	}
	c.Email, _ = mc["email"].(string)
	c.Role, _ = mc["role"].(string)
	c.SessionID, _ = mc["sid"].(string)
	if c.SessionID == "" || c.UserID == 0 {
		return Claims{}, errors.New("invalid token claims")
	}
	return c, nil
}
