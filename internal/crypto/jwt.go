package crypto

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("Invalid token")
	ErrTokenExpired = errors.New("Token expired")
)

const (
	tokenIssuer   = "autocare360"
	tokenAudience = "autocare360-api"
)

// Claims is the JWT claim set for session tokens. Registration tokens
// carry only the subject id; login tokens carry the full identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Identity is the claim payload for a full-identity login token.
type Identity struct {
	UserID    int64
	Email     string
	FirstName string
	LastName  string
}

// GenerateToken creates a signed subject-only token, used at
// registration time.
func GenerateToken(userID int64, secret string, expiry time.Duration) (string, error) {
	return GenerateIdentityToken(Identity{UserID: userID}, secret, expiry)
}

// GenerateIdentityToken creates a signed token carrying the full
// identity claim set, used at login time.
func GenerateIdentityToken(id Identity, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			Subject:   strconv.FormatInt(id.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    id.UserID,
		Email:     id.Email,
		FirstName: id.FirstName,
		LastName:  id.LastName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a token string, returning the
// claims if valid. Expiry is reported distinctly from other failures so
// the middleware can surface it.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
