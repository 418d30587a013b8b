// internal/middleware/admin_jwt.go
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

// AdminJWTAuth guards next with an HS256 bearer token. An empty secret
// disables the guard and passes every request through.
func AdminJWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeXMLError(w, http.StatusUnauthorized, "missing token")
				return
			}
			tokenStr := strings.TrimPrefix(auth, "Bearer ")
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			}, jwt.WithExpirationRequired())
			if err != nil || !token.Valid {
				writeXMLError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if role, _ := claims["role"].(string); role != adminRole {
				writeXMLError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GenerateAdminToken signs a token for user valid for ttl from now.
func GenerateAdminToken(secret, user string, now time.Time, ttl time.Duration) (string, int64, error) {
	exp := now.Add(ttl).Unix()

	claims := jwt.MapClaims{
		"user": user,
		"exp":  exp,
		"iat":  now.Unix(),
		"role": adminRole,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	return signed, exp, err
}
