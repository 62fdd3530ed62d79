package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"anoa.com/fittrack/internal/entity"
	"anoa.com/fittrack/internal/policy"
	"anoa.com/fittrack/internal/session"
	"anoa.com/fittrack/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthMiddleware struct {
	sessions session.Store
	secret   string
}

func NewAuthMiddleware(sessions session.Store) *AuthMiddleware {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "12345"
	}

	return &AuthMiddleware{
		sessions: sessions,
		secret:   secret,
	}
}

// RequireAuth validates the bearer token and the server-side session it
// names. A token that verifies but whose session was deleted (logout,
// expiry) is rejected, so logout takes effect immediately.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || claims.ID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		sess, err := m.sessions.Get(c.Request.Context(), claims.ID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			}
			c.Abort()
			return
		}

		c.Set("session_id", sess.ID)
		c.Set("user_id", sess.UserID.String())
		c.Set("user_role", sess.Role)
		c.Next()
	}
}

// RequireAdmin gates the admin route group. This is a transport-level guard;
// data-level admin access is decided separately by the policy engine.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		if role.(string) != entity.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ActorFrom builds the policy actor for the current request. Nil means the
// request is anonymous.
func ActorFrom(c *gin.Context) *policy.Actor {
	id, err := response.GetUserID(c)
	if err != nil {
		return nil
	}
	return &policy.Actor{AccountID: id, Role: response.GetUserRole(c)}
}
