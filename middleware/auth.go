package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"schoolhub_backend/db"
	"schoolhub_backend/models"
)

// TokenCookieName is the cookie carrying the session token for browser
// clients.
const TokenCookieName = "token"

// Context keys set by Auth for downstream handlers.
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "userID"
)

// TokenSource says where a route group expects its credential. Each group
// declares exactly one source; there is no silent fallback between them.
type TokenSource int

const (
	FromCookie TokenSource = iota
	FromBearer
)

// UserFinder re-fetches the canonical user record during authentication.
type UserFinder interface {
	FindUserByID(ctx context.Context, id int) (*models.User, error)
}

// Auth authenticates a request: extract credential, verify it, then re-fetch
// the user. A structurally valid token for a deleted user is still rejected,
// and the fresh role from the store is what authorization later trusts, not
// the role cached in the token.
func Auth(users UserFinder, tokens *TokenService, source TokenSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c, source)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		user, err := users.FindUserByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, db.ErrNotFound) {
			// A structurally valid token for a deleted account is still no
			// credential.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if err != nil {
			log.Printf("auth: failed to fetch user %d: %v", claims.UserID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, *user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated user's
// current role is in the given list. Runs after Auth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

// CurrentUser returns the authenticated user stored by Auth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

func extractToken(c *gin.Context, source TokenSource) (string, bool) {
	switch source {
	case FromCookie:
		cookie, err := c.Cookie(TokenCookieName)
		if err != nil || cookie == "" {
			return "", false
		}
		return cookie, true
	case FromBearer:
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	return "", false
}
