package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	usersdomain "github.com/brewlabs/coffee-store-api/internal/domains/users/domain"
	"github.com/brewlabs/coffee-store-api/internal/platform/auth"
)

const claimsContextKey = "httpapi.claims"

// Authenticate verifies the bearer token and stores its claims on the request
// context. Requests without a valid token are rejected.
func Authenticate(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			respondError(c, http.StatusUnauthorized, errors.New("missing bearer token"))
			c.Abort()
			return
		}
		claims, err := manager.Parse(strings.TrimSpace(token))
		if err != nil {
			respondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose token carries a different
// role. It must run after Authenticate.
func RequireRole(role usersdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}
		if claims.Role != string(role) {
			respondError(c, http.StatusForbidden, errors.New("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func claimsFrom(c *gin.Context) (auth.Claims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}

func isAdmin(claims auth.Claims) bool {
	return claims.Role == string(usersdomain.RoleAdmin)
}
