package middleware

import (
	"net/http"
	"strings"

	appauth "fitlog/internal/application/auth"
	"fitlog/internal/domain/auth"

	"github.com/gin-gonic/gin"
)

const (
	// ClaimsContextKey is the key used to store verified claims in the gin context
	ClaimsContextKey = "claims"

	bearerScheme = "bearer"
)

// RequireAuth rejects requests that do not carry a valid bearer token.
// Missing header, malformed scheme and invalid token all map to 401 so
// the response never hints at which check failed.
func RequireAuth(verifier *appauth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			unauthorized(c, "authorization required")
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid bearer token is present and
// lets the request through anonymously otherwise. The verifier is not
// invoked when no Authorization header is sent.
func OptionalAuth(verifier *appauth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), token)
		if err == nil {
			c.Set(ClaimsContextKey, claims)
		}
		c.Next()
	}
}

// RequireAAL2 requires a session that completed multi-factor
// authentication. Runs after RequireAuth.
func RequireAAL2() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			unauthorized(c, "authorization required")
			return
		}
		if !claims.HasAAL2() {
			c.JSON(http.StatusForbidden, gin.H{"error": "multi-factor authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaims retrieves the verified claims from the gin context, or nil
// for anonymous requests.
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ClaimsContextKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}
