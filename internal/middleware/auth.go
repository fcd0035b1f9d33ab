package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"client-portal-backend/internal/config"
	"client-portal-backend/internal/models"
)

const IdentityKey = "identity"

// Identity is the external authentication subject presented per request. It
// is distinct from the internal User record; the identity resolver maps one
// to the other.
type Identity struct {
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}

// IdentityFrom returns the identity stored by the auth middleware, if any.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// AuthMiddleware validates the Supabase-style bearer token and stores the
// parsed identity in the request context. Requests without a valid token are
// rejected.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := parseIdentity(c, cfg)
		if err != "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err})
			c.Abort()
			return
		}
		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// OptionalAuthMiddleware stores the identity when a valid token is present
// and lets the request through either way. Used by read-only routes that
// treat an anonymous caller as "no user" rather than an error.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, errMsg := parseIdentity(c, cfg); errMsg == "" {
			c.Set(IdentityKey, identity)
		}
		c.Next()
	}
}

func parseIdentity(c *gin.Context, cfg *config.Config) (Identity, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return Identity{}, "missing authorization header"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return Identity{}, "invalid authorization header format"
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return Identity{}, "empty token"
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		if cfg.SupabaseJWTSecret == "" {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.SupabaseJWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Identity{}, "invalid token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, "invalid token claims"
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Identity{}, "missing subject in token"
	}

	identity := Identity{Subject: sub}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	// Supabase puts the display name and avatar in user_metadata.
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		if name, ok := meta["name"].(string); ok {
			identity.Name = name
		} else if name, ok := meta["full_name"].(string); ok {
			identity.Name = name
		}
		if avatar, ok := meta["avatar_url"].(string); ok {
			identity.AvatarURL = avatar
		}
	}
	if identity.Name == "" {
		if name, ok := claims["name"].(string); ok {
			identity.Name = name
		}
	}

	return identity, ""
}
