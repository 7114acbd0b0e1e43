package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"rentwheels/internal/models"
)

const identityKey = "identity"

func secret() []byte {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return []byte(val)
	}
	return []byte("supersecret") // fallback
}

// Identity is the authenticated caller, decoded once from the token and
// carried through the request context instead of loose claim strings.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// Owns reports whether the identity belongs to the given user id. Admins own
// everything.
func (id Identity) Owns(userID uint) bool {
	return id.IsAdmin() || id.UserID == userID
}

// GenerateToken signs a 24h token carrying the user's id, email and role.
func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// authenticate validates the bearer token and stores the decoded Identity on
// the context. It never advances the handler chain itself, so middlewares can
// run further checks before letting the request through.
func authenticate(c *gin.Context) (Identity, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		abort(c, http.StatusUnauthorized, "Unauthorized: No token provided")
		return Identity{}, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil || !token.Valid {
		abort(c, http.StatusUnauthorized, "Unauthorized: Invalid token")
		return Identity{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		abort(c, http.StatusUnauthorized, "Unauthorized: Invalid token claims")
		return Identity{}, false
	}

	ident := Identity{}
	if id, ok := claims["id"].(float64); ok {
		ident.UserID = uint(id)
	}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		ident.Role = role
	}
	c.Set(identityKey, ident)

	return ident, true
}

// RequireAuth ensures a valid bearer token is present and stores the decoded
// Identity on the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireRole ensures the token is valid and the caller has the given role.
// The chain only advances after the role check passes.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := authenticate(c)
		if !ok {
			return
		}

		if ident.Role != role {
			abort(c, http.StatusForbidden, forbiddenMessage(role))
			return
		}

		c.Next()
	}
}

// CurrentUser returns the Identity stored by RequireAuth.
func CurrentUser(c *gin.Context) (Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	ident, ok := val.(Identity)
	return ident, ok
}

func forbiddenMessage(role string) string {
	switch role {
	case models.RoleAdmin:
		return "Forbidden: Admin Access Required"
	case models.RoleCustomer:
		return "Forbidden: Customer Access Required"
	default:
		return "Forbidden: Access Denied"
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"message":    message,
		"statusCode": status,
	})
}
