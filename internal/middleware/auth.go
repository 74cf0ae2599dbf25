package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Pho3nix-24/CENTRO-web/internal/config"
	"github.com/Pho3nix-24/CENTRO-web/internal/flash"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "auth_token"

// SessionLifetime bounds how long a login stays valid.
const SessionLifetime = 12 * time.Hour

// SessionClaims is the authenticated identity carried in the JWT.
type SessionClaims struct {
	Username string      `json:"username"`
	FullName string      `json:"full_name"`
	Role     config.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewSessionToken signs a session token for the given user.
func NewSessionToken(secret []byte, username string, user config.User) (string, error) {
	claims := SessionClaims{
		Username: username,
		FullName: user.FullName,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// RevokeToken blacklists the token's jti in Redis for the remainder of its
// life, so logout terminates the session server-side. A nil client makes
// this a no-op.
func RevokeToken(rdb *redis.Client, claims *SessionClaims) {
	if rdb == nil || claims.ID == "" {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return
	}
	key := "revoked:" + claims.ID
	if err := rdb.Set(config.Ctx, key, "1", ttl).Err(); err != nil {
		slog.Error("no se pudo revocar la sesión", "error", err, "jti", claims.ID)
	}
}

// AuthMiddleware authenticates the session cookie and loads the identity
// into the Gin context. Unauthenticated browsers are sent to /login.
func AuthMiddleware(secret []byte, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			rejectSession(c)
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de firma inesperado: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
			rejectSession(c)
			return
		}

		if rdb != nil && claims.ID != "" {
			if _, err := rdb.Get(config.Ctx, "revoked:"+claims.ID).Result(); err == nil {
				c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
				rejectSession(c)
				return
			} else if err != redis.Nil {
				slog.Error("error al consultar revocaciones en Redis", "error", err)
			}
		}

		c.Set("username", claims.Username)
		c.Set("fullName", claims.FullName)
		c.Set("role", claims.Role)
		c.Set("claims", claims)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Unauthorized users are sent
// to /consulta, the only page every role can see.
func RequireRole(roles ...config.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := SessionRole(c)
		if !role.In(roles...) {
			flash.Error(c, "Acceso no autorizado.")
			c.Redirect(http.StatusFound, "/consulta")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionRole returns the authenticated role, or the empty role when absent.
func SessionRole(c *gin.Context) config.Role {
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(config.Role); ok {
			return role
		}
	}
	return ""
}

// SessionFullName returns the display name of the authenticated user.
func SessionFullName(c *gin.Context) string {
	return c.GetString("fullName")
}

// OriginIP resolves the client address: the first X-Forwarded-For value when
// the request came through the reverse proxy, else the peer address. Used as
// the throttle key and the audit origin field.
func OriginIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

func rejectSession(c *gin.Context) {
	flash.Error(c, "Debes iniciar sesión para ver esta página.")
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
