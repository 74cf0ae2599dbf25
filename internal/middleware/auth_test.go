package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Pho3nix-24/CENTRO-web/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("secreto-de-prueba")

func newAuthedRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(secret, nil))
	r.GET("/privada", func(c *gin.Context) {
		c.String(http.StatusOK, "%s:%s", c.GetString("fullName"), SessionRole(c))
	})
	return r
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	token, err := NewSessionToken(testSecret, "lud_rojas", config.User{
		FullName: "Lud Rojas",
		Role:     config.RoleEquipo,
	})
	require.NoError(t, err)

	r := newAuthedRouter(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/privada", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lud Rojas:equipo", w.Body.String())
}

func TestAuthMiddlewareRejectsMissingCookie(t *testing.T) {
	r := newAuthedRouter(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/privada", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	token, err := NewSessionToken([]byte("otro-secreto"), "admin", config.User{
		FullName: "Administrador",
		Role:     config.RoleAdmin,
	})
	require.NoError(t, err)

	r := newAuthedRouter(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/privada", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireRoleRedirectsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/reportes", func(c *gin.Context) {
		c.Set("role", config.RoleAtencion)
	}, RequireRole(config.RoleAdmin, config.RoleEquipo), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/reportes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/consulta", w.Header().Get("Location"))
}

func TestRequireRoleAllowsMember(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/reportes", func(c *gin.Context) {
		c.Set("role", config.RoleEquipo)
	}, RequireRole(config.RoleAdmin, config.RoleEquipo), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/reportes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOriginIPPrefersForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		forwarded string
		remote    string
		want      string
	}{
		{"first forwarded value", "203.0.113.9, 10.0.0.1", "127.0.0.1:5000", "203.0.113.9"},
		{"single forwarded value", "203.0.113.9", "127.0.0.1:5000", "203.0.113.9"},
		{"no proxy header", "", "192.168.1.20:6000", "192.168.1.20"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			if tc.forwarded != "" {
				c.Request.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			assert.Equal(t, tc.want, OriginIP(c))
		})
	}
}
