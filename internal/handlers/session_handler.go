package handlers

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/Pho3nix-24/CENTRO-web/internal/audit"
	"github.com/Pho3nix-24/CENTRO-web/internal/flash"
	"github.com/Pho3nix-24/CENTRO-web/internal/middleware"
	"github.com/Pho3nix-24/CENTRO-web/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ShowLogin renders the login form. A locked-out address sees the countdown
// instead of being allowed to try.
func (h *Handlers) ShowLogin(c *gin.Context) {
	var data gin.H
	ip := middleware.OriginIP(c)
	if locked, remaining := h.throttle.IsLocked(ip); locked {
		data = gin.H{"Lockout": fmt.Sprintf("Demasiados intentos fallidos. Por favor, espera %d minutos.", lockoutMinutes(remaining))}
	}
	h.render(c, http.StatusOK, "login.html", data)
}

// Login processes the credentials. The throttle decides whether the attempt
// is even made: a locked address is rejected without checking the password.
// Every outcome redirects so the flash message survives to the next render.
func (h *Handlers) Login(c *gin.Context) {
	ip := middleware.OriginIP(c)

	if locked, remaining := h.throttle.IsLocked(ip); locked {
		flash.Error(c, fmt.Sprintf("Demasiados intentos fallidos. Por favor, espera %d minutos.", lockoutMinutes(remaining)))
		redirectTo(c, "/login")
		return
	}

	username := c.PostForm("username")
	password := c.PostForm("password")

	user, known := h.cfg.Users[username]
	if known && bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil {
		h.throttle.Clear(ip)

		token, err := middleware.NewSessionToken(h.cfg.JWTSecret, username, user)
		if err != nil {
			flash.Error(c, "No se pudo iniciar la sesión. Inténtalo de nuevo.")
			redirectTo(c, "/login")
			return
		}
		c.SetCookie(middleware.SessionCookie, token, int(middleware.SessionLifetime.Seconds()), "/", "", false, true)

		h.audit.Dispatch(audit.Event{Actor: user.FullName, Action: models.ActionLoginOK, OriginIP: ip})
		flash.Success(c, "Has iniciado sesión correctamente.")
		redirectTo(c, "/")
		return
	}

	remaining := h.throttle.RegisterFailure(ip)
	h.audit.Dispatch(audit.Event{Actor: username, Action: models.ActionLoginFailed, OriginIP: ip})

	if remaining > 0 {
		flash.Error(c, fmt.Sprintf("Credenciales incorrectas. Te quedan %d intentos.", remaining))
	} else {
		flash.Error(c, "Demasiados intentos fallidos. Tu acceso ha sido bloqueado por 5 minutos.")
	}
	redirectTo(c, "/login")
}

func lockoutMinutes(remaining time.Duration) int {
	minutes := int(math.Round(remaining.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Logout revokes the session token and clears the cookie.
func (h *Handlers) Logout(c *gin.Context) {
	h.audit.Dispatch(h.auditEvent(c, models.ActionLogout))

	if v, ok := c.Get("claims"); ok {
		if claims, ok := v.(*middleware.SessionClaims); ok {
			middleware.RevokeToken(h.rdb, claims)
		}
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	flash.Success(c, "Has cerrado la sesión.")
	redirectTo(c, "/login")
}
