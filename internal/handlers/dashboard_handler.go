package handlers

import (
	"net/http"

	"github.com/Pho3nix-24/CENTRO-web/internal/config"
	"github.com/Pho3nix-24/CENTRO-web/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Dashboard shows the headline stats and the most recent payments. Customer
// service users are sent to their only allowed page.
func (h *Handlers) Dashboard(c *gin.Context) {
	if middleware.SessionRole(c) == config.RoleAtencion {
		redirectTo(c, "/consulta")
		return
	}

	stats := h.store.Stats()
	latest := h.store.LatestPayments(5)

	h.render(c, http.StatusOK, "dashboard.html", gin.H{
		"Stats":   stats,
		"Pagos":   latest,
		"Headers": Headers,
	})
}
