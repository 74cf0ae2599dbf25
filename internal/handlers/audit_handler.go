package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Auditoria lists the full audit trail, newest first. Admin only; the role
// gate lives in the route registration.
func (h *Handlers) Auditoria(c *gin.Context) {
	h.render(c, http.StatusOK, "auditoria.html", gin.H{
		"Logs": h.store.AuditEntries(),
	})
}
