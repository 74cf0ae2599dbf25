package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Pho3nix-24/CENTRO-web/internal/flash"
	"github.com/Pho3nix-24/CENTRO-web/internal/models"

	"github.com/gin-gonic/gin"
)

// DeactivateClient flips a client to inactivo so it disappears from
// searches. The form identifies the client through one of its payments.
func (h *Handlers) DeactivateClient(c *gin.Context) {
	query := c.PostForm("query")
	id, err := strconv.ParseUint(c.PostForm("id"), 10, 32)
	if err != nil {
		flash.Error(c, "Error: Identificador de pago inválido.")
		redirectTo(c, consultaURL(query))
		return
	}

	payment, err := h.store.GetPayment(uint(id))
	if err != nil {
		flash.Error(c, "Error: No se encontró el pago asociado.")
		redirectTo(c, consultaURL(query))
		return
	}

	if err := h.store.SetClientStatus(payment.ClientID, models.ClientInactive); err != nil {
		flash.Error(c, fmt.Sprintf("Error: No se pudo desactivar al cliente: %v", err))
		redirectTo(c, consultaURL(query))
		return
	}

	clientID := payment.ClientID
	ev := h.auditEvent(c, models.ActionDeactivateClient)
	ev.AffectedTable = "clientes"
	ev.AffectedRowID = &clientID
	h.audit.Dispatch(ev)

	flash.Success(c, "Cliente desactivado correctamente. Ya no aparecerá en las búsquedas.")
	redirectTo(c, consultaURL(query))
}

// ReactivateClient flips a client back to activo.
func (h *Handlers) ReactivateClient(c *gin.Context) {
	query := c.PostForm("query")
	id, err := strconv.ParseUint(c.PostForm("cliente_id"), 10, 32)
	if err != nil {
		flash.Error(c, "Error: Identificador de cliente inválido.")
		redirectTo(c, consultaURL(query))
		return
	}
	clientID := uint(id)

	if err := h.store.SetClientStatus(clientID, models.ClientActive); err != nil {
		flash.Error(c, fmt.Sprintf("Error al reactivar al cliente: %v", err))
		redirectTo(c, consultaURL(query))
		return
	}

	ev := h.auditEvent(c, models.ActionReactivateClient)
	ev.AffectedTable = "clientes"
	ev.AffectedRowID = &clientID
	h.audit.Dispatch(ev)

	flash.Success(c, "Cliente reactivado correctamente.")
	redirectTo(c, consultaURL(query))
}

// ClientProfile shows one client and their payment history.
func (h *Handlers) ClientProfile(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		redirectTo(c, "/consulta")
		return
	}

	client, err := h.store.GetClient(id)
	if err != nil {
		flash.Error(c, "Error: Cliente no encontrado.")
		redirectTo(c, "/consulta")
		return
	}

	h.render(c, http.StatusOK, "perfil_cliente.html", gin.H{
		"Cliente": client,
		"Pagos":   h.store.PaymentsByClient(id),
	})
}
