package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Pho3nix-24/CENTRO-web/internal/flash"
	"github.com/Pho3nix-24/CENTRO-web/internal/models"
	"github.com/Pho3nix-24/CENTRO-web/internal/store"

	"github.com/gin-gonic/gin"
)

// ShowRegister renders the registration form.
func (h *Handlers) ShowRegister(c *gin.Context) {
	h.render(c, http.StatusOK, "registrar.html", nil)
}

// Submit processes a new registration: resolves the client by DNI, inserts
// the payment and audits the pair of IDs.
func (h *Handlers) Submit(c *gin.Context) {
	dateStr := c.PostForm("fecha")
	if dateStr == "" {
		flash.Error(c, "La fecha es un campo obligatorio.")
		redirectTo(c, "/registrar")
		return
	}
	date, err := parseDate(dateStr)
	if err != nil {
		flash.Error(c, "El formato de la fecha es incorrecto. Por favor, usa AAAA-MM-DD.")
		redirectTo(c, "/registrar")
		return
	}

	payment, err := paymentFromForm(c, date)
	if err != nil {
		flash.Error(c, "El monto de la cuota no es válido.")
		redirectTo(c, "/registrar")
		return
	}

	clientID, err := h.store.FindOrCreateClient(store.ClientInput{
		Name:   c.PostForm("cliente"),
		DNI:    c.PostForm("dni"),
		Email:  c.PostForm("correo"),
		Phone:  c.PostForm("celular"),
		Gender: c.PostForm("genero"),
	})
	if err != nil {
		h.flashStoreError(c, err)
		redirectTo(c, "/registrar")
		return
	}

	paymentID, err := h.store.CreatePayment(clientID, payment)
	if err != nil {
		h.flashStoreError(c, err)
		redirectTo(c, "/registrar")
		return
	}

	ev := h.auditEvent(c, models.ActionCreatePayment)
	ev.AffectedTable = "pagos"
	ev.AffectedRowID = &paymentID
	ev.Detail = fmt.Sprintf("Cliente ID: %d, Pago ID: %d", clientID, paymentID)
	h.audit.Dispatch(ev)

	flash.Success(c, "Registro guardado correctamente.")
	redirectTo(c, "/registrar")
}

// Consulta is the search page with pagination, reachable by every role.
func (h *Handlers) Consulta(c *gin.Context) {
	query := c.Query("query")
	page := pageParam(c)

	rows := h.store.SearchPayments(query)
	pageRows, totalPages := paginate(rows, page, RecordsPerPage)

	h.render(c, http.StatusOK, "consulta.html", gin.H{
		"Resultados": pageRows,
		"Headers":    append([]string{"ID"}, Headers...),
		"Page":       page,
		"TotalPages": totalPages,
		"Query":      query,
	})
}

// ShowEditPayment renders the edit form for one payment.
func (h *Handlers) ShowEditPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		redirectTo(c, "/consulta")
		return
	}

	row, err := h.store.GetPayment(id)
	if err != nil {
		flash.Error(c, "Error: No se encontró el registro para editar.")
		redirectTo(c, "/consulta")
		return
	}

	h.render(c, http.StatusOK, "editar.html", gin.H{
		"Data":  row,
		"ID":    id,
		"Query": c.Query("query"),
	})
}

// EditPayment applies the edited fields to an existing payment.
func (h *Handlers) EditPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		redirectTo(c, "/consulta")
		return
	}
	query := c.PostForm("query")

	date, err := parseDate(c.PostForm("fecha"))
	if err != nil {
		flash.Error(c, "El formato de la fecha es incorrecto. Por favor, usa AAAA-MM-DD.")
		redirectTo(c, editURL(id, query))
		return
	}
	payment, err := paymentFromForm(c, date)
	if err != nil {
		flash.Error(c, "El monto de la cuota no es válido.")
		redirectTo(c, editURL(id, query))
		return
	}

	if err := h.store.UpdatePayment(id, payment); err != nil {
		h.flashStoreError(c, err)
		redirectTo(c, consultaURL(query))
		return
	}

	ev := h.auditEvent(c, models.ActionEditPayment)
	ev.AffectedTable = "pagos"
	ev.AffectedRowID = &id
	h.audit.Dispatch(ev)

	flash.Success(c, "Pago actualizado correctamente.")
	redirectTo(c, consultaURL(query))
}

// ShowRenewPayment renders the renewal form, prefilled from the original
// payment.
func (h *Handlers) ShowRenewPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		redirectTo(c, "/consulta")
		return
	}

	row, err := h.store.GetPayment(id)
	if err != nil {
		flash.Error(c, "Error: No se encontró el registro original.")
		redirectTo(c, "/consulta")
		return
	}

	h.render(c, http.StatusOK, "actualizar_pago.html", gin.H{
		"Data":  row,
		"ID":    id,
		"Query": c.Query("query"),
	})
}

// RenewPayment creates a new payment that copies specialty, modality and
// advisor from the original, with today's date and the submitted amount and
// operation number.
func (h *Handlers) RenewPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		redirectTo(c, "/consulta")
		return
	}
	query := c.PostForm("query")

	original, err := h.store.GetPayment(id)
	if err != nil {
		flash.Error(c, "Error: No se encontró el registro original.")
		redirectTo(c, consultaURL(query))
		return
	}

	payment, err := paymentFromForm(c, time.Now())
	if err != nil {
		flash.Error(c, "El monto de la cuota no es válido.")
		redirectTo(c, renewURL(id, query))
		return
	}
	payment.Specialty = original.Specialty
	payment.Modality = original.Modality
	payment.Advisor = original.Advisor

	paymentID, err := h.store.CreatePayment(original.ClientID, payment)
	if err == store.ErrDuplicate {
		flash.Error(c, "Error: El N° de Operación ingresado ya existe en otro registro. Por favor, verifícalo.")
		redirectTo(c, renewURL(id, query))
		return
	}
	if err != nil {
		flash.Error(c, fmt.Sprintf("Error al procesar el pago: %v", err))
		redirectTo(c, consultaURL(query))
		return
	}

	ev := h.auditEvent(c, models.ActionRenewPayment)
	ev.AffectedTable = "pagos"
	ev.AffectedRowID = &paymentID
	ev.Detail = fmt.Sprintf("Cliente ID: %d, Pago ID: %d (RENOVACIÓN)", original.ClientID, paymentID)
	h.audit.Dispatch(ev)

	flash.Success(c, "Renovación de pago registrada exitosamente.")
	redirectTo(c, consultaURL(query))
}

// DeletePayment removes a payment permanently.
func (h *Handlers) DeletePayment(c *gin.Context) {
	query := c.PostForm("query")
	id, err := strconv.ParseUint(c.PostForm("id"), 10, 32)
	if err != nil {
		flash.Error(c, "Error: Identificador de pago inválido.")
		redirectTo(c, consultaURL(query))
		return
	}
	paymentID := uint(id)

	affected, err := h.store.DeletePayment(paymentID)
	if err != nil {
		flash.Error(c, fmt.Sprintf("Error de base de datos al eliminar el pago: %v", err))
		redirectTo(c, consultaURL(query))
		return
	}
	if affected == 0 {
		flash.Error(c, "Error: No se encontró el registro de pago para eliminar.")
		redirectTo(c, consultaURL(query))
		return
	}

	ev := h.auditEvent(c, models.ActionDeletePayment)
	ev.AffectedTable = "pagos"
	ev.AffectedRowID = &paymentID
	h.audit.Dispatch(ev)

	flash.Success(c, fmt.Sprintf("Registro de pago ID: %d eliminado permanentemente.", paymentID))
	redirectTo(c, consultaURL(query))
}

// paymentFromForm reads the payment fields shared by the registration, edit
// and renewal forms.
func paymentFromForm(c *gin.Context, date time.Time) (store.PaymentInput, error) {
	amount, err := strconv.ParseFloat(c.PostForm("cuota"), 64)
	if err != nil {
		return store.PaymentInput{}, err
	}
	return store.PaymentInput{
		Date:            date,
		Amount:          amount,
		InstallmentType: c.PostForm("tipo_cuota"),
		Bank:            c.PostForm("banco"),
		Destination:     c.PostForm("destino"),
		OperationNumber: c.PostForm("num_operacion"),
		Specialty:       c.PostForm("especialidad"),
		Modality:        c.PostForm("modalidad"),
		Advisor:         c.PostForm("asesor"),
	}, nil
}

// flashStoreError distinguishes duplicate-key conflicts from generic store
// failures, since the user gets a more specific message for the former.
func (h *Handlers) flashStoreError(c *gin.Context, err error) {
	if err == store.ErrDuplicate {
		flash.Error(c, "Error: El DNI, correo o N° de Operación ingresado ya existe en otro registro.")
		return
	}
	flash.Error(c, fmt.Sprintf("Error al guardar el registro: %v", err))
}

func consultaURL(query string) string {
	if query == "" {
		return "/consulta"
	}
	return "/consulta?query=" + url.QueryEscape(query)
}

func editURL(id uint, query string) string {
	return fmt.Sprintf("/editar/%d?query=%s", id, url.QueryEscape(query))
}

func renewURL(id uint, query string) string {
	return fmt.Sprintf("/actualizar_pago/%d?query=%s", id, url.QueryEscape(query))
}
