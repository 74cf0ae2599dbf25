// Package handlers orchestrates the web surface: each handler authenticates
// via the session middleware, invokes one store or sheet operation, queues
// one audit event on state-changing success and renders or redirects.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Pho3nix-24/CENTRO-web/internal/audit"
	"github.com/Pho3nix-24/CENTRO-web/internal/config"
	"github.com/Pho3nix-24/CENTRO-web/internal/flash"
	"github.com/Pho3nix-24/CENTRO-web/internal/middleware"
	"github.com/Pho3nix-24/CENTRO-web/internal/sheets"
	"github.com/Pho3nix-24/CENTRO-web/internal/store"
	"github.com/Pho3nix-24/CENTRO-web/internal/throttle"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Headers is the column order shared by the listing page and the Excel
// export, matching the registration form.
var Headers = []string{
	"FECHA", "CLIENTE", "CELULAR", "ESPECIALIDAD", "MODALIDAD", "CUOTA",
	"TIPO DE CUOTA", "BANCO", "DESTINO", "N° OPERACIÓN", "DNI", "CORREO",
	"GÉNERO", "ASESOR",
}

// Handlers owns every dependency the routes need. Constructed once in main.
type Handlers struct {
	cfg          *config.Config
	store        *store.Store
	throttle     *throttle.Tracker
	audit        *audit.Dispatcher
	certificados *sheets.Sheet
	diplomados   *sheets.Sheet
	rdb          *redis.Client
}

func New(cfg *config.Config, st *store.Store, tr *throttle.Tracker, au *audit.Dispatcher,
	certificados, diplomados *sheets.Sheet, rdb *redis.Client) *Handlers {
	return &Handlers{
		cfg:          cfg,
		store:        st,
		throttle:     tr,
		audit:        au,
		certificados: certificados,
		diplomados:   diplomados,
		rdb:          rdb,
	}
}

// render injects the session identity and pending flash messages into every
// template.
func (h *Handlers) render(c *gin.Context, status int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	role := middleware.SessionRole(c)
	data["Flash"] = flash.Take(c)
	data["FullName"] = middleware.SessionFullName(c)
	data["Role"] = role
	data["IsAdmin"] = role == config.RoleAdmin
	data["CanManage"] = role.In(config.RoleAdmin, config.RoleEquipo)
	c.HTML(status, template, data)
}

// auditEvent fills the actor and origin fields from the request context.
func (h *Handlers) auditEvent(c *gin.Context, action string) audit.Event {
	return audit.Event{
		Actor:    middleware.SessionFullName(c),
		Action:   action,
		OriginIP: middleware.OriginIP(c),
	}
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func redirectTo(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// parseDate validates the AAAA-MM-DD form field.
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
