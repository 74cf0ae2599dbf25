package routes

import (
	"github.com/Pho3nix-24/CENTRO-web/internal/config"
	"github.com/Pho3nix-24/CENTRO-web/internal/handlers"
	"github.com/Pho3nix-24/CENTRO-web/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SetupRoutes wires every route with its authentication and role gates.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, cfg *config.Config, rdb *redis.Client) {
	// Public routes: only the login page lives outside the session check.
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)

	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(cfg.JWTSecret, rdb))
	{
		authed.GET("/logout", h.Logout)

		// Search and client views: every role, including atención al
		// cliente, which is restricted to this surface.
		authed.GET("/consulta", h.Consulta)
		authed.GET("/editar/:id", h.ShowEditPayment)
		authed.POST("/editar/:id", h.EditPayment)
		authed.GET("/cliente/:id", h.ClientProfile)

		// Google Sheets mirrors.
		authed.GET("/certificados", h.Certificados)
		authed.GET("/certificados/editar/:row_id", h.ShowEditCertificado)
		authed.POST("/certificados/editar/:row_id", h.EditCertificado)
		authed.GET("/diplomados", h.Diplomados)
		authed.GET("/diplomados/editar/:row_id", h.ShowEditDiplomado)
		authed.POST("/diplomados/editar/:row_id", h.EditDiplomado)

		// The dashboard redirects atención al cliente by itself, so it
		// stays outside the role group.
		authed.GET("/", h.Dashboard)
		authed.GET("/dashboard", h.Dashboard)

		manage := authed.Group("/")
		manage.Use(middleware.RequireRole(config.RoleAdmin, config.RoleEquipo))
		{
			manage.GET("/registrar", h.ShowRegister)
			manage.POST("/submit", h.Submit)
			manage.GET("/actualizar_pago/:id", h.ShowRenewPayment)
			manage.POST("/actualizar_pago/:id", h.RenewPayment)
			manage.POST("/desactivar_cliente", h.DeactivateClient)
			manage.POST("/reactivar_cliente", h.ReactivateClient)
			manage.POST("/eliminar_pago", h.DeletePayment)
			manage.GET("/reportes", h.Reports)
			manage.GET("/descargar", h.Download)
		}

		admin := authed.Group("/")
		admin.Use(middleware.RequireRole(config.RoleAdmin))
		{
			admin.GET("/auditoria", h.Auditoria)
		}
	}

	r.Static("/static", "./static")
	r.StaticFile("/favicon.ico", "./static/images/icon.png")
}
