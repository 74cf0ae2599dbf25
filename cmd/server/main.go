package main

import (
	"context"
	"html/template"
	"log/slog"
	"os"

	"github.com/Pho3nix-24/CENTRO-web/internal/audit"
	"github.com/Pho3nix-24/CENTRO-web/internal/config"
	"github.com/Pho3nix-24/CENTRO-web/internal/handlers"
	"github.com/Pho3nix-24/CENTRO-web/internal/models"
	"github.com/Pho3nix-24/CENTRO-web/internal/routes"
	"github.com/Pho3nix-24/CENTRO-web/internal/sheets"
	"github.com/Pho3nix-24/CENTRO-web/internal/store"
	"github.com/Pho3nix-24/CENTRO-web/internal/throttle"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("archivo .env no encontrado, usando variables de entorno")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuración inválida", "error", err)
		os.Exit(1)
	}

	config.ConnectDB()
	if err := config.DB.AutoMigrate(&models.Client{}, &models.Payment{}, &models.AuditLog{}); err != nil {
		slog.Error("error al migrar el esquema", "error", err)
		os.Exit(1)
	}
	config.ConnectRedis()

	// The sheets client degrades to nil: listing pages render empty until
	// credentials are fixed, but the rest of the app keeps working.
	var api sheets.ValuesAPI
	if svc, err := sheets.NewService(context.Background(), cfg.CredentialsFile); err != nil {
		slog.Error("no se pudo inicializar el cliente de Google Sheets", "error", err)
	} else {
		api = svc
	}
	certificados := sheets.NewSheet(api, cfg.CertificadosID, cfg.WorksheetName, "certificados")
	diplomados := sheets.NewSheet(api, cfg.DiplomadosID, cfg.WorksheetName, "diplomados")

	st := store.New(config.DB)
	tracker := throttle.New()
	dispatcher := audit.NewDispatcher(st)
	defer dispatcher.Close()

	h := handlers.New(cfg, st, tracker, dispatcher, certificados, diplomados, config.RDB)

	r := gin.Default()
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	})
	r.LoadHTMLGlob("templates/*.html")
	routes.SetupRoutes(r, h, cfg, config.RDB)

	slog.Info("servidor iniciado", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("el servidor terminó con error", "error", err)
		os.Exit(1)
	}
}
