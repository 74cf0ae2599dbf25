package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the Postgres connection from DB_URL and exits the process
// when the database is unreachable. TranslateError is enabled so unique
// violations surface as gorm.ErrDuplicatedKey instead of driver errors.
func ConnectDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		slog.Error("variable de entorno DB_URL no establecida")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		slog.Error("error de conexión a la base de datos", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("conexión a la base de datos establecida")
}
