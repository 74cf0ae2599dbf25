package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Role identifies one of the three application roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEquipo   Role = "equipo"
	RoleAtencion Role = "atencion_cliente"
)

// In reports whether the role is one of the given roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

func (r Role) valid() bool {
	return r.In(RoleAdmin, RoleEquipo, RoleAtencion)
}

// User is one entry of the credential table. Passwords are stored as bcrypt
// hashes, never in clear text.
type User struct {
	PasswordHash string `json:"password_hash"`
	FullName     string `json:"full_name"`
	Role         Role   `json:"role"`
}

// Config holds everything the server needs at startup.
type Config struct {
	ServerPort      string
	JWTSecret       []byte
	CredentialsFile string
	CertificadosID  string
	DiplomadosID    string
	WorksheetName   string
	Users           map[string]User
}

// Load reads the environment and the credential table. It returns an error
// instead of exiting so main decides what is fatal.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		JWTSecret:       []byte(getEnv("JWT_SECRET", "")),
		CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		CertificadosID:  os.Getenv("CERTIFICADOS_SHEET_ID"),
		DiplomadosID:    os.Getenv("DIPLOMADOS_SHEET_ID"),
		WorksheetName:   getEnv("SHEETS_WORKSHEET", "Form Responses 1"),
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET no establecida")
	}

	usersFile := getEnv("USERS_FILE", "users.json")
	users, err := LoadUsers(usersFile)
	if err != nil {
		return nil, fmt.Errorf("tabla de usuarios: %w", err)
	}
	cfg.Users = users

	return cfg, nil
}

// LoadUsers reads and validates the credential table from a JSON file keyed
// by username.
func LoadUsers(path string) (map[string]User, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var users map[string]User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("formato inválido en %s: %w", path, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%s no define ningún usuario", path)
	}

	for name, u := range users {
		if u.PasswordHash == "" {
			return nil, fmt.Errorf("usuario %q sin password_hash", name)
		}
		if u.FullName == "" {
			return nil, fmt.Errorf("usuario %q sin full_name", name)
		}
		if !u.Role.valid() {
			return nil, fmt.Errorf("usuario %q con rol desconocido %q", name, u.Role)
		}
	}

	return users, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
