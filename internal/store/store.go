// Package store contains all database access for clients, payments and the
// audit trail. Every mutating method is its own unit of atomicity: it either
// commits or leaves nothing behind.
package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrDuplicate marks a unique-constraint violation (DNI, correo or
	// número de operación already registered). Callers show a specific
	// message for it instead of the generic database error.
	ErrDuplicate = errors.New("registro duplicado")

	// ErrNotFound marks a lookup for a row that does not exist.
	ErrNotFound = errors.New("registro no encontrado")
)

// Store wraps the GORM handle. It is constructed once in main and injected
// into the handler set.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// translate maps GORM errors to the store's sentinel errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
