package store

import (
	"log/slog"

	"github.com/Pho3nix-24/CENTRO-web/internal/models"
)

// AppendAudit inserts one audit record. The caller (the audit dispatcher)
// decides what to do with the error; business handlers never see it.
func (s *Store) AppendAudit(entry models.AuditLog) error {
	return translate(s.db.Create(&entry).Error)
}

// AuditEntries returns the full audit trail, newest first. Degrades to an
// empty slice on failure.
func (s *Store) AuditEntries() []models.AuditLog {
	var entries []models.AuditLog
	if err := s.db.Order("timestamp DESC").Find(&entries).Error; err != nil {
		slog.Error("error al leer la auditoría", "error", err)
		return nil
	}
	return entries
}
