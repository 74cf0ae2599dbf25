package store

import (
	"log/slog"

	"github.com/Pho3nix-24/CENTRO-web/internal/models"

	"gorm.io/gorm"
)

// ClientInput carries the client fields of the registration form.
type ClientInput struct {
	Name   string
	DNI    string
	Email  string
	Phone  string
	Gender string
}

// FindOrCreateClient dedupes strictly by DNI. An existing inactive client is
// reactivated as a side effect; a missing one is inserted as active. The
// returned ID always references exactly one client row.
func (s *Store) FindOrCreateClient(in ClientInput) (uint, error) {
	var clientID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Client
		err := tx.Where("dni = ?", in.DNI).First(&existing).Error
		if err == nil {
			clientID = existing.ID
			if existing.Status == models.ClientInactive {
				return tx.Model(&existing).Update("estado", models.ClientActive).Error
			}
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		client := models.Client{
			Name:   in.Name,
			DNI:    in.DNI,
			Email:  in.Email,
			Phone:  in.Phone,
			Gender: in.Gender,
			Status: models.ClientActive,
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}
		clientID = client.ID
		return nil
	})
	return clientID, translate(err)
}

// SetClientStatus toggles a client between activo and inactivo. It never
// touches the client's payments.
func (s *Store) SetClientStatus(clientID uint, status string) error {
	res := s.db.Model(&models.Client{}).Where("id = ?", clientID).Update("estado", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetClient returns a single client by ID.
func (s *Store) GetClient(clientID uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, clientID).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

// PaymentsByClient lists a client's payment history, newest first. Degrades
// to an empty slice on failure so the profile page still renders.
func (s *Store) PaymentsByClient(clientID uint) []models.Payment {
	var payments []models.Payment
	err := s.db.Where("cliente_id = ?", clientID).Order("fecha DESC").Find(&payments).Error
	if err != nil {
		slog.Error("error al listar pagos del cliente", "error", err, "cliente_id", clientID)
		return nil
	}
	return payments
}
