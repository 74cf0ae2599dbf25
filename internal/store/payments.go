package store

import (
	"log/slog"
	"time"

	"github.com/Pho3nix-24/CENTRO-web/internal/models"
)

// PaymentInput carries the payment fields of the registration and edit forms.
type PaymentInput struct {
	Date            time.Time
	Amount          float64
	InstallmentType string
	Bank            string
	Destination     string
	OperationNumber string
	Specialty       string
	Modality        string
	Advisor         string
}

// PaymentRow is one payment joined with its client, in the column order the
// listing, edit and export views expect.
type PaymentRow struct {
	ID              uint      `json:"id"`
	Date            time.Time `json:"date" gorm:"column:fecha"`
	ClientName      string    `json:"clientName" gorm:"column:nombre"`
	Phone           string    `json:"phone" gorm:"column:celular"`
	Specialty       string    `json:"specialty" gorm:"column:especialidad"`
	Modality        string    `json:"modality" gorm:"column:modalidad"`
	Amount          float64   `json:"amount" gorm:"column:cuota"`
	InstallmentType string    `json:"installmentType" gorm:"column:tipo_de_cuota"`
	Bank            string    `json:"bank" gorm:"column:banco"`
	Destination     string    `json:"destination" gorm:"column:destino"`
	OperationNumber string    `json:"operationNumber" gorm:"column:numero_operacion"`
	DNI             string    `json:"dni" gorm:"column:dni"`
	Email           string    `json:"email" gorm:"column:correo"`
	Gender          string    `json:"gender" gorm:"column:genero"`
	Advisor         string    `json:"advisor" gorm:"column:asesor"`
	ClientID        uint      `json:"clientId" gorm:"column:cliente_id"`
	ClientStatus    string    `json:"clientStatus" gorm:"column:estado"`
}

const paymentRowSelect = `p.id, p.fecha, c.nombre, c.celular, p.especialidad, p.modalidad,
	p.cuota, p.tipo_de_cuota, p.banco, p.destino, p.numero_operacion,
	c.dni, c.correo, c.genero, p.asesor, c.id AS cliente_id, c.estado`

// CreatePayment inserts one payment for an already resolved client. A
// duplicate operation number returns ErrDuplicate and inserts nothing.
func (s *Store) CreatePayment(clientID uint, in PaymentInput) (uint, error) {
	payment := models.Payment{
		ClientID:        clientID,
		Date:            in.Date,
		Amount:          in.Amount,
		InstallmentType: in.InstallmentType,
		Bank:            in.Bank,
		Destination:     in.Destination,
		OperationNumber: in.OperationNumber,
		Specialty:       in.Specialty,
		Modality:        in.Modality,
		Advisor:         in.Advisor,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return 0, translate(err)
	}
	return payment.ID, nil
}

// SearchPayments joins payments with clients and matches DNI or name by
// substring. An empty query returns every row, newest first; the caller
// paginates. Degrades to an empty slice on failure.
func (s *Store) SearchPayments(query string) []PaymentRow {
	var rows []PaymentRow
	term := "%" + query + "%"
	err := s.db.Table("pagos p").
		Select(paymentRowSelect).
		Joins("JOIN clientes c ON p.cliente_id = c.id").
		Where("c.dni ILIKE ? OR c.nombre ILIKE ?", term, term).
		Order("p.id DESC").
		Scan(&rows).Error
	if err != nil {
		slog.Error("error al buscar pagos", "error", err, "query", query)
		return nil
	}
	return rows
}

// GetPayment returns one payment joined with its client data.
func (s *Store) GetPayment(paymentID uint) (*PaymentRow, error) {
	var row PaymentRow
	res := s.db.Table("pagos p").
		Select(paymentRowSelect).
		Joins("JOIN clientes c ON p.cliente_id = c.id").
		Where("p.id = ?", paymentID).
		Scan(&row)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &row, nil
}

// UpdatePayment overwrites the editable fields of an existing payment.
func (s *Store) UpdatePayment(paymentID uint, in PaymentInput) error {
	updates := map[string]interface{}{
		"fecha":            in.Date,
		"cuota":            in.Amount,
		"tipo_de_cuota":    in.InstallmentType,
		"banco":            in.Bank,
		"destino":          in.Destination,
		"numero_operacion": in.OperationNumber,
		"especialidad":     in.Specialty,
		"modalidad":        in.Modality,
		"asesor":           in.Advisor,
	}
	res := s.db.Model(&models.Payment{}).Where("id = ?", paymentID).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePayment removes a payment permanently. The owning client is not
// touched.
func (s *Store) DeletePayment(paymentID uint) (int64, error) {
	res := s.db.Delete(&models.Payment{}, paymentID)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}
