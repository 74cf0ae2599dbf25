package models

import "time"

// Payment is one installment registered for a client. OperationNumber is the
// bank operation reference and must be unique across all payments.
type Payment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ClientID        uint      `json:"clientId" gorm:"column:cliente_id;not null"`
	Date            time.Time `json:"date" gorm:"column:fecha"`
	Amount          float64   `json:"amount" gorm:"column:cuota;type:numeric(12,2)"`
	InstallmentType string    `json:"installmentType" gorm:"column:tipo_de_cuota"`
	Bank            string    `json:"bank" gorm:"column:banco"`
	Destination     string    `json:"destination" gorm:"column:destino"`
	OperationNumber string    `json:"operationNumber" gorm:"column:numero_operacion;unique"`
	Specialty       string    `json:"specialty" gorm:"column:especialidad"`
	Modality        string    `json:"modality" gorm:"column:modalidad"`
	Advisor         string    `json:"advisor" gorm:"column:asesor"`

	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

func (Payment) TableName() string { return "pagos" }
