package models

// Client statuses. Clients are never hard-deleted, only toggled.
const (
	ClientActive   = "activo"
	ClientInactive = "inactivo"
)

// Client represents a person that has paid for at least one course.
type Client struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"column:nombre;not null"`
	DNI    string `json:"dni" gorm:"column:dni;unique;not null"`
	Email  string `json:"email" gorm:"column:correo;unique"`
	Phone  string `json:"phone" gorm:"column:celular"`
	Gender string `json:"gender" gorm:"column:genero"`
	Status string `json:"status" gorm:"column:estado;default:activo"`

	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:ClientID"`
}

func (Client) TableName() string { return "clientes" }
