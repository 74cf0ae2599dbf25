package models

import "time"

// Audit action verbs.
const (
	ActionLoginOK          = "INICIO_SESION_EXITOSO"
	ActionLoginFailed      = "INICIO_SESION_FALLIDO"
	ActionLogout           = "CIERRE_SESION"
	ActionCreatePayment    = "CREAR_PAGO"
	ActionEditPayment      = "EDITAR_PAGO"
	ActionRenewPayment     = "RENOVAR_PAGO"
	ActionDeletePayment    = "ELIMINAR_PAGO_PERMANENTE"
	ActionDeactivateClient = "DESACTIVAR_CLIENTE"
	ActionReactivateClient = "REACTIVAR_CLIENTE"
)

// AuditLog is one append-only record of a user action.
type AuditLog struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Timestamp     time.Time `json:"timestamp" gorm:"column:timestamp"`
	Actor         string    `json:"actor" gorm:"column:usuario_app"`
	Action        string    `json:"action" gorm:"column:accion"`
	AffectedTable string    `json:"affectedTable" gorm:"column:tabla_afectada"`
	AffectedRowID *uint     `json:"affectedRowId" gorm:"column:registro_id"`
	Detail        string    `json:"detail" gorm:"column:detalles"`
	OriginIP      string    `json:"originIp" gorm:"column:ip_origen"`
}

func (AuditLog) TableName() string { return "auditoria_accesos" }
