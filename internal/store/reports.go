package store

import (
	"log/slog"
	"time"
)

// DashboardStats are the headline numbers of the main panel.
type DashboardStats struct {
	PaymentsToday int64   `json:"paymentsToday"`
	IncomeToday   float64 `json:"incomeToday"`
	IncomeMonth   float64 `json:"incomeMonth"`
}

// AdvisorTotal is one row of the sales report, aggregated per advisor.
type AdvisorTotal struct {
	Advisor  string  `json:"advisor" gorm:"column:asesor"`
	Payments int64   `json:"payments" gorm:"column:registros_asesor"`
	Total    float64 `json:"total" gorm:"column:total_asesor"`
}

// Stats computes today's payment count, today's income and the current
// month's income. Any failure degrades to zeroes so the dashboard still
// renders.
func (s *Store) Stats() DashboardStats {
	var stats DashboardStats

	err := s.db.Raw(`SELECT COUNT(*) FROM pagos WHERE fecha::date = CURRENT_DATE`).
		Scan(&stats.PaymentsToday).Error
	if err != nil {
		slog.Error("error en estadísticas del dashboard", "error", err)
		return DashboardStats{}
	}

	err = s.db.Raw(`SELECT COALESCE(SUM(cuota), 0) FROM pagos WHERE fecha::date = CURRENT_DATE`).
		Scan(&stats.IncomeToday).Error
	if err != nil {
		slog.Error("error en estadísticas del dashboard", "error", err)
		return DashboardStats{}
	}

	err = s.db.Raw(`SELECT COALESCE(SUM(cuota), 0) FROM pagos
		WHERE date_trunc('month', fecha) = date_trunc('month', CURRENT_DATE)`).
		Scan(&stats.IncomeMonth).Error
	if err != nil {
		slog.Error("error en estadísticas del dashboard", "error", err)
		return DashboardStats{}
	}

	return stats
}

// LatestPayments returns the most recent payment rows for the dashboard.
// Degrades to an empty slice on failure.
func (s *Store) LatestPayments(limit int) []PaymentRow {
	var rows []PaymentRow
	err := s.db.Table("pagos p").
		Select(paymentRowSelect).
		Joins("JOIN clientes c ON p.cliente_id = c.id").
		Order("p.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		slog.Error("error al listar últimos pagos", "error", err)
		return nil
	}
	return rows
}

// AdvisorReport aggregates payment count and amount per advisor, optionally
// bounded by an inclusive date range, ordered by total descending. Degrades
// to an empty slice on failure.
func (s *Store) AdvisorReport(start, end *time.Time) []AdvisorTotal {
	q := s.db.Table("pagos").
		Select(`asesor, COUNT(*) AS registros_asesor, SUM(cuota) AS total_asesor`)
	if start != nil {
		q = q.Where("fecha >= ?", *start)
	}
	if end != nil {
		q = q.Where("fecha <= ?", *end)
	}

	var report []AdvisorTotal
	err := q.Group("asesor").Order("total_asesor DESC").Scan(&report).Error
	if err != nil {
		slog.Error("error al generar reporte de asesores", "error", err)
		return nil
	}
	return report
}

// AllPaymentsForExport returns every payment joined with its client, oldest
// first, for the Excel download.
func (s *Store) AllPaymentsForExport() ([]PaymentRow, error) {
	var rows []PaymentRow
	err := s.db.Table("pagos p").
		Select(paymentRowSelect).
		Joins("JOIN clientes c ON p.cliente_id = c.id").
		Order("p.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}
