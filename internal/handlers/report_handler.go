package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Pho3nix-24/CENTRO-web/internal/flash"
	"github.com/Pho3nix-24/CENTRO-web/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// Reports renders the per-advisor sales report, optionally bounded by an
// inclusive date range.
func (h *Handlers) Reports(c *gin.Context) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	page := pageParam(c)

	var start, end *time.Time
	if startStr != "" {
		t, err := parseDate(startStr)
		if err != nil {
			flash.Error(c, "El formato de la fecha de inicio es incorrecto. Por favor, usa AAAA-MM-DD.")
			redirectTo(c, "/reportes")
			return
		}
		start = &t
	}
	if endStr != "" {
		t, err := parseDate(endStr)
		if err != nil {
			flash.Error(c, "El formato de la fecha de fin es incorrecto. Por favor, usa AAAA-MM-DD.")
			redirectTo(c, "/reportes")
			return
		}
		end = &t
	}

	report := h.store.AdvisorReport(start, end)
	pageRows, totalPages := paginate(report, page, RecordsPerPage)

	var totalVentas, pageVentas float64
	var totalRegistros, pageRegistros int64
	for _, row := range report {
		totalVentas += row.Total
		totalRegistros += row.Payments
	}
	for _, row := range pageRows {
		pageVentas += row.Total
		pageRegistros += row.Payments
	}

	h.render(c, http.StatusOK, "reportes.html", gin.H{
		"Reporte":            pageRows,
		"TotalVentas":        totalVentas,
		"TotalRegistros":     totalRegistros,
		"PageTotalVentas":    pageVentas,
		"PageTotalRegistros": pageRegistros,
		"StartDate":          startStr,
		"EndDate":            endStr,
		"Page":               page,
		"TotalPages":         totalPages,
	})
}

// Download streams every registered payment as an Excel workbook.
func (h *Handlers) Download(c *gin.Context) {
	rows, err := h.store.AllPaymentsForExport()
	if err != nil {
		flash.Error(c, fmt.Sprintf("Error al generar el archivo Excel: %v", err))
		redirectTo(c, "/")
		return
	}

	f, err := buildExportWorkbook(rows)
	if err != nil {
		flash.Error(c, "Error al generar el archivo Excel.")
		redirectTo(c, "/")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=registros_db.xlsx")
	if err := f.Write(c.Writer); err != nil {
		flash.Error(c, "Error al generar el archivo Excel.")
		redirectTo(c, "/")
	}
}

// buildExportWorkbook lays the joined rows out under the shared header
// columns. Zero dates are left blank instead of rendering a bogus value.
func buildExportWorkbook(rows []store.PaymentRow) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheetName = "Registros"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	columns := append([]string{"ID"}, Headers...)
	for i, header := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for i, row := range rows {
		date := ""
		if !row.Date.IsZero() {
			date = row.Date.Format("2006-01-02")
		}
		values := []interface{}{
			row.ID, date, row.ClientName, row.Phone, row.Specialty, row.Modality,
			row.Amount, row.InstallmentType, row.Bank, row.Destination,
			row.OperationNumber, row.DNI, row.Email, row.Gender, row.Advisor,
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}
	return f, nil
}
