package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Pho3nix-24/CENTRO-web/internal/flash"
	"github.com/Pho3nix-24/CENTRO-web/internal/sheets"

	"github.com/gin-gonic/gin"
)

// Certificados lists the certificates form responses.
func (h *Handlers) Certificados(c *gin.Context) {
	h.sheetList(c, h.certificados, "certificados.html", "Certificados")
}

// ShowEditCertificado renders the edit form for one certificate row.
func (h *Handlers) ShowEditCertificado(c *gin.Context) {
	h.showSheetEdit(c, h.certificados, "editar_certificado.html", "/certificados")
}

// EditCertificado writes the edited certificate row back to the sheet.
func (h *Handlers) EditCertificado(c *gin.Context) {
	h.sheetEdit(c, h.certificados, "/certificados", "Registro actualizado correctamente en Google Sheets.")
}

// Diplomados lists the diplomas form responses.
func (h *Handlers) Diplomados(c *gin.Context) {
	h.sheetList(c, h.diplomados, "diplomados.html", "Diplomados")
}

// ShowEditDiplomado renders the edit form for one diploma row.
func (h *Handlers) ShowEditDiplomado(c *gin.Context) {
	h.showSheetEdit(c, h.diplomados, "editar_diplomado.html", "/diplomados")
}

// EditDiplomado writes the edited diploma row back to the sheet.
func (h *Handlers) EditDiplomado(c *gin.Context) {
	h.sheetEdit(c, h.diplomados, "/diplomados", "Registro de diplomado actualizado correctamente.")
}

// sheetList is the shared listing flow: fetch through the cache, filter by
// the query, slice one page of twenty.
func (h *Handlers) sheetList(c *gin.Context, sheet *sheets.Sheet, template, title string) {
	query := c.Query("query")
	page := pageParam(c)

	records := sheets.Filter(sheet.Fetch(), query)
	pageRecords, totalPages := paginate(records, page, RecordsPerPageSheets)

	h.render(c, http.StatusOK, template, gin.H{
		"Title":      title,
		"Registros":  pageRecords,
		"Page":       page,
		"TotalPages": totalPages,
		"Query":      query,
	})
}

func (h *Handlers) showSheetEdit(c *gin.Context, sheet *sheets.Sheet, template, listPath string) {
	rowID, err := strconv.Atoi(c.Param("row_id"))
	if err != nil {
		redirectTo(c, listPath)
		return
	}

	record, ok := sheet.Find(rowID)
	if !ok {
		flash.Error(c, "Error: No se encontró el registro para editar.")
		redirectTo(c, listPath)
		return
	}

	h.render(c, http.StatusOK, template, gin.H{
		"Registro": record.Fields,
		"RowID":    rowID,
	})
}

// sheetEdit posts the form values to the source row. Unlike reads, a failed
// write surfaces to the user: they must know whether the edit landed.
func (h *Handlers) sheetEdit(c *gin.Context, sheet *sheets.Sheet, listPath, successMsg string) {
	rowID, err := strconv.Atoi(c.Param("row_id"))
	if err != nil {
		redirectTo(c, listPath)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		flash.Error(c, fmt.Sprintf("Error al actualizar el registro: %v", err))
		redirectTo(c, listPath)
		return
	}
	fields := make(map[string]string, len(c.Request.PostForm))
	for key := range c.Request.PostForm {
		fields[key] = c.Request.PostForm.Get(key)
	}

	if err := sheet.Update(rowID, fields); err != nil {
		flash.Error(c, fmt.Sprintf("Error al actualizar el registro: %v", err))
		redirectTo(c, listPath)
		return
	}

	flash.Success(c, successMsg)
	redirectTo(c, listPath)
}
