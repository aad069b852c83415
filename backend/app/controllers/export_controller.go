package controllers

import (
	"fmt"
	"net/http"

	"team-attendance/backend/app/apperr"
	"team-attendance/backend/app/services"
)

type ExportController struct{ Export *services.ExportService }

func NewExportController(export *services.ExportService) *ExportController {
	return &ExportController{Export: export}
}

func (c *ExportController) CSV(w http.ResponseWriter, r *http.Request) {
	body, filename, err := c.Export.Render()
	if err != nil {
		apperr.Write(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(body)
}
