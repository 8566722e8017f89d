package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/reports"
	"github.com/yeremiapane/reservation-app/utils"
)

type ReportController struct {
	generator *reports.Generator
}

func NewReportController(db *gorm.DB, dir string) *ReportController {
	return &ReportController{generator: reports.NewGenerator(db, dir)}
}

// DownloadReport -> regenerate the report of the requested kind
// (flat | grouped | chart) and stream it as a PDF attachment.
func (rc *ReportController) DownloadReport(c *gin.Context) {
	kind, err := reports.ParseKind(c.Param("kind"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid report type selected."))
		return
	}

	path, err := rc.generator.Generate(kind)
	if err != nil {
		utils.ErrorLogger.Printf("Error while generating %s report: %v", kind, err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Error while generating report"))
		return
	}

	c.FileAttachment(path, reports.FileName(kind))
}
