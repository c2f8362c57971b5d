package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/assets"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/middleware"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/rate_limiter"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type assetSource interface {
	FindForReport(filter assets.Filter) ([]models.Asset, error)
}

// ReportHandler streams generated report files. Both endpoints accept the
// same query filter as the asset listing, so what the report contains is
// exactly what a filtered listing shows.
type ReportHandler struct {
	Assets assetSource
}

func (h *ReportHandler) RegisterRoutes(router *gin.Engine, limiter *rate_limiter.RateLimiter) {
	group := router.Group("/reports")
	group.Use(middleware.RateLimitMiddleware(limiter))
	group.GET("/pdf", h.GeneratePDFReport)
	group.GET("/excel", h.GenerateExcelReport)
}

func (h *ReportHandler) GeneratePDFReport(c *gin.Context) {
	h.generate(c, "pdf", pdfContentType, GeneratePDF)
}

func (h *ReportHandler) GenerateExcelReport(c *gin.Context) {
	h.generate(c, "xlsx", xlsxContentType, GenerateExcel)
}

func (h *ReportHandler) generate(c *gin.Context, ext string, contentType string, render func(assets.Filter, []models.Asset) ([]byte, error)) {
	filter, err := assets.FilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.Assets.FindForReport(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to select report data", "details": err.Error()})
		return
	}

	content, err := render(filter, list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to generate report", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", ReportFileName(ext)))
	c.Data(http.StatusOK, contentType, content)
}
