package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"negocioapp/internal/dto"
	"negocioapp/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Ventas GET /v1/reportes/ventas?desde=&hasta=
func (h *ReportesHandler) Ventas(c *gin.Context) {
	var filtro dto.RangoFilter
	if !bindQuery(c, &filtro) {
		return
	}
	resp, err := h.svc.Generar(c.Request.Context(), filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VentasPDF GET /v1/reportes/ventas/pdf?desde=&hasta=
func (h *ReportesHandler) VentasPDF(c *gin.Context) {
	var filtro dto.RangoFilter
	if !bindQuery(c, &filtro) {
		return
	}
	var buf bytes.Buffer
	if err := h.svc.EscribirPDF(c.Request.Context(), &buf, filtro); err != nil {
		respondError(c, err)
		return
	}
	nombre := fmt.Sprintf("ventas-%s-%s.pdf", filtro.Desde, filtro.Hasta)
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
