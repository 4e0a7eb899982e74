package handler

import (
	"net/http"

	"negocioapp/internal/dto"
	"negocioapp/internal/service"

	"github.com/gin-gonic/gin"
)

type DatosHandler struct{ svc service.DatosService }

func NewDatosHandler(svc service.DatosService) *DatosHandler {
	return &DatosHandler{svc: svc}
}

// ExportarProductos GET /v1/exportar/productos
func (h *DatosHandler) ExportarProductos(c *gin.Context) {
	resp, err := h.svc.ExportarProductos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="productos.json"`)
	c.JSON(http.StatusOK, resp)
}

// Respaldar POST /v1/respaldos
func (h *DatosHandler) Respaldar(c *gin.Context) {
	var req dto.RespaldoRequest
	// An empty body means "use the default location".
	if c.Request.ContentLength != 0 && !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Respaldar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
