package handler

import (
	"net/http"
	"strconv"

	"negocioapp/internal/apierror"
	"negocioapp/internal/dto"
	"negocioapp/internal/service"

	"github.com/gin-gonic/gin"
)

// CarritosHandler drives the register screen. Carts live in memory until
// they are charged or discarded.
type CarritosHandler struct{ svc service.CarritoService }

func NewCarritosHandler(svc service.CarritoService) *CarritosHandler {
	return &CarritosHandler{svc: svc}
}

// lineaID reads the product id of a cart line. Provisional lines carry
// negative ids, so only zero is rejected.
func lineaID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("producto_id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID de producto inválido"))
		return 0, false
	}
	return id, true
}

func (h *CarritosHandler) responder(c *gin.Context, resp *dto.CarritoResponse, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear POST /v1/carritos
func (h *CarritosHandler) Crear(c *gin.Context) {
	c.JSON(http.StatusCreated, h.svc.Crear(c.Request.Context()))
}

// Obtener GET /v1/carritos/:id
func (h *CarritosHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("id"))
	h.responder(c, resp, err)
}

// Descartar DELETE /v1/carritos/:id
func (h *CarritosHandler) Descartar(c *gin.Context) {
	if err := h.svc.Descartar(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Buscar POST /v1/carritos/:id/busqueda
// Accepts "3*pan" style input from the search box.
func (h *CarritosHandler) Buscar(c *gin.Context) {
	var req dto.BusquedaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarLinea POST /v1/carritos/:id/lineas
func (h *CarritosHandler) AgregarLinea(c *gin.Context) {
	var req dto.AgregarLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarProducto(c.Request.Context(), c.Param("id"), req)
	h.responder(c, resp, err)
}

// AgregarProvisional POST /v1/carritos/:id/lineas/provisional
func (h *CarritosHandler) AgregarProvisional(c *gin.Context) {
	var req dto.ProvisionalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarProvisional(c.Request.Context(), c.Param("id"), req)
	h.responder(c, resp, err)
}

// AgregarPorAtajo POST /v1/carritos/:id/atajos/:tecla
func (h *CarritosHandler) AgregarPorAtajo(c *gin.Context) {
	resp, err := h.svc.AgregarPorAtajo(c.Request.Context(), c.Param("id"), c.Param("tecla"))
	h.responder(c, resp, err)
}

// Ajustar PATCH /v1/carritos/:id/lineas/:producto_id
func (h *CarritosHandler) Ajustar(c *gin.Context) {
	productoID, ok := lineaID(c)
	if !ok {
		return
	}
	var req dto.AjustarLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Ajustar(c.Request.Context(), c.Param("id"), productoID, req)
	h.responder(c, resp, err)
}

// Quitar DELETE /v1/carritos/:id/lineas/:producto_id
func (h *CarritosHandler) Quitar(c *gin.Context) {
	productoID, ok := lineaID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Quitar(c.Request.Context(), c.Param("id"), productoID)
	h.responder(c, resp, err)
}

// IniciarCobro POST /v1/carritos/:id/cobro/iniciar
func (h *CarritosHandler) IniciarCobro(c *gin.Context) {
	resp, err := h.svc.IniciarCobro(c.Request.Context(), c.Param("id"))
	h.responder(c, resp, err)
}

// CancelarCobro POST /v1/carritos/:id/cobro/cancelar
func (h *CarritosHandler) CancelarCobro(c *gin.Context) {
	resp, err := h.svc.CancelarCobro(c.Request.Context(), c.Param("id"))
	h.responder(c, resp, err)
}

// Cobrar POST /v1/carritos/:id/cobro
func (h *CarritosHandler) Cobrar(c *gin.Context) {
	var req dto.CobroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cobrar(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
