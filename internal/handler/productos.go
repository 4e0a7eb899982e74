package handler

import (
	"net/http"
	"strings"

	"negocioapp/internal/apierror"
	"negocioapp/internal/dto"
	"negocioapp/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Crear POST /v1/productos
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar GET /v1/productos?nombre=&categoria_id=&grupo_id=
func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Buscar GET /v1/productos/buscar?q=
// Resolves a term by barcode, id or name. A single match comes back as
// "exacta"; several as "multiple" so the UI can offer a picker.
func (h *ProductosHandler) Buscar(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro q requerido"))
		return
	}
	resp, err := h.svc.ResolverTermino(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarPorCodigoProveedor GET /v1/productos/buscar-codigo-proveedor?codigo=
func (h *ProductosHandler) BuscarPorCodigoProveedor(c *gin.Context) {
	codigo := strings.TrimSpace(c.Query("codigo"))
	if codigo == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro codigo requerido"))
		return
	}
	resp, err := h.svc.BuscarPorCodigoProveedor(c.Request.Context(), codigo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarAccesoRapido GET /v1/productos/acceso-rapido
func (h *ProductosHandler) ListarAccesoRapido(c *gin.Context) {
	resp, err := h.svc.ListarAccesoRapido(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarAccesoRapido PUT /v1/productos/:id/acceso-rapido
func (h *ProductosHandler) ActualizarAccesoRapido(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AccesoRapidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarAccesoRapido(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtajoDisponible GET /v1/atajos/:tecla/disponible
func (h *ProductosHandler) AtajoDisponible(c *gin.Context) {
	resp, err := h.svc.AtajoDisponible(c.Request.Context(), c.Param("tecla"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorAtajo GET /v1/atajos/:tecla
func (h *ProductosHandler) ObtenerPorAtajo(c *gin.Context) {
	resp, err := h.svc.ObtenerPorAtajo(c.Request.Context(), c.Param("tecla"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Barcodes ─────────────────────────────────────────────────────────────────

// ListarCodigosBarras GET /v1/productos/:id/codigos-barras
func (h *ProductosHandler) ListarCodigosBarras(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarCodigosBarras(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarTodosCodigosBarras GET /v1/codigos-barras
func (h *ProductosHandler) ListarTodosCodigosBarras(c *gin.Context) {
	resp, err := h.svc.ListarTodosCodigosBarras(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarCodigoBarras POST /v1/codigos-barras
// Re-adding a code the product already owns answers 200 with ya_asignado.
func (h *ProductosHandler) AgregarCodigoBarras(c *gin.Context) {
	var req dto.CodigoBarrasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarCodigoBarras(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if resp.YaAsignado {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

// ActualizarCodigoBarras PUT /v1/codigos-barras/:id
func (h *ProductosHandler) ActualizarCodigoBarras(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CodigoBarrasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCodigoBarras(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarCodigoBarras DELETE /v1/codigos-barras/:id
func (h *ProductosHandler) EliminarCodigoBarras(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarCodigoBarras(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
