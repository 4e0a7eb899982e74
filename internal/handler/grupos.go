package handler

import (
	"net/http"

	"negocioapp/internal/dto"
	"negocioapp/internal/service"

	"github.com/gin-gonic/gin"
)

type GruposHandler struct{ svc service.GrupoService }

func NewGruposHandler(svc service.GrupoService) *GruposHandler {
	return &GruposHandler{svc: svc}
}

// Crear POST /v1/grupos
func (h *GruposHandler) Crear(c *gin.Context) {
	var req dto.GrupoRequest
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

// Listar GET /v1/grupos
func (h *GruposHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar PUT /v1/grupos/:id
// A new price is copied to every member product.
func (h *GruposHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.GrupoRequest
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

// Eliminar DELETE /v1/grupos/:id
// Members stay in the catalog with their last price.
func (h *GruposHandler) Eliminar(c *gin.Context) {
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
