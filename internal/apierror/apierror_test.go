package apierror_test

import (
	"errors"
	"net/http"
	"testing"

	"negocioapp/internal/apierror"
	"negocioapp/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		tipo   string
		detail string
	}{
		{apperror.Validation("cantidad inválida"), http.StatusUnprocessableEntity, "validation", "cantidad inválida"},
		{apperror.Conflict("ya existe"), http.StatusConflict, "conflict", "ya existe"},
		{apperror.NotFound("producto %d no encontrado", 7), http.StatusNotFound, "not_found", "producto 7 no encontrado"},
		{apperror.Store("guardar venta", errors.New("disk I/O error")), http.StatusInternalServerError, "store", "error al guardar venta"},
	}
	for _, tc := range cases {
		status, body, ok := apierror.FromError(tc.err)
		assert.True(t, ok)
		assert.Equal(t, tc.status, status)
		assert.Equal(t, tc.tipo, body.Tipo)
		assert.Equal(t, tc.detail, body.Detail)
	}
}

func TestFromError_SinTipoNoFiltraCausa(t *testing.T) {
	status, body, ok := apierror.FromError(errors.New("pq: password authentication failed"))
	assert.False(t, ok)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Error interno del servidor", body.Detail)
}
