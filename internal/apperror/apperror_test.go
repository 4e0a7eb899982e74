package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"negocioapp/internal/apperror"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(apperror.Validation("nombre requerido")))
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(apperror.Conflict("duplicado %d", 1)))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(apperror.NotFound("no existe")))
	assert.Equal(t, apperror.KindUnknown, apperror.KindOf(errors.New("plain")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("contexto: %w", apperror.Conflict("código 123 ya asignado"))
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, "código 123 ya asignado", apperror.Message(err))
}

func TestStoreWrapsCauseButHidesIt(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := apperror.Store("guardar venta", cause)

	assert.True(t, apperror.Is(err, apperror.KindStore))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "error al guardar venta", apperror.Message(err))
	assert.Nil(t, apperror.Store("x", nil))
}

func TestStoreKeepsExistingKind(t *testing.T) {
	nf := apperror.NotFound("producto 9 no encontrado")
	assert.Same(t, nf, apperror.Store("leer producto", nf))
}
