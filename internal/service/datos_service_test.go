package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"negocioapp/internal/apperror"
	"negocioapp/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatos_ExportarProductos(t *testing.T) {
	e := nuevoEntorno(t)
	e.producto(t, "Pan amasado", 1990, "111", "222")
	e.producto(t, "Leche entera", 1090)

	out, err := e.datos.ExportarProductos(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	var pan dto.ProductoExport
	for _, p := range out {
		if p.Nombre == "Pan amasado" {
			pan = p
		}
	}
	assert.ElementsMatch(t, []string{"111", "222"}, pan.CodigosBarras)
}

func TestDatos_Respaldar(t *testing.T) {
	e := nuevoEntorno(t)
	e.producto(t, "Pan amasado", 1990)
	ctx := context.Background()

	resp, err := e.datos.Respaldar(ctx, dto.RespaldoRequest{Ruta: filepath.Join("sub", "copia.db")})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(resp.Ruta, filepath.Join("sub", "copia.db")), resp.Ruta)
	info, err := os.Stat(resp.Ruta)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = e.datos.Respaldar(ctx, dto.RespaldoRequest{Ruta: filepath.Join("sub", "copia.db")})
	assert.True(t, apperror.Is(err, apperror.KindConflict), "an existing file is never overwritten")

	resp, err = e.datos.Respaldar(ctx, dto.RespaldoRequest{})
	require.NoError(t, err)
	assert.FileExists(t, resp.Ruta)
}

func TestDatos_RespaldarFueraDelDirectorio(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	fuera := filepath.Join(t.TempDir(), "copia.db")

	for _, ruta := range []string{fuera, filepath.Join("..", "copia.db"), filepath.Join("sub", "..", "..", "copia.db")} {
		_, err := e.datos.Respaldar(ctx, dto.RespaldoRequest{Ruta: ruta})
		assert.True(t, apperror.Is(err, apperror.KindValidation), ruta)
	}
	assert.NoFileExists(t, fuera)
}
