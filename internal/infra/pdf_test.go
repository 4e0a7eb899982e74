package infra_test

import (
	"bytes"
	"testing"
	"time"

	"negocioapp/internal/dto"
	"negocioapp/internal/infra"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ventaDePrueba() dto.VentaResponse {
	metodo := "efectivo"
	return dto.VentaResponse{
		ID:         42,
		Total:      5970,
		MetodoPago: &metodo,
		CreatedAt:  time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC),
		Items: []dto.VentaItemResponse{
			{NombreProducto: "Pan amasado con un nombre bastante largo", Cantidad: decimal.NewFromInt(3), Precio: 1990, Subtotal: 5970},
		},
	}
}

func TestWriteTicketPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, infra.WriteTicketPDF(&buf, "Almacén Ñuñoa", ventaDePrueba(), time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteReporteVentasPDF(t *testing.T) {
	rep := dto.ReporteVentasResponse{
		Desde:  "2024-03-10",
		Hasta:  "2024-03-11",
		Ventas: []dto.VentaResponse{ventaDePrueba()},
		Estadisticas: dto.EstadisticasResponse{
			CantidadVentas: 1,
			Ingresos:       5970,
			Promedio:       decimal.NewFromInt(5970),
			VentaMayor:     5970,
			MasVendidos:    []dto.ProductoRanking{{Nombre: "Pan amasado", Cantidad: decimal.NewFromInt(3), Ingreso: 5970}},
			MayorIngreso:   []dto.ProductoRanking{{Nombre: "Pan amasado", Cantidad: decimal.NewFromInt(3), Ingreso: 5970}},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, infra.WriteReporteVentasPDF(&buf, "Almacén", rep, time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
