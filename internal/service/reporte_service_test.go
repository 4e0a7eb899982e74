package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"negocioapp/internal/apperror"
	"negocioapp/internal/dto"
	"negocioapp/internal/model"
	"negocioapp/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── RangoDia ──────────────────────────────────────────────────────────────────

func TestRangoDia(t *testing.T) {
	loc := santiago(t)
	cases := []struct {
		name         string
		desde, hasta string
		inicio, fin  string
	}{
		{"summer day", "2024-03-10", "2024-03-10", "2024-03-10T03:00:00Z", "2024-03-11T02:59:59.999Z"},
		{"winter day", "2024-07-15", "2024-07-15", "2024-07-15T04:00:00Z", "2024-07-16T03:59:59.999Z"},
		// clocks go back at midnight: the day has 25 hours
		{"fall back", "2024-04-06", "2024-04-06", "2024-04-06T03:00:00Z", "2024-04-07T03:59:59.999Z"},
		// midnight does not exist: the day starts at 01:00 and has 23 hours
		{"spring forward", "2024-09-08", "2024-09-08", "2024-09-08T04:00:00Z", "2024-09-09T02:59:59.999Z"},
		{"multi day", "2024-09-07", "2024-09-09", "2024-09-07T04:00:00Z", "2024-09-10T02:59:59.999Z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inicio, fin, err := service.RangoDia(tc.desde, tc.hasta, loc)
			require.NoError(t, err)
			assert.Equal(t, tc.inicio, inicio.Format(time.RFC3339Nano))
			assert.Equal(t, tc.fin, fin.Format(time.RFC3339Nano))
			assert.Equal(t, time.UTC, inicio.Location())
		})
	}
}

func TestRangoDia_Invalido(t *testing.T) {
	loc := santiago(t)
	_, _, err := service.RangoDia("2024-03-11", "2024-03-10", loc)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, _, err = service.RangoDia("10/03/2024", "2024-03-10", loc)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	_, _, err = service.RangoDia("2024-03-10", "", loc)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

// ── CalcularEstadisticas ──────────────────────────────────────────────────────

func item(id int64, nombre, cantidad string, subtotal int64) model.VentaItem {
	it := model.VentaItem{NombreProducto: nombre, Cantidad: dec(cantidad), Subtotal: subtotal}
	if id > 0 {
		it.ProductoID = &id
	}
	return it
}

func TestCalcularEstadisticas_Vacio(t *testing.T) {
	est := service.CalcularEstadisticas(nil)
	assert.Zero(t, est.CantidadVentas)
	assert.Zero(t, est.Ingresos)
	assert.Zero(t, est.VentaMayor)
	assert.True(t, est.Promedio.IsZero())
	assert.NotNil(t, est.MasVendidos)
	assert.Empty(t, est.MasVendidos)
	assert.NotNil(t, est.MayorIngreso)
	assert.Empty(t, est.MayorIngreso)
}

func TestCalcularEstadisticas(t *testing.T) {
	ventas := []model.Venta{
		{Total: 1000, Items: []model.VentaItem{
			item(1, "A", "5", 500),
			item(2, "B", "1", 500),
		}},
		{Total: 3000, Items: []model.VentaItem{
			item(1, "A", "1", 100),
			item(3, "C", "2", 2000),
			item(0, "Bolsa", "1", 150),
			item(4, "D", "2", 50),
		}},
		{Total: 500, Items: []model.VentaItem{
			item(0, "Bolsa", "2", 300),
			item(5, "E", "1", 10),
			item(6, "F", "1", 40),
		}},
	}

	est := service.CalcularEstadisticas(ventas)
	assert.Equal(t, 3, est.CantidadVentas)
	assert.Equal(t, int64(4500), est.Ingresos)
	assert.Equal(t, int64(3000), est.VentaMayor)
	assert.True(t, dec("1500").Equal(est.Promedio), "promedio=%s", est.Promedio)

	nombres := func(rs []dto.ProductoRanking) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.Nombre)
		}
		return out
	}
	assert.Equal(t, []string{"A", "Bolsa", "C", "D", "B"}, nombres(est.MasVendidos))
	assert.Equal(t, []string{"C", "A", "B", "Bolsa", "D"}, nombres(est.MayorIngreso))

	// items without product are grouped by name
	bolsa := est.MasVendidos[1]
	assert.Nil(t, bolsa.ProductoID)
	assert.True(t, dec("3").Equal(bolsa.Cantidad))
	assert.Equal(t, int64(450), bolsa.Ingreso)
}

func TestCalcularEstadisticas_PromedioRedondeado(t *testing.T) {
	est := service.CalcularEstadisticas([]model.Venta{{Total: 1000}, {Total: 1000}, {Total: 1010}})
	assert.Equal(t, "1003.33", est.Promedio.StringFixed(2))
}

// ── Generar / PDF ─────────────────────────────────────────────────────────────

func TestReporte_GenerarYPDF(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	loc := santiago(t)

	crear := func(at time.Time, total int64) {
		v := &model.Venta{
			Total:     total,
			CreatedAt: at,
			Items:     []model.VentaItem{{NombreProducto: "Pan amasado", Cantidad: dec("1"), Precio: total, Subtotal: total}},
		}
		require.NoError(t, e.ventaRepo.Create(ctx, v))
	}
	crear(time.Date(2024, 3, 10, 8, 0, 0, 0, loc), 1990)
	crear(time.Date(2024, 3, 10, 23, 59, 59, 0, loc), 3000)
	crear(time.Date(2024, 3, 11, 0, 0, 0, 0, loc), 9990)

	filtro := dto.RangoFilter{Desde: "2024-03-10", Hasta: "2024-03-10"}
	rep, err := e.reportes.Generar(ctx, filtro)
	require.NoError(t, err)
	assert.Len(t, rep.Ventas, 2)
	assert.Equal(t, int64(4990), rep.Estadisticas.Ingresos)
	require.Len(t, rep.Estadisticas.MasVendidos, 1)
	assert.True(t, dec("2").Equal(rep.Estadisticas.MasVendidos[0].Cantidad))

	var buf bytes.Buffer
	require.NoError(t, e.reportes.EscribirPDF(ctx, &buf, filtro))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	buf.Reset()
	require.NoError(t, e.reportes.EscribirTicket(ctx, &buf, rep.Ventas[0].ID))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	err = e.reportes.EscribirTicket(ctx, &buf, 999)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestReporte_DiaSinMedianoche(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	loc := santiago(t)

	// 2024-09-08: clocks jump from 00:00 to 01:00
	for _, at := range []time.Time{
		time.Date(2024, 9, 7, 23, 30, 0, 0, loc),
		time.Date(2024, 9, 8, 10, 0, 0, 0, loc),
		time.Date(2024, 9, 8, 23, 59, 0, 0, loc),
	} {
		require.NoError(t, e.ventaRepo.Create(ctx, &model.Venta{Total: 1000, CreatedAt: at}))
	}

	rep, err := e.reportes.Generar(ctx, dto.RangoFilter{Desde: "2024-09-08", Hasta: "2024-09-08"})
	require.NoError(t, err)
	require.Len(t, rep.Ventas, 2)
	for _, v := range rep.Ventas {
		assert.Equal(t, 8, v.CreatedAt.In(loc).Day())
	}
}

func TestVentaRepo_CreatedAtSeGuardaEnUTC(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 11, 0, 0, 0, 0, santiago(t))

	v := &model.Venta{Total: 500, CreatedAt: at}
	require.NoError(t, e.ventaRepo.Create(ctx, v))

	got, err := e.ventaRepo.FindByID(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, at.Equal(got.CreatedAt), "got %s", got.CreatedAt)

	// one millisecond before that local midnight, in UTC
	ventas, err := e.ventaRepo.ListRango(ctx, at.Add(-time.Hour), at.Add(-time.Millisecond))
	require.NoError(t, err)
	assert.Empty(t, ventas)
	ventas, err = e.ventaRepo.ListRango(ctx, at, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, ventas, 1)
}
