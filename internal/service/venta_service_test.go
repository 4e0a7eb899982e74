package service_test

import (
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

func TestVenta_ItemEditsRecomputeTotal(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	pan := e.producto(t, "Pan amasado", 1990)

	v, err := e.ventas.Registrar(ctx, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{Nombre: ptr("Servicio de corte"), Precio: ptr(int64(1234)), Cantidad: dec("1")},
			{ProductoID: &pan.ID, Cantidad: dec("2")},
		},
	})
	require.NoError(t, err)
	require.Len(t, v.Items, 2)
	assert.Equal(t, int64(1234), v.Items[0].Subtotal)
	assert.Equal(t, "Pan amasado", v.Items[1].NombreProducto)
	assert.Equal(t, int64(1230+3980), v.Total)

	v, err = e.ventas.ActualizarItem(ctx, v.Items[0].ID, dto.ActualizarItemRequest{Precio: ptr(int64(1236))})
	require.NoError(t, err)
	assert.Equal(t, int64(1240+3980), v.Total)

	v, err = e.ventas.AgregarItem(ctx, v.ID, dto.ItemVentaRequest{Nombre: ptr("Bolsa"), Precio: ptr(int64(150)), Cantidad: dec("1")})
	require.NoError(t, err)
	require.Len(t, v.Items, 3)
	assert.Equal(t, int64(1240+3980+150), v.Total)

	v, err = e.ventas.EliminarItem(ctx, v.Items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1240+150), v.Total)

	// catalog rows are never touched by sale edits
	p, err := e.productos.ObtenerPorID(ctx, pan.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1990), p.Precio)

	for _, it := range v.Items {
		v, err = e.ventas.EliminarItem(ctx, it.ID)
		require.NoError(t, err)
	}
	assert.Empty(t, v.Items)
	assert.Zero(t, v.Total)
}

func TestVenta_ItemSinProductoRequiereNombreYPrecio(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.ventas.Registrar(context.Background(), dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{{Nombre: ptr("Algo"), Cantidad: dec("1")}},
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Zero(t, e.contarVentas(t))
}

func TestVenta_ActualizarYEliminar(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	v, err := e.ventas.Registrar(ctx, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{{Nombre: ptr("Bolsa"), Precio: ptr(int64(150)), Cantidad: dec("2")}},
	})
	require.NoError(t, err)
	assert.Nil(t, v.MetodoPago)

	v, err = e.ventas.Actualizar(ctx, v.ID, dto.ActualizarVentaRequest{MetodoPago: ptr("tarjeta")})
	require.NoError(t, err)
	require.NotNil(t, v.MetodoPago)
	assert.Equal(t, "tarjeta", *v.MetodoPago)

	require.NoError(t, e.ventas.Eliminar(ctx, v.ID))
	_, err = e.ventas.ObtenerPorID(ctx, v.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	var items int64
	require.NoError(t, e.db.Table("venta_items").Count(&items).Error)
	assert.Zero(t, items)
}

func TestVenta_ListarIncluyeBordesDelDia(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	desde, hasta, err := service.RangoDia("2024-03-10", "2024-03-10", santiago(t))
	require.NoError(t, err)

	crear := func(at time.Time) int64 {
		v := &model.Venta{
			Total:     1000,
			CreatedAt: at,
			Items:     []model.VentaItem{{NombreProducto: "x", Cantidad: dec("1"), Precio: 1000, Subtotal: 1000}},
		}
		require.NoError(t, e.ventaRepo.Create(ctx, v))
		return v.ID
	}
	antes := crear(desde.Add(-time.Millisecond))
	inicio := crear(desde)
	fin := crear(hasta)
	despues := crear(hasta.Add(time.Millisecond))

	list, err := e.ventas.Listar(ctx, desde, hasta)
	require.NoError(t, err)
	ids := make([]int64, 0, len(list))
	for _, v := range list {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []int64{inicio, fin}, ids)
	assert.NotContains(t, ids, antes)
	assert.NotContains(t, ids, despues)
}
