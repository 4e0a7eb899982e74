package service_test

import (
	"context"
	"testing"

	"negocioapp/internal/apperror"
	"negocioapp/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Barcodes ──────────────────────────────────────────────────────────────────

func TestCodigoBarras_ConflictNamesOwner(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	pan := e.producto(t, "Pan amasado", 1990, "7800000000011")
	leche := e.producto(t, "Leche entera", 1090)

	_, err := e.productos.AgregarCodigoBarras(ctx, dto.CodigoBarrasRequest{ProductoID: leche.ID, Codigo: "7800000000011"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Contains(t, apperror.Message(err), "Pan amasado")

	codigos, err := e.productos.ListarCodigosBarras(ctx, pan.ID)
	require.NoError(t, err)
	require.Len(t, codigos, 1)
	assert.Equal(t, pan.ID, codigos[0].ProductoID)
}

func TestCodigoBarras_SameProductIsNoop(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	pan := e.producto(t, "Pan amasado", 1990, "7800000000011")

	resp, err := e.productos.AgregarCodigoBarras(ctx, dto.CodigoBarrasRequest{ProductoID: pan.ID, Codigo: " 7800000000011 "})
	require.NoError(t, err)
	assert.True(t, resp.YaAsignado)

	codigos, err := e.productos.ListarCodigosBarras(ctx, pan.ID)
	require.NoError(t, err)
	assert.Len(t, codigos, 1)
}

func TestCodigoBarras_CaseDoesNotMakeANewCode(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	queso := e.producto(t, "Queso mantecoso", 8990, "ABC123")
	jamon := e.producto(t, "Jamón", 4990)

	_, err := e.productos.AgregarCodigoBarras(ctx, dto.CodigoBarrasRequest{ProductoID: jamon.ID, Codigo: "abc123"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Contains(t, apperror.Message(err), "Queso mantecoso")

	resp, err := e.productos.AgregarCodigoBarras(ctx, dto.CodigoBarrasRequest{ProductoID: jamon.ID, Codigo: "xyz9"})
	require.NoError(t, err)
	assert.Equal(t, "XYZ9", resp.Codigo)

	// the search box lower-cases what the scanner typed
	res, err := e.productos.ResolverTermino(ctx, "xyz9")
	require.NoError(t, err)
	require.Equal(t, dto.ResolucionExacta, res.Tipo)
	assert.Equal(t, jamon.ID, res.Producto.ID)

	res, err = e.productos.ResolverTermino(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, dto.ResolucionExacta, res.Tipo)
	assert.Equal(t, queso.ID, res.Producto.ID)
}

func TestCrearProducto_BarcodeOwnedByOtherRollsBack(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	e.producto(t, "Pan amasado", 1990, "111")

	_, err := e.productos.Crear(ctx, dto.CrearProductoRequest{
		Nombre:        "Pan integral",
		Precio:        2190,
		CodigosBarras: []string{"222", "111"},
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	list, err := e.productos.Listar(ctx, dto.ProductoFilter{Nombre: "integral"})
	require.NoError(t, err)
	assert.Empty(t, list, "product must not exist after a failed create")
	res, err := e.productos.ResolverTermino(ctx, "222")
	require.NoError(t, err)
	assert.Equal(t, dto.ResolucionNinguna, res.Tipo)
}

// ── Names and shortcuts ───────────────────────────────────────────────────────

func TestCrearProducto_DuplicateName(t *testing.T) {
	e := nuevoEntorno(t)
	e.producto(t, "Azúcar", 1200)

	_, err := e.productos.Crear(context.Background(), dto.CrearProductoRequest{Nombre: "Azúcar", Precio: 1300})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestAtajo_Rules(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	_, err := e.productos.Crear(ctx, dto.CrearProductoRequest{Nombre: "Bolsa", Precio: 50, Atajo: ptr("F1")})
	require.Error(t, err, "a shortcut needs quick access")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = e.productos.Crear(ctx, dto.CrearProductoRequest{Nombre: "Bolsa", Precio: 50, AccesoRapido: true, Atajo: ptr("F13")})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	bolsa, err := e.productos.Crear(ctx, dto.CrearProductoRequest{Nombre: "Bolsa", Precio: 50, AccesoRapido: true, Atajo: ptr("f1")})
	require.NoError(t, err)
	require.NotNil(t, bolsa.Atajo)
	assert.Equal(t, "F1", *bolsa.Atajo)

	_, err = e.productos.Crear(ctx, dto.CrearProductoRequest{Nombre: "Hielo", Precio: 900, AccesoRapido: true, Atajo: ptr("F1")})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Contains(t, apperror.Message(err), "Bolsa")

	disp, err := e.productos.AtajoDisponible(ctx, "F1")
	require.NoError(t, err)
	assert.False(t, disp.Disponible)
	require.NotNil(t, disp.ProductoID)
	assert.Equal(t, bolsa.ID, *disp.ProductoID)

	// leaving quick access frees the key
	upd, err := e.productos.ActualizarAccesoRapido(ctx, bolsa.ID, dto.AccesoRapidoRequest{AccesoRapido: false})
	require.NoError(t, err)
	assert.Nil(t, upd.Atajo)

	disp, err = e.productos.AtajoDisponible(ctx, "f1")
	require.NoError(t, err)
	assert.True(t, disp.Disponible)
}

func TestActualizarProducto_ClearsAtajoAndReferences(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	cat, err := e.categorias.Crear(ctx, dto.CategoriaRequest{Nombre: "Panadería"})
	require.NoError(t, err)
	p, err := e.productos.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Hallulla", Precio: 1990, CategoriaID: &cat.ID, AccesoRapido: true, Atajo: ptr("F2"),
	})
	require.NoError(t, err)

	upd, err := e.productos.Actualizar(ctx, p.ID, dto.ActualizarProductoRequest{
		CategoriaID: ptr(int64(0)),
		Atajo:       ptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, upd.CategoriaID)
	assert.Nil(t, upd.Atajo)
	assert.True(t, upd.AccesoRapido)
}

// ── Groups and categories ─────────────────────────────────────────────────────

func TestGrupo_MemberTakesGroupPrice(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	g, err := e.grupos.Crear(ctx, dto.GrupoRequest{Nombre: "Bebidas 1.5L", Precio: 1800})
	require.NoError(t, err)

	p, err := e.productos.Crear(ctx, dto.CrearProductoRequest{Nombre: "Cola 1.5L", Precio: 2500, GrupoID: &g.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1800), p.Precio)

	suelto := e.producto(t, "Naranja 1.5L", 2100)
	upd, err := e.productos.Actualizar(ctx, suelto.ID, dto.ActualizarProductoRequest{GrupoID: &g.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1800), upd.Precio)
}

func TestGrupo_UpdateCascadesPrice(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	g, err := e.grupos.Crear(ctx, dto.GrupoRequest{Nombre: "Bebidas 1.5L", Precio: 1800})
	require.NoError(t, err)
	a, err := e.productos.Crear(ctx, dto.CrearProductoRequest{Nombre: "Cola 1.5L", GrupoID: &g.ID})
	require.NoError(t, err)
	b, err := e.productos.Crear(ctx, dto.CrearProductoRequest{Nombre: "Naranja 1.5L", GrupoID: &g.ID})
	require.NoError(t, err)
	fuera := e.producto(t, "Agua 1.5L", 990)

	resp, err := e.grupos.Actualizar(ctx, g.ID, dto.GrupoRequest{Nombre: "Bebidas 1.5L", Precio: 1950})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ProductosActualizados)

	for _, id := range []int64{a.ID, b.ID} {
		p, err := e.productos.ObtenerPorID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1950), p.Precio)
	}
	p, err := e.productos.ObtenerPorID(ctx, fuera.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(990), p.Precio)
}

func TestGrupo_DeleteKeepsMemberPrice(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	g, err := e.grupos.Crear(ctx, dto.GrupoRequest{Nombre: "Helados", Precio: 700})
	require.NoError(t, err)
	p, err := e.productos.Crear(ctx, dto.CrearProductoRequest{Nombre: "Helado piña", GrupoID: &g.ID})
	require.NoError(t, err)

	require.NoError(t, e.grupos.Eliminar(ctx, g.ID))

	got, err := e.productos.ObtenerPorID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GrupoID)
	assert.Equal(t, int64(700), got.Precio)

	err = e.grupos.Eliminar(ctx, g.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCategoria_DeleteUncategorizesProducts(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	cat, err := e.categorias.Crear(ctx, dto.CategoriaRequest{Nombre: "Lácteos"})
	require.NoError(t, err)
	p, err := e.productos.Crear(ctx, dto.CrearProductoRequest{Nombre: "Yogur", Precio: 450, CategoriaID: &cat.ID})
	require.NoError(t, err)

	require.NoError(t, e.categorias.Eliminar(ctx, cat.ID))

	got, err := e.productos.ObtenerPorID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoriaID)
}

func TestCrearProducto_UnknownReference(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.productos.Crear(context.Background(), dto.CrearProductoRequest{Nombre: "Queso", Precio: 100, UnidadID: ptr(int64(99))})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

// ── Search ────────────────────────────────────────────────────────────────────

func TestBuscarPorNombre_ComodinesLiterales(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	oferta := e.producto(t, "Oferta 50%", 500)
	e.producto(t, "Oferta 500g", 700)
	ab := e.producto(t, "Tornillo a_b", 90)
	e.producto(t, "Tornillo axb", 95)

	res, err := e.productos.ResolverTermino(ctx, "50%")
	require.NoError(t, err)
	require.Equal(t, dto.ResolucionExacta, res.Tipo)
	assert.Equal(t, oferta.ID, res.Producto.ID)

	list, err := e.productos.Listar(ctx, dto.ProductoFilter{Nombre: "a_b"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ab.ID, list[0].ID)
}

func TestCrearProducto_CodigoElegidoNoChocaConElSiguiente(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	elegido, err := e.productos.Crear(ctx, dto.CrearProductoRequest{ID: ptr(int64(500)), Nombre: "Marraqueta", Precio: 1990})
	require.NoError(t, err)
	assert.Equal(t, int64(500), elegido.ID)

	siguiente := e.producto(t, "Hallulla", 2090)
	assert.Greater(t, siguiente.ID, int64(500))

	_, err = e.productos.Crear(ctx, dto.CrearProductoRequest{ID: ptr(int64(500)), Nombre: "Dobladita", Precio: 1500})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestResolverTermino(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	leche := e.producto(t, "Leche entera", 1090, "ABC123")
	e.producto(t, "Leche descremada", 1150)
	pan := e.producto(t, "Pan amasado", 1990)

	res, err := e.productos.ResolverTermino(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, dto.ResolucionExacta, res.Tipo)
	assert.Equal(t, leche.ID, res.Producto.ID)

	res, err = e.productos.ResolverTermino(ctx, formatID(pan.ID))
	require.NoError(t, err)
	require.Equal(t, dto.ResolucionExacta, res.Tipo)
	assert.Equal(t, pan.ID, res.Producto.ID)

	res, err = e.productos.ResolverTermino(ctx, "LECHE")
	require.NoError(t, err)
	assert.Equal(t, dto.ResolucionMultiple, res.Tipo)
	assert.Len(t, res.Candidatos, 2)

	res, err = e.productos.ResolverTermino(ctx, "amasado")
	require.NoError(t, err)
	assert.Equal(t, dto.ResolucionExacta, res.Tipo)

	res, err = e.productos.ResolverTermino(ctx, "caviar")
	require.NoError(t, err)
	assert.Equal(t, dto.ResolucionNinguna, res.Tipo)
}

// ── Supplier codes ────────────────────────────────────────────────────────────

func TestCodigoProveedor_UniquePerSupplier(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	cola := e.producto(t, "Cola 1.5L", 1800)
	agua := e.producto(t, "Agua 1.5L", 990)
	prov, err := e.proveedores.Crear(ctx, dto.ProveedorRequest{Nombre: "Distribuidora Sur"})
	require.NoError(t, err)
	otro, err := e.proveedores.Crear(ctx, dto.ProveedorRequest{Nombre: "Mayorista Norte"})
	require.NoError(t, err)

	_, err = e.proveedores.CrearCodigo(ctx, dto.CodigoProveedorRequest{ProveedorID: prov.ID, ProductoID: cola.ID, Codigo: "X-1"})
	require.NoError(t, err)

	_, err = e.proveedores.CrearCodigo(ctx, dto.CodigoProveedorRequest{ProveedorID: prov.ID, ProductoID: agua.ID, Codigo: "X-1"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Contains(t, apperror.Message(err), "Cola 1.5L")

	// another supplier may reuse the code
	_, err = e.proveedores.CrearCodigo(ctx, dto.CodigoProveedorRequest{ProveedorID: otro.ID, ProductoID: agua.ID, Codigo: "X-1"})
	require.NoError(t, err)

	found, err := e.productos.BuscarPorCodigoProveedor(ctx, "X-1")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	require.NoError(t, e.proveedores.Eliminar(ctx, prov.ID))
	codigos, err := e.proveedores.ListarCodigos(ctx, dto.CodigoProveedorFilter{ProductoID: &cola.ID})
	require.NoError(t, err)
	assert.Empty(t, codigos)
}

func TestEliminarProducto_KeepsSaleHistory(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	p := e.producto(t, "Queso gouda", 12990, "999")

	v, err := e.ventas.Registrar(ctx, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: &p.ID, Cantidad: dec("0.25")}},
	})
	require.NoError(t, err)

	require.NoError(t, e.productos.Eliminar(ctx, p.ID))

	got, err := e.ventas.ObtenerPorID(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].ProductoID)
	assert.Equal(t, "Queso gouda", got.Items[0].NombreProducto)

	res, err := e.productos.ResolverTermino(ctx, "999")
	require.NoError(t, err)
	assert.Equal(t, dto.ResolucionNinguna, res.Tipo)
}
