package service_test

import (
	"context"
	"strconv"
	"testing"
	"time"
	_ "time/tzdata"

	"negocioapp/internal/dto"
	"negocioapp/internal/infra"
	"negocioapp/internal/repository"
	"negocioapp/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// entorno is a fully wired service graph over a private in-memory database.
type entorno struct {
	db *gorm.DB

	ventaRepo repository.VentaRepository

	productos   service.ProductoService
	categorias  service.CategoriaService
	grupos      service.GrupoService
	unidades    service.UnidadService
	proveedores service.ProveedorService
	ventas      service.VentaService
	carritos    service.CarritoService
	reportes    service.ReporteService
	datos       service.DatosService
}

func santiago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)
	return loc
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := infra.NewDatabase("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	productoRepo := repository.NewProductoRepository(db)
	codigoBarrasRepo := repository.NewCodigoBarrasRepository(db)
	codigoProveedorRepo := repository.NewCodigoProveedorRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	grupoRepo := repository.NewGrupoRepository(db)
	unidadRepo := repository.NewUnidadRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	ventaRepo := repository.NewVentaRepository(db)

	reglas := service.NewReglasCatalogo(productoRepo, codigoBarrasRepo, codigoProveedorRepo)
	e := &entorno{db: db, ventaRepo: ventaRepo}
	e.productos = service.NewProductoService(productoRepo, codigoBarrasRepo, codigoProveedorRepo,
		categoriaRepo, grupoRepo, unidadRepo, ventaRepo, reglas)
	e.categorias = service.NewCategoriaService(categoriaRepo, productoRepo)
	e.grupos = service.NewGrupoService(grupoRepo, productoRepo)
	e.unidades = service.NewUnidadService(unidadRepo, productoRepo)
	e.proveedores = service.NewProveedorService(proveedorRepo, codigoProveedorRepo, productoRepo, reglas)
	e.ventas = service.NewVentaService(ventaRepo, productoRepo)
	e.carritos = service.NewCarritoService(e.productos, e.ventas)
	e.reportes = service.NewReporteService(ventaRepo, santiago(t), "Almacén Test")
	e.datos = service.NewDatosService(db, productoRepo, t.TempDir())
	return e
}

func (e *entorno) producto(t *testing.T, nombre string, precio int64, codigos ...string) *dto.ProductoResponse {
	t.Helper()
	p, err := e.productos.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:        nombre,
		Precio:        precio,
		CodigosBarras: codigos,
	})
	require.NoError(t, err)
	return p
}

func (e *entorno) contarVentas(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Table("ventas").Count(&n).Error)
	return n
}

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func formatID(id int64) string { return strconv.FormatInt(id, 10) }
