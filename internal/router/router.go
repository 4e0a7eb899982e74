package router

import (
	"negocioapp/internal/config"
	"negocioapp/internal/handler"
	"negocioapp/internal/middleware"
	"negocioapp/internal/repository"
	"negocioapp/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())

	loc := cfg.Location()

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	codigoBarrasRepo := repository.NewCodigoBarrasRepository(db)
	codigoProveedorRepo := repository.NewCodigoProveedorRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	grupoRepo := repository.NewGrupoRepository(db)
	unidadRepo := repository.NewUnidadRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	ventaRepo := repository.NewVentaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	reglas := service.NewReglasCatalogo(productoRepo, codigoBarrasRepo, codigoProveedorRepo)
	productoSvc := service.NewProductoService(productoRepo, codigoBarrasRepo, codigoProveedorRepo,
		categoriaRepo, grupoRepo, unidadRepo, ventaRepo, reglas)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, productoRepo)
	grupoSvc := service.NewGrupoService(grupoRepo, productoRepo)
	unidadSvc := service.NewUnidadService(unidadRepo, productoRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo, codigoProveedorRepo, productoRepo, reglas)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo)
	carritoSvc := service.NewCarritoService(productoSvc, ventaSvc)
	reporteSvc := service.NewReporteService(ventaRepo, loc, cfg.NombreNegocio)
	datosSvc := service.NewDatosService(db, productoRepo, cfg.BackupDir)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	gruposH := handler.NewGruposHandler(grupoSvc)
	unidadesH := handler.NewUnidadesHandler(unidadSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	carritosH := handler.NewCarritosHandler(carritoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc, reporteSvc, loc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	datosH := handler.NewDatosHandler(datosSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db))

	// Single-operator register on localhost: no authentication.
	v1 := r.Group("/v1")
	{
		carritos := v1.Group("/carritos")
		{
			carritos.POST("", carritosH.Crear)
			carritos.GET("/:id", carritosH.Obtener)
			carritos.DELETE("/:id", carritosH.Descartar)
			carritos.POST("/:id/busqueda", carritosH.Buscar)
			carritos.POST("/:id/lineas", carritosH.AgregarLinea)
			carritos.POST("/:id/lineas/provisional", carritosH.AgregarProvisional)
			carritos.PATCH("/:id/lineas/:producto_id", carritosH.Ajustar)
			carritos.DELETE("/:id/lineas/:producto_id", carritosH.Quitar)
			carritos.POST("/:id/atajos/:tecla", carritosH.AgregarPorAtajo)
			carritos.POST("/:id/cobro/iniciar", carritosH.IniciarCobro)
			carritos.POST("/:id/cobro/cancelar", carritosH.CancelarCobro)
			carritos.POST("/:id/cobro", carritosH.Cobrar)
		}

		prods := v1.Group("/productos")
		{
			prods.GET("", productosH.Listar)
			prods.POST("", productosH.Crear)
			prods.GET("/buscar", productosH.Buscar)
			prods.GET("/buscar-codigo-proveedor", productosH.BuscarPorCodigoProveedor)
			prods.GET("/acceso-rapido", productosH.ListarAccesoRapido)
			prods.GET("/:id", productosH.ObtenerPorID)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.PUT("/:id/acceso-rapido", productosH.ActualizarAccesoRapido)
			prods.GET("/:id/codigos-barras", productosH.ListarCodigosBarras)
			prods.GET("/:id/codigos-proveedor", proveedoresH.CodigosDeProducto)
		}

		v1.GET("/atajos/:tecla", productosH.ObtenerPorAtajo)
		v1.GET("/atajos/:tecla/disponible", productosH.AtajoDisponible)

		barras := v1.Group("/codigos-barras")
		{
			barras.GET("", productosH.ListarTodosCodigosBarras)
			barras.POST("", productosH.AgregarCodigoBarras)
			barras.PUT("/:id", productosH.ActualizarCodigoBarras)
			barras.DELETE("/:id", productosH.EliminarCodigoBarras)
		}

		categorias := v1.Group("/categorias")
		{
			categorias.GET("", categoriasH.Listar)
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Eliminar)
		}

		grupos := v1.Group("/grupos")
		{
			grupos.GET("", gruposH.Listar)
			grupos.POST("", gruposH.Crear)
			grupos.PUT("/:id", gruposH.Actualizar)
			grupos.DELETE("/:id", gruposH.Eliminar)
		}

		unidades := v1.Group("/unidades")
		{
			unidades.GET("", unidadesH.Listar)
			unidades.POST("", unidadesH.Crear)
			unidades.PUT("/:id", unidadesH.Actualizar)
			unidades.DELETE("/:id", unidadesH.Eliminar)
		}

		prov := v1.Group("/proveedores")
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.ObtenerPorID)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Eliminar)
			prov.GET("/:id/codigos", proveedoresH.CodigosDeProveedor)
		}

		codProv := v1.Group("/codigos-proveedor")
		{
			codProv.POST("", proveedoresH.CrearCodigo)
			codProv.GET("", proveedoresH.ListarCodigos)
			codProv.PUT("/:id", proveedoresH.ActualizarCodigo)
			codProv.DELETE("/:id", proveedoresH.EliminarCodigo)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.GET("", ventasH.Listar)
			ventas.POST("", ventasH.Registrar)
			ventas.GET("/:id", ventasH.ObtenerPorID)
			ventas.PUT("/:id", ventasH.Actualizar)
			ventas.DELETE("/:id", ventasH.Eliminar)
			ventas.POST("/:id/items", ventasH.AgregarItem)
			ventas.GET("/:id/ticket", ventasH.Ticket)
		}
		v1.PUT("/venta-items/:id", ventasH.ActualizarItem)
		v1.DELETE("/venta-items/:id", ventasH.EliminarItem)

		v1.GET("/reportes/ventas", reportesH.Ventas)
		v1.GET("/reportes/ventas/pdf", reportesH.VentasPDF)

		v1.GET("/exportar/productos", datosH.ExportarProductos)
		v1.POST("/respaldos", datosH.Respaldar)
	}

	return r
}
