package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"negocioapp/internal/apperror"
	"negocioapp/internal/dto"
	"negocioapp/internal/model"
	"negocioapp/internal/moneda"
	"negocioapp/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProductoService defines the business logic contract for products and their
// barcodes.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	// Eliminar deletes the product with its barcodes and supplier codes. Past
	// sale items keep their stored name.
	Eliminar(ctx context.Context, id int64) error

	// ResolverTermino looks a search term up by barcode, then by product id,
	// then by name fragment.
	ResolverTermino(ctx context.Context, termino string) (dto.ResolucionResponse, error)
	BuscarPorCodigoProveedor(ctx context.Context, codigo string) ([]dto.ProductoResponse, error)

	ListarAccesoRapido(ctx context.Context) ([]dto.ProductoResponse, error)
	ActualizarAccesoRapido(ctx context.Context, id int64, req dto.AccesoRapidoRequest) (*dto.ProductoResponse, error)
	AtajoDisponible(ctx context.Context, tecla string) (dto.AtajoDisponibleResponse, error)
	ObtenerPorAtajo(ctx context.Context, tecla string) (*dto.ProductoResponse, error)

	AgregarCodigoBarras(ctx context.Context, req dto.CodigoBarrasRequest) (dto.CodigoBarrasResponse, error)
	ListarCodigosBarras(ctx context.Context, productoID int64) ([]dto.CodigoBarrasResponse, error)
	ListarTodosCodigosBarras(ctx context.Context) ([]dto.CodigoBarrasResponse, error)
	ActualizarCodigoBarras(ctx context.Context, id int64, req dto.CodigoBarrasRequest) (dto.CodigoBarrasResponse, error)
	EliminarCodigoBarras(ctx context.Context, id int64) error
}

type productoService struct {
	repo                repository.ProductoRepository
	codigoBarrasRepo    repository.CodigoBarrasRepository
	codigoProveedorRepo repository.CodigoProveedorRepository
	categoriaRepo       repository.CategoriaRepository
	grupoRepo           repository.GrupoRepository
	unidadRepo          repository.UnidadRepository
	ventaRepo           repository.VentaRepository
	reglas              *ReglasCatalogo
}

func NewProductoService(
	repo repository.ProductoRepository,
	codigoBarrasRepo repository.CodigoBarrasRepository,
	codigoProveedorRepo repository.CodigoProveedorRepository,
	categoriaRepo repository.CategoriaRepository,
	grupoRepo repository.GrupoRepository,
	unidadRepo repository.UnidadRepository,
	ventaRepo repository.VentaRepository,
	reglas *ReglasCatalogo,
) ProductoService {
	return &productoService{
		repo:                repo,
		codigoBarrasRepo:    codigoBarrasRepo,
		codigoProveedorRepo: codigoProveedorRepo,
		categoriaRepo:       categoriaRepo,
		grupoRepo:           grupoRepo,
		unidadRepo:          unidadRepo,
		ventaRepo:           ventaRepo,
		reglas:              reglas,
	}
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		CategoriaID:  p.CategoriaID,
		GrupoID:      p.GrupoID,
		UnidadID:     p.UnidadID,
		Precio:       p.Precio,
		PrecioTexto:  moneda.Formatear(p.Precio),
		AccesoRapido: p.AccesoRapido,
		Atajo:        p.Atajo,
	}
	if p.Unidad != nil {
		resp.SufijoPrecio = p.Unidad.SufijoPrecio
	}
	for _, c := range p.CodigosBarras {
		resp.CodigosBarras = append(resp.CodigosBarras, c.Codigo)
	}
	return resp
}

func productosToResponse(list []model.Producto) []dto.ProductoResponse {
	out := make([]dto.ProductoResponse, 0, len(list))
	for i := range list {
		out = append(out, *productoToResponse(&list[i]))
	}
	return out
}

// ── Crear / Actualizar ───────────────────────────────────────────────────────

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apperror.Validation("el nombre del producto es requerido")
	}
	if req.Precio < 0 {
		return nil, apperror.Validation("el precio no puede ser negativo")
	}
	atajo, err := NormalizarAtajo(req.Atajo)
	if err != nil {
		return nil, err
	}
	if atajo != nil && !req.AccesoRapido {
		return nil, apperror.Validation("solo un producto de acceso rápido puede tener atajo")
	}

	var id int64
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		reglas := s.reglas.WithTx(tx)

		if req.ID != nil {
			_, err := repo.FindByID(ctx, *req.ID)
			if err == nil {
				return apperror.Conflict("ya existe un producto con el código %d", *req.ID)
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return storeErr("verificar código de producto", err)
			}
		}
		if err := reglas.VerificarNombreProducto(ctx, 0, nombre); err != nil {
			return err
		}

		p := &model.Producto{
			Nombre:       nombre,
			CategoriaID:  req.CategoriaID,
			GrupoID:      req.GrupoID,
			UnidadID:     req.UnidadID,
			Precio:       req.Precio,
			AccesoRapido: req.AccesoRapido,
			Atajo:        atajo,
		}
		if req.ID != nil {
			p.ID = *req.ID
		}
		if err := s.verificarReferencias(ctx, tx, p); err != nil {
			return err
		}
		if atajo != nil {
			if err := reglas.VerificarAtajo(ctx, p.ID, *atajo); err != nil {
				return err
			}
		}
		if err := repo.Create(ctx, p); err != nil {
			return duplicado("crear producto", err, "ya existe un producto con esos datos")
		}

		codigos := s.codigoBarrasRepo.WithTx(tx)
		for _, codigo := range req.CodigosBarras {
			codigo = NormalizarCodigoBarras(codigo)
			ya, err := reglas.VerificarCodigoBarras(ctx, p.ID, codigo)
			if err != nil {
				return err
			}
			if ya {
				continue
			}
			if err := codigos.Create(ctx, &model.CodigoBarras{ProductoID: p.ID, Codigo: codigo}); err != nil {
				return duplicado("crear código de barras", err, "el código de barras %s ya está asignado", codigo)
			}
		}
		id = p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("producto_id", id).Str("nombre", nombre).Msg("producto creado")
	return s.ObtenerPorID(ctx, id)
}

func (s *productoService) Actualizar(ctx context.Context, id int64, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		reglas := s.reglas.WithTx(tx)

		p, err := repo.FindByID(ctx, id)
		if err != nil {
			return noEncontrado("obtener producto", err, "producto %d no encontrado", id)
		}

		if req.Nombre != nil {
			nombre := strings.TrimSpace(*req.Nombre)
			if nombre == "" {
				return apperror.Validation("el nombre del producto es requerido")
			}
			if err := reglas.VerificarNombreProducto(ctx, id, nombre); err != nil {
				return err
			}
			p.Nombre = nombre
		}
		if req.CategoriaID != nil {
			p.CategoriaID = referencia(*req.CategoriaID)
		}
		if req.GrupoID != nil {
			p.GrupoID = referencia(*req.GrupoID)
		}
		if req.UnidadID != nil {
			p.UnidadID = referencia(*req.UnidadID)
		}
		if req.Precio != nil {
			p.Precio = *req.Precio
		}
		if req.AccesoRapido != nil {
			p.AccesoRapido = *req.AccesoRapido
		}
		if req.Atajo != nil {
			atajo, err := NormalizarAtajo(req.Atajo)
			if err != nil {
				return err
			}
			if atajo != nil && !p.AccesoRapido {
				return apperror.Validation("solo un producto de acceso rápido puede tener atajo")
			}
			p.Atajo = atajo
		}
		if err := s.aplicarAccesoRapido(ctx, reglas, p); err != nil {
			return err
		}
		if err := s.verificarReferencias(ctx, tx, p); err != nil {
			return err
		}
		if err := repo.Update(ctx, p); err != nil {
			return duplicado("actualizar producto", err, "ya existe un producto con esos datos")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, id)
}

// referencia turns the "0 removes" convention of update requests into a
// nullable id.
func referencia(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// verificarReferencias checks that the referenced rows exist. A product in a
// group takes the group's price.
func (s *productoService) verificarReferencias(ctx context.Context, tx *gorm.DB, p *model.Producto) error {
	if p.CategoriaID != nil {
		if _, err := s.categoriaRepo.WithTx(tx).ObtenerPorID(ctx, *p.CategoriaID); err != nil {
			return noEncontrado("obtener categoría", err, "categoría %d no encontrada", *p.CategoriaID)
		}
	}
	if p.GrupoID != nil {
		g, err := s.grupoRepo.WithTx(tx).ObtenerPorID(ctx, *p.GrupoID)
		if err != nil {
			return noEncontrado("obtener grupo", err, "grupo %d no encontrado", *p.GrupoID)
		}
		p.Precio = g.Precio
	}
	if p.UnidadID != nil {
		if _, err := s.unidadRepo.WithTx(tx).ObtenerPorID(ctx, *p.UnidadID); err != nil {
			return noEncontrado("obtener unidad", err, "unidad %d no encontrada", *p.UnidadID)
		}
	}
	if p.Precio < 0 {
		return apperror.Validation("el precio no puede ser negativo")
	}
	return nil
}

// aplicarAccesoRapido keeps the shortcut consistent with the quick-access
// flag: leaving quick access drops the shortcut.
func (s *productoService) aplicarAccesoRapido(ctx context.Context, reglas *ReglasCatalogo, p *model.Producto) error {
	if !p.AccesoRapido {
		p.Atajo = nil
		return nil
	}
	if p.Atajo == nil {
		return nil
	}
	return reglas.VerificarAtajo(ctx, p.ID, *p.Atajo)
}

// ── Lectura ──────────────────────────────────────────────────────────────────

func (s *productoService) ObtenerPorID(ctx context.Context, id int64) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado("obtener producto", err, "producto %d no encontrado", id)
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeErr("listar productos", err)
	}
	return productosToResponse(list), nil
}

func (s *productoService) Eliminar(ctx context.Context, id int64) error {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, id); err != nil {
			return noEncontrado("obtener producto", err, "producto %d no encontrado", id)
		}
		if err := s.codigoBarrasRepo.WithTx(tx).DeleteByProducto(ctx, id); err != nil {
			return storeErr("eliminar códigos de barras", err)
		}
		if err := s.codigoProveedorRepo.WithTx(tx).DeleteByProducto(ctx, id); err != nil {
			return storeErr("eliminar códigos de proveedor", err)
		}
		if err := s.ventaRepo.WithTx(tx).DesvincularProducto(ctx, id); err != nil {
			return storeErr("desvincular ventas del producto", err)
		}
		return storeErr("eliminar producto", repo.Delete(ctx, id))
	})
	if err == nil {
		log.Info().Int64("producto_id", id).Msg("producto eliminado")
	}
	return err
}

func (s *productoService) ResolverTermino(ctx context.Context, termino string) (dto.ResolucionResponse, error) {
	termino = strings.TrimSpace(termino)
	if termino == "" {
		return dto.ResolucionResponse{}, apperror.Validation("ingrese un término de búsqueda")
	}

	p, err := s.repo.FindByBarcode(ctx, NormalizarCodigoBarras(termino))
	if err == nil {
		return exacta(p), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ResolucionResponse{}, storeErr("buscar por código de barras", err)
	}

	if id, convErr := strconv.ParseInt(termino, 10, 64); convErr == nil && id > 0 {
		p, err := s.repo.FindByID(ctx, id)
		if err == nil {
			return exacta(p), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResolucionResponse{}, storeErr("buscar por código", err)
		}
	}

	list, err := s.repo.BuscarPorNombre(ctx, termino)
	if err != nil {
		return dto.ResolucionResponse{}, storeErr("buscar por nombre", err)
	}
	switch len(list) {
	case 0:
		return dto.ResolucionResponse{Tipo: dto.ResolucionNinguna}, nil
	case 1:
		return exacta(&list[0]), nil
	default:
		return dto.ResolucionResponse{Tipo: dto.ResolucionMultiple, Candidatos: productosToResponse(list)}, nil
	}
}

func exacta(p *model.Producto) dto.ResolucionResponse {
	return dto.ResolucionResponse{Tipo: dto.ResolucionExacta, Producto: productoToResponse(p)}
}

func (s *productoService) BuscarPorCodigoProveedor(ctx context.Context, codigo string) ([]dto.ProductoResponse, error) {
	codigo = strings.TrimSpace(codigo)
	if codigo == "" {
		return nil, apperror.Validation("el código de proveedor es requerido")
	}
	list, err := s.repo.FindByCodigoProveedor(ctx, codigo)
	if err != nil {
		return nil, storeErr("buscar por código de proveedor", err)
	}
	return productosToResponse(list), nil
}

// ── Acceso rápido ────────────────────────────────────────────────────────────

func (s *productoService) ListarAccesoRapido(ctx context.Context) ([]dto.ProductoResponse, error) {
	list, err := s.repo.ListAccesoRapido(ctx)
	if err != nil {
		return nil, storeErr("listar acceso rápido", err)
	}
	return productosToResponse(list), nil
}

func (s *productoService) ActualizarAccesoRapido(ctx context.Context, id int64, req dto.AccesoRapidoRequest) (*dto.ProductoResponse, error) {
	atajo, err := NormalizarAtajo(req.Atajo)
	if err != nil {
		return nil, err
	}
	if atajo != nil && !req.AccesoRapido {
		return nil, apperror.Validation("solo un producto de acceso rápido puede tener atajo")
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		p, err := repo.FindByID(ctx, id)
		if err != nil {
			return noEncontrado("obtener producto", err, "producto %d no encontrado", id)
		}
		p.AccesoRapido = req.AccesoRapido
		p.Atajo = atajo
		if err := s.aplicarAccesoRapido(ctx, s.reglas.WithTx(tx), p); err != nil {
			return err
		}
		return duplicado("actualizar acceso rápido", repo.Update(ctx, p), "el atajo ya está asignado a otro producto")
	})
	if err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *productoService) AtajoDisponible(ctx context.Context, tecla string) (dto.AtajoDisponibleResponse, error) {
	atajo, err := NormalizarAtajo(&tecla)
	if err != nil {
		return dto.AtajoDisponibleResponse{}, err
	}
	if atajo == nil {
		return dto.AtajoDisponibleResponse{}, apperror.Validation("el atajo es requerido")
	}
	p, err := s.repo.FindByAtajo(ctx, *atajo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AtajoDisponibleResponse{Atajo: *atajo, Disponible: true}, nil
	}
	if err != nil {
		return dto.AtajoDisponibleResponse{}, storeErr("verificar atajo", err)
	}
	return dto.AtajoDisponibleResponse{Atajo: *atajo, ProductoID: &p.ID}, nil
}

func (s *productoService) ObtenerPorAtajo(ctx context.Context, tecla string) (*dto.ProductoResponse, error) {
	atajo, err := NormalizarAtajo(&tecla)
	if err != nil {
		return nil, err
	}
	if atajo == nil {
		return nil, apperror.Validation("el atajo es requerido")
	}
	p, err := s.repo.FindByAtajo(ctx, *atajo)
	if err != nil {
		return nil, noEncontrado("obtener producto por atajo", err, "no hay producto asignado a %s", *atajo)
	}
	return productoToResponse(p), nil
}

// ── Códigos de barras ────────────────────────────────────────────────────────

func mapCodigoBarras(c model.CodigoBarras) dto.CodigoBarrasResponse {
	return dto.CodigoBarrasResponse{ID: c.ID, ProductoID: c.ProductoID, Codigo: c.Codigo}
}

func (s *productoService) AgregarCodigoBarras(ctx context.Context, req dto.CodigoBarrasRequest) (dto.CodigoBarrasResponse, error) {
	codigo := NormalizarCodigoBarras(req.Codigo)
	var resp dto.CodigoBarrasResponse
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).FindByID(ctx, req.ProductoID); err != nil {
			return noEncontrado("obtener producto", err, "producto %d no encontrado", req.ProductoID)
		}
		codigos := s.codigoBarrasRepo.WithTx(tx)
		ya, err := s.reglas.WithTx(tx).VerificarCodigoBarras(ctx, req.ProductoID, codigo)
		if err != nil {
			return err
		}
		if ya {
			existente, err := codigos.FindByCodigo(ctx, codigo)
			if err != nil {
				return storeErr("obtener código de barras", err)
			}
			resp = mapCodigoBarras(*existente)
			resp.YaAsignado = true
			return nil
		}
		c := &model.CodigoBarras{ProductoID: req.ProductoID, Codigo: codigo}
		if err := codigos.Create(ctx, c); err != nil {
			return duplicado("crear código de barras", err, "el código de barras %s ya está asignado", codigo)
		}
		resp = mapCodigoBarras(*c)
		return nil
	})
	return resp, err
}

func (s *productoService) ListarTodosCodigosBarras(ctx context.Context) ([]dto.CodigoBarrasResponse, error) {
	list, err := s.codigoBarrasRepo.List(ctx)
	if err != nil {
		return nil, storeErr("listar códigos de barras", err)
	}
	out := make([]dto.CodigoBarrasResponse, 0, len(list))
	for _, c := range list {
		out = append(out, mapCodigoBarras(c))
	}
	return out, nil
}

func (s *productoService) ListarCodigosBarras(ctx context.Context, productoID int64) ([]dto.CodigoBarrasResponse, error) {
	if _, err := s.repo.FindByID(ctx, productoID); err != nil {
		return nil, noEncontrado("obtener producto", err, "producto %d no encontrado", productoID)
	}
	list, err := s.codigoBarrasRepo.ListByProducto(ctx, productoID)
	if err != nil {
		return nil, storeErr("listar códigos de barras", err)
	}
	out := make([]dto.CodigoBarrasResponse, 0, len(list))
	for _, c := range list {
		out = append(out, mapCodigoBarras(c))
	}
	return out, nil
}

func (s *productoService) ActualizarCodigoBarras(ctx context.Context, id int64, req dto.CodigoBarrasRequest) (dto.CodigoBarrasResponse, error) {
	codigo := NormalizarCodigoBarras(req.Codigo)
	var resp dto.CodigoBarrasResponse
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		codigos := s.codigoBarrasRepo.WithTx(tx)
		c, err := codigos.FindByID(ctx, id)
		if err != nil {
			return noEncontrado("obtener código de barras", err, "código de barras %d no encontrado", id)
		}
		if _, err := s.repo.WithTx(tx).FindByID(ctx, req.ProductoID); err != nil {
			return noEncontrado("obtener producto", err, "producto %d no encontrado", req.ProductoID)
		}
		if c.Codigo != codigo {
			ya, err := s.reglas.WithTx(tx).VerificarCodigoBarras(ctx, req.ProductoID, codigo)
			if err != nil {
				return err
			}
			if ya {
				// the product already carries the new code in another row
				resp = mapCodigoBarras(*c)
				resp.YaAsignado = true
				return nil
			}
		}
		c.ProductoID = req.ProductoID
		c.Codigo = codigo
		if err := codigos.Update(ctx, c); err != nil {
			return duplicado("actualizar código de barras", err, "el código de barras %s ya está asignado", codigo)
		}
		resp = mapCodigoBarras(*c)
		return nil
	})
	return resp, err
}

func (s *productoService) EliminarCodigoBarras(ctx context.Context, id int64) error {
	if _, err := s.codigoBarrasRepo.FindByID(ctx, id); err != nil {
		return noEncontrado("obtener código de barras", err, "código de barras %d no encontrado", id)
	}
	return storeErr("eliminar código de barras", s.codigoBarrasRepo.Delete(ctx, id))
}
