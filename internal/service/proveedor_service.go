package service

import (
	"context"
	"strings"

	"negocioapp/internal/apperror"
	"negocioapp/internal/dto"
	"negocioapp/internal/model"
	"negocioapp/internal/repository"

	"gorm.io/gorm"
)

// ProveedorService manages suppliers and the codes they use for products.
type ProveedorService interface {
	Crear(ctx context.Context, req dto.ProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ProveedorRequest) (*dto.ProveedorResponse, error)
	// Eliminar removes the supplier together with its codes.
	Eliminar(ctx context.Context, id int64) error

	CrearCodigo(ctx context.Context, req dto.CodigoProveedorRequest) (*dto.CodigoProveedorResponse, error)
	ListarCodigos(ctx context.Context, filter dto.CodigoProveedorFilter) ([]dto.CodigoProveedorResponse, error)
	ActualizarCodigo(ctx context.Context, id int64, req dto.CodigoProveedorRequest) (*dto.CodigoProveedorResponse, error)
	EliminarCodigo(ctx context.Context, id int64) error
}

type proveedorService struct {
	repo         repository.ProveedorRepository
	codigoRepo   repository.CodigoProveedorRepository
	productoRepo repository.ProductoRepository
	reglas       *ReglasCatalogo
}

func NewProveedorService(
	repo repository.ProveedorRepository,
	codigoRepo repository.CodigoProveedorRepository,
	productoRepo repository.ProductoRepository,
	reglas *ReglasCatalogo,
) ProveedorService {
	return &proveedorService{repo: repo, codigoRepo: codigoRepo, productoRepo: productoRepo, reglas: reglas}
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{ID: p.ID, Nombre: p.Nombre, RUT: p.RUT}
}

func codigoProveedorToResponse(c *model.CodigoProveedor) *dto.CodigoProveedorResponse {
	return &dto.CodigoProveedorResponse{ID: c.ID, ProveedorID: c.ProveedorID, ProductoID: c.ProductoID, Codigo: c.Codigo}
}

// rutOpcional trims the RUT and stores an empty one as NULL.
func rutOpcional(rut *string) *string {
	if rut == nil {
		return nil
	}
	r := strings.TrimSpace(*rut)
	if r == "" {
		return nil
	}
	return &r
}

func (s *proveedorService) Crear(ctx context.Context, req dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apperror.Validation("el nombre del proveedor es requerido")
	}
	p := &model.Proveedor{Nombre: nombre, RUT: rutOpcional(req.RUT)}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, duplicado("crear proveedor", err, "ya existe un proveedor llamado %s", nombre)
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id int64) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado("obtener proveedor", err, "proveedor %d no encontrado", id)
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeErr("listar proveedores", err)
	}
	out := make([]dto.ProveedorResponse, 0, len(list))
	for i := range list {
		out = append(out, *proveedorToResponse(&list[i]))
	}
	return out, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id int64, req dto.ProveedorRequest) (*dto.ProveedorResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apperror.Validation("el nombre del proveedor es requerido")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado("obtener proveedor", err, "proveedor %d no encontrado", id)
	}
	p.Nombre = nombre
	p.RUT = rutOpcional(req.RUT)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, duplicado("actualizar proveedor", err, "ya existe un proveedor llamado %s", nombre)
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Eliminar(ctx context.Context, id int64) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, id); err != nil {
			return noEncontrado("obtener proveedor", err, "proveedor %d no encontrado", id)
		}
		if err := s.codigoRepo.WithTx(tx).DeleteByProveedor(ctx, id); err != nil {
			return storeErr("eliminar códigos del proveedor", err)
		}
		return storeErr("eliminar proveedor", repo.Delete(ctx, id))
	})
}

// ── Códigos de proveedor ─────────────────────────────────────────────────────

// verificarCodigo checks both references and the per-supplier uniqueness of
// codigo, all inside tx.
func (s *proveedorService) verificarCodigo(ctx context.Context, tx *gorm.DB, excluirID int64, req dto.CodigoProveedorRequest, codigo string) error {
	if codigo == "" {
		return apperror.Validation("el código de proveedor es requerido")
	}
	if _, err := s.repo.WithTx(tx).FindByID(ctx, req.ProveedorID); err != nil {
		return noEncontrado("obtener proveedor", err, "proveedor %d no encontrado", req.ProveedorID)
	}
	if _, err := s.productoRepo.WithTx(tx).FindByID(ctx, req.ProductoID); err != nil {
		return noEncontrado("obtener producto", err, "producto %d no encontrado", req.ProductoID)
	}
	return s.reglas.WithTx(tx).VerificarCodigoProveedor(ctx, excluirID, req.ProveedorID, codigo)
}

func (s *proveedorService) CrearCodigo(ctx context.Context, req dto.CodigoProveedorRequest) (*dto.CodigoProveedorResponse, error) {
	codigo := strings.TrimSpace(req.Codigo)
	c := &model.CodigoProveedor{ProveedorID: req.ProveedorID, ProductoID: req.ProductoID, Codigo: codigo}
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.verificarCodigo(ctx, tx, 0, req, codigo); err != nil {
			return err
		}
		return duplicado("crear código de proveedor", s.codigoRepo.WithTx(tx).Create(ctx, c),
			"el código %s ya existe para este proveedor", codigo)
	})
	if err != nil {
		return nil, err
	}
	return codigoProveedorToResponse(c), nil
}

func (s *proveedorService) ListarCodigos(ctx context.Context, filter dto.CodigoProveedorFilter) ([]dto.CodigoProveedorResponse, error) {
	var (
		list []model.CodigoProveedor
		err  error
	)
	switch {
	case filter.ProveedorID != nil:
		if _, err := s.repo.FindByID(ctx, *filter.ProveedorID); err != nil {
			return nil, noEncontrado("obtener proveedor", err, "proveedor %d no encontrado", *filter.ProveedorID)
		}
		list, err = s.codigoRepo.ListByProveedor(ctx, *filter.ProveedorID)
		if err == nil && filter.ProductoID != nil {
			list = filtrarPorProducto(list, *filter.ProductoID)
		}
	case filter.ProductoID != nil:
		list, err = s.codigoRepo.ListByProducto(ctx, *filter.ProductoID)
	default:
		return nil, apperror.Validation("indique proveedor_id o producto_id")
	}
	if err != nil {
		return nil, storeErr("listar códigos de proveedor", err)
	}
	out := make([]dto.CodigoProveedorResponse, 0, len(list))
	for i := range list {
		out = append(out, *codigoProveedorToResponse(&list[i]))
	}
	return out, nil
}

func filtrarPorProducto(list []model.CodigoProveedor, productoID int64) []model.CodigoProveedor {
	out := list[:0]
	for _, c := range list {
		if c.ProductoID == productoID {
			out = append(out, c)
		}
	}
	return out
}

func (s *proveedorService) ActualizarCodigo(ctx context.Context, id int64, req dto.CodigoProveedorRequest) (*dto.CodigoProveedorResponse, error) {
	codigo := strings.TrimSpace(req.Codigo)
	var c *model.CodigoProveedor
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.codigoRepo.WithTx(tx)
		var err error
		c, err = repo.FindByID(ctx, id)
		if err != nil {
			return noEncontrado("obtener código de proveedor", err, "código de proveedor %d no encontrado", id)
		}
		if err := s.verificarCodigo(ctx, tx, id, req, codigo); err != nil {
			return err
		}
		c.ProveedorID = req.ProveedorID
		c.ProductoID = req.ProductoID
		c.Codigo = codigo
		return duplicado("actualizar código de proveedor", repo.Update(ctx, c),
			"el código %s ya existe para este proveedor", codigo)
	})
	if err != nil {
		return nil, err
	}
	return codigoProveedorToResponse(c), nil
}

func (s *proveedorService) EliminarCodigo(ctx context.Context, id int64) error {
	if _, err := s.codigoRepo.FindByID(ctx, id); err != nil {
		return noEncontrado("obtener código de proveedor", err, "código de proveedor %d no encontrado", id)
	}
	return storeErr("eliminar código de proveedor", s.codigoRepo.Delete(ctx, id))
}
