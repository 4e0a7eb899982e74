package service

import (
	"context"
	"strings"

	"negocioapp/internal/apperror"
	"negocioapp/internal/dto"
	"negocioapp/internal/model"
	"negocioapp/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GrupoService manages price groups. Members of a group always carry the
// group's price.
type GrupoService interface {
	Crear(ctx context.Context, req dto.GrupoRequest) (dto.GrupoResponse, error)
	Listar(ctx context.Context) ([]dto.GrupoResponse, error)
	// Actualizar renames or reprices the group; the new price is copied to
	// every member product in the same transaction.
	Actualizar(ctx context.Context, id int64, req dto.GrupoRequest) (dto.GrupoResponse, error)
	// Eliminar removes the group. Member products keep their current price.
	Eliminar(ctx context.Context, id int64) error
}

type grupoService struct {
	repo         repository.GrupoRepository
	productoRepo repository.ProductoRepository
}

func NewGrupoService(repo repository.GrupoRepository, productoRepo repository.ProductoRepository) GrupoService {
	return &grupoService{repo: repo, productoRepo: productoRepo}
}

func mapGrupo(g model.Grupo) dto.GrupoResponse {
	return dto.GrupoResponse{ID: g.ID, Nombre: g.Nombre, Precio: g.Precio}
}

func (s *grupoService) Crear(ctx context.Context, req dto.GrupoRequest) (dto.GrupoResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return dto.GrupoResponse{}, apperror.Validation("el nombre del grupo es requerido")
	}
	if req.Precio < 0 {
		return dto.GrupoResponse{}, apperror.Validation("el precio no puede ser negativo")
	}
	g := &model.Grupo{Nombre: nombre, Precio: req.Precio}
	if err := s.repo.Crear(ctx, g); err != nil {
		return dto.GrupoResponse{}, duplicado("crear grupo", err, "ya existe un grupo llamado %s", nombre)
	}
	return mapGrupo(*g), nil
}

func (s *grupoService) Listar(ctx context.Context) ([]dto.GrupoResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, storeErr("listar grupos", err)
	}
	result := make([]dto.GrupoResponse, 0, len(list))
	for _, g := range list {
		result = append(result, mapGrupo(g))
	}
	return result, nil
}

func (s *grupoService) Actualizar(ctx context.Context, id int64, req dto.GrupoRequest) (dto.GrupoResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return dto.GrupoResponse{}, apperror.Validation("el nombre del grupo es requerido")
	}
	if req.Precio < 0 {
		return dto.GrupoResponse{}, apperror.Validation("el precio no puede ser negativo")
	}

	var resp dto.GrupoResponse
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		g, err := repo.ObtenerPorID(ctx, id)
		if err != nil {
			return noEncontrado("obtener grupo", err, "grupo %d no encontrado", id)
		}
		g.Nombre = nombre
		g.Precio = req.Precio
		if err := repo.Actualizar(ctx, g); err != nil {
			return duplicado("actualizar grupo", err, "ya existe un grupo llamado %s", nombre)
		}
		n, err := s.productoRepo.WithTx(tx).ActualizarPrecioGrupo(ctx, id, req.Precio)
		if err != nil {
			return storeErr("actualizar precios del grupo", err)
		}
		resp = mapGrupo(*g)
		resp.ProductosActualizados = n
		return nil
	})
	if err != nil {
		return dto.GrupoResponse{}, err
	}
	log.Info().Int64("grupo_id", id).Int64("precio", req.Precio).
		Int64("productos", resp.ProductosActualizados).Msg("precio de grupo actualizado")
	return resp, nil
}

func (s *grupoService) Eliminar(ctx context.Context, id int64) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.ObtenerPorID(ctx, id); err != nil {
			return noEncontrado("obtener grupo", err, "grupo %d no encontrado", id)
		}
		if err := s.productoRepo.WithTx(tx).DesvincularGrupo(ctx, id); err != nil {
			return storeErr("desvincular productos del grupo", err)
		}
		return storeErr("eliminar grupo", repo.Eliminar(ctx, id))
	})
}
