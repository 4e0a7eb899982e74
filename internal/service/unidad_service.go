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

type UnidadService interface {
	Crear(ctx context.Context, req dto.UnidadRequest) (dto.UnidadResponse, error)
	Listar(ctx context.Context) ([]dto.UnidadResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.UnidadRequest) (dto.UnidadResponse, error)
	Eliminar(ctx context.Context, id int64) error
}

type unidadService struct {
	repo         repository.UnidadRepository
	productoRepo repository.ProductoRepository
}

func NewUnidadService(repo repository.UnidadRepository, productoRepo repository.ProductoRepository) UnidadService {
	return &unidadService{repo: repo, productoRepo: productoRepo}
}

func mapUnidad(u model.Unidad) dto.UnidadResponse {
	return dto.UnidadResponse{ID: u.ID, Plural: u.Plural, Singular: u.Singular, SufijoPrecio: u.SufijoPrecio}
}

func normalizarUnidad(req dto.UnidadRequest) (dto.UnidadRequest, error) {
	req.Plural = strings.TrimSpace(req.Plural)
	req.Singular = strings.TrimSpace(req.Singular)
	req.SufijoPrecio = strings.TrimSpace(req.SufijoPrecio)
	if req.Plural == "" || req.Singular == "" || req.SufijoPrecio == "" {
		return req, apperror.Validation("plural, singular y sufijo de precio son requeridos")
	}
	return req, nil
}

func (s *unidadService) Crear(ctx context.Context, req dto.UnidadRequest) (dto.UnidadResponse, error) {
	req, err := normalizarUnidad(req)
	if err != nil {
		return dto.UnidadResponse{}, err
	}
	u := &model.Unidad{Plural: req.Plural, Singular: req.Singular, SufijoPrecio: req.SufijoPrecio}
	if err := s.repo.Crear(ctx, u); err != nil {
		return dto.UnidadResponse{}, duplicado("crear unidad", err, "ya existe una unidad con ese plural, singular o sufijo")
	}
	return mapUnidad(*u), nil
}

func (s *unidadService) Listar(ctx context.Context) ([]dto.UnidadResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, storeErr("listar unidades", err)
	}
	result := make([]dto.UnidadResponse, 0, len(list))
	for _, u := range list {
		result = append(result, mapUnidad(u))
	}
	return result, nil
}

func (s *unidadService) Actualizar(ctx context.Context, id int64, req dto.UnidadRequest) (dto.UnidadResponse, error) {
	req, err := normalizarUnidad(req)
	if err != nil {
		return dto.UnidadResponse{}, err
	}
	u, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return dto.UnidadResponse{}, noEncontrado("obtener unidad", err, "unidad %d no encontrada", id)
	}
	u.Plural, u.Singular, u.SufijoPrecio = req.Plural, req.Singular, req.SufijoPrecio
	if err := s.repo.Actualizar(ctx, u); err != nil {
		return dto.UnidadResponse{}, duplicado("actualizar unidad", err, "ya existe una unidad con ese plural, singular o sufijo")
	}
	return mapUnidad(*u), nil
}

func (s *unidadService) Eliminar(ctx context.Context, id int64) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.ObtenerPorID(ctx, id); err != nil {
			return noEncontrado("obtener unidad", err, "unidad %d no encontrada", id)
		}
		if err := s.productoRepo.WithTx(tx).DesvincularUnidad(ctx, id); err != nil {
			return storeErr("desvincular productos de la unidad", err)
		}
		return storeErr("eliminar unidad", repo.Eliminar(ctx, id))
	})
}
