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

// CategoriaService defines business operations for product categories.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CategoriaRequest) (dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.CategoriaRequest) (dto.CategoriaResponse, error)
	// Eliminar removes the category; its products become uncategorized.
	Eliminar(ctx context.Context, id int64) error
}

type categoriaService struct {
	repo         repository.CategoriaRepository
	productoRepo repository.ProductoRepository
}

func NewCategoriaService(repo repository.CategoriaRepository, productoRepo repository.ProductoRepository) CategoriaService {
	return &categoriaService{repo: repo, productoRepo: productoRepo}
}

// mapCategoria converts a model to a DTO response.
func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{ID: c.ID, Nombre: c.Nombre}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CategoriaRequest) (dto.CategoriaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return dto.CategoriaResponse{}, apperror.Validation("el nombre de la categoría es requerido")
	}
	c := &model.Categoria{Nombre: nombre}
	if err := s.repo.Crear(ctx, c); err != nil {
		return dto.CategoriaResponse{}, duplicado("crear categoría", err, "ya existe una categoría llamada %s", nombre)
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, storeErr("listar categorías", err)
	}
	result := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategoria(c))
	}
	return result, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id int64, req dto.CategoriaRequest) (dto.CategoriaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return dto.CategoriaResponse{}, apperror.Validation("el nombre de la categoría es requerido")
	}
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return dto.CategoriaResponse{}, noEncontrado("obtener categoría", err, "categoría %d no encontrada", id)
	}
	c.Nombre = nombre
	if err := s.repo.Actualizar(ctx, c); err != nil {
		return dto.CategoriaResponse{}, duplicado("actualizar categoría", err, "ya existe una categoría llamada %s", nombre)
	}
	return mapCategoria(*c), nil
}

func (s *categoriaService) Eliminar(ctx context.Context, id int64) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.ObtenerPorID(ctx, id); err != nil {
			return noEncontrado("obtener categoría", err, "categoría %d no encontrada", id)
		}
		if err := s.productoRepo.WithTx(tx).DesvincularCategoria(ctx, id); err != nil {
			return storeErr("desvincular productos de la categoría", err)
		}
		return storeErr("eliminar categoría", repo.Eliminar(ctx, id))
	})
}
