package repository

import (
	"context"

	"negocioapp/internal/model"

	"gorm.io/gorm"
)

type UnidadRepository interface {
	Crear(ctx context.Context, u *model.Unidad) error
	Listar(ctx context.Context) ([]model.Unidad, error)
	ObtenerPorID(ctx context.Context, id int64) (*model.Unidad, error)
	Actualizar(ctx context.Context, u *model.Unidad) error
	Eliminar(ctx context.Context, id int64) error

	WithTx(tx *gorm.DB) UnidadRepository
	DB() *gorm.DB
}

type unidadRepository struct{ db *gorm.DB }

func NewUnidadRepository(db *gorm.DB) UnidadRepository {
	return &unidadRepository{db: db}
}

func (r *unidadRepository) WithTx(tx *gorm.DB) UnidadRepository { return &unidadRepository{db: tx} }

func (r *unidadRepository) DB() *gorm.DB { return r.db }

func (r *unidadRepository) Crear(ctx context.Context, u *model.Unidad) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *unidadRepository) Listar(ctx context.Context) ([]model.Unidad, error) {
	var list []model.Unidad
	err := r.db.WithContext(ctx).Order("singular asc").Find(&list).Error
	return list, err
}

func (r *unidadRepository) ObtenerPorID(ctx context.Context, id int64) (*model.Unidad, error) {
	var u model.Unidad
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *unidadRepository) Actualizar(ctx context.Context, u *model.Unidad) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *unidadRepository) Eliminar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Unidad{}, id).Error
}
