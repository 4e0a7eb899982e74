package repository

import (
	"context"

	"negocioapp/internal/model"

	"gorm.io/gorm"
)

type GrupoRepository interface {
	Crear(ctx context.Context, g *model.Grupo) error
	Listar(ctx context.Context) ([]model.Grupo, error)
	ObtenerPorID(ctx context.Context, id int64) (*model.Grupo, error)
	Actualizar(ctx context.Context, g *model.Grupo) error
	Eliminar(ctx context.Context, id int64) error

	WithTx(tx *gorm.DB) GrupoRepository
	DB() *gorm.DB
}

type grupoRepository struct{ db *gorm.DB }

func NewGrupoRepository(db *gorm.DB) GrupoRepository {
	return &grupoRepository{db: db}
}

func (r *grupoRepository) WithTx(tx *gorm.DB) GrupoRepository { return &grupoRepository{db: tx} }

func (r *grupoRepository) DB() *gorm.DB { return r.db }

func (r *grupoRepository) Crear(ctx context.Context, g *model.Grupo) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *grupoRepository) Listar(ctx context.Context) ([]model.Grupo, error) {
	var list []model.Grupo
	err := r.db.WithContext(ctx).Order("nombre asc").Find(&list).Error
	return list, err
}

func (r *grupoRepository) ObtenerPorID(ctx context.Context, id int64) (*model.Grupo, error) {
	var g model.Grupo
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *grupoRepository) Actualizar(ctx context.Context, g *model.Grupo) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *grupoRepository) Eliminar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Grupo{}, id).Error
}
