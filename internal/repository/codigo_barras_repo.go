package repository

import (
	"context"

	"negocioapp/internal/model"

	"gorm.io/gorm"
)

type CodigoBarrasRepository interface {
	Create(ctx context.Context, c *model.CodigoBarras) error
	FindByID(ctx context.Context, id int64) (*model.CodigoBarras, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.CodigoBarras, error)
	List(ctx context.Context) ([]model.CodigoBarras, error)
	ListByProducto(ctx context.Context, productoID int64) ([]model.CodigoBarras, error)
	Update(ctx context.Context, c *model.CodigoBarras) error
	Delete(ctx context.Context, id int64) error
	DeleteByProducto(ctx context.Context, productoID int64) error

	WithTx(tx *gorm.DB) CodigoBarrasRepository
	DB() *gorm.DB
}

type codigoBarrasRepo struct{ db *gorm.DB }

func NewCodigoBarrasRepository(db *gorm.DB) CodigoBarrasRepository {
	return &codigoBarrasRepo{db: db}
}

func (r *codigoBarrasRepo) WithTx(tx *gorm.DB) CodigoBarrasRepository {
	return &codigoBarrasRepo{db: tx}
}

func (r *codigoBarrasRepo) DB() *gorm.DB { return r.db }

func (r *codigoBarrasRepo) Create(ctx context.Context, c *model.CodigoBarras) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *codigoBarrasRepo) FindByID(ctx context.Context, id int64) (*model.CodigoBarras, error) {
	var c model.CodigoBarras
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *codigoBarrasRepo) FindByCodigo(ctx context.Context, codigo string) (*model.CodigoBarras, error) {
	var c model.CodigoBarras
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *codigoBarrasRepo) List(ctx context.Context) ([]model.CodigoBarras, error) {
	var list []model.CodigoBarras
	err := r.db.WithContext(ctx).Order("producto_id ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *codigoBarrasRepo) ListByProducto(ctx context.Context, productoID int64) ([]model.CodigoBarras, error) {
	var list []model.CodigoBarras
	err := r.db.WithContext(ctx).Where("producto_id = ?", productoID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *codigoBarrasRepo) Update(ctx context.Context, c *model.CodigoBarras) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *codigoBarrasRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.CodigoBarras{}, id).Error
}

func (r *codigoBarrasRepo) DeleteByProducto(ctx context.Context, productoID int64) error {
	return r.db.WithContext(ctx).Where("producto_id = ?", productoID).Delete(&model.CodigoBarras{}).Error
}
