package repository

import (
	"context"

	"negocioapp/internal/model"

	"gorm.io/gorm"
)

type CodigoProveedorRepository interface {
	Create(ctx context.Context, c *model.CodigoProveedor) error
	FindByID(ctx context.Context, id int64) (*model.CodigoProveedor, error)
	// FindByProveedorCodigo looks up the unique (proveedor, codigo) pair.
	FindByProveedorCodigo(ctx context.Context, proveedorID int64, codigo string) (*model.CodigoProveedor, error)
	ListByProveedor(ctx context.Context, proveedorID int64) ([]model.CodigoProveedor, error)
	ListByProducto(ctx context.Context, productoID int64) ([]model.CodigoProveedor, error)
	Update(ctx context.Context, c *model.CodigoProveedor) error
	Delete(ctx context.Context, id int64) error
	DeleteByProducto(ctx context.Context, productoID int64) error
	DeleteByProveedor(ctx context.Context, proveedorID int64) error

	WithTx(tx *gorm.DB) CodigoProveedorRepository
	DB() *gorm.DB
}

type codigoProveedorRepo struct{ db *gorm.DB }

func NewCodigoProveedorRepository(db *gorm.DB) CodigoProveedorRepository {
	return &codigoProveedorRepo{db: db}
}

func (r *codigoProveedorRepo) WithTx(tx *gorm.DB) CodigoProveedorRepository {
	return &codigoProveedorRepo{db: tx}
}

func (r *codigoProveedorRepo) DB() *gorm.DB { return r.db }

func (r *codigoProveedorRepo) Create(ctx context.Context, c *model.CodigoProveedor) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *codigoProveedorRepo) FindByID(ctx context.Context, id int64) (*model.CodigoProveedor, error) {
	var c model.CodigoProveedor
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *codigoProveedorRepo) FindByProveedorCodigo(ctx context.Context, proveedorID int64, codigo string) (*model.CodigoProveedor, error) {
	var c model.CodigoProveedor
	err := r.db.WithContext(ctx).
		Where("proveedor_id = ? AND codigo = ?", proveedorID, codigo).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *codigoProveedorRepo) ListByProveedor(ctx context.Context, proveedorID int64) ([]model.CodigoProveedor, error) {
	var list []model.CodigoProveedor
	err := r.db.WithContext(ctx).Where("proveedor_id = ?", proveedorID).Order("codigo ASC").Find(&list).Error
	return list, err
}

func (r *codigoProveedorRepo) ListByProducto(ctx context.Context, productoID int64) ([]model.CodigoProveedor, error) {
	var list []model.CodigoProveedor
	err := r.db.WithContext(ctx).Where("producto_id = ?", productoID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *codigoProveedorRepo) Update(ctx context.Context, c *model.CodigoProveedor) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *codigoProveedorRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.CodigoProveedor{}, id).Error
}

func (r *codigoProveedorRepo) DeleteByProducto(ctx context.Context, productoID int64) error {
	return r.db.WithContext(ctx).Where("producto_id = ?", productoID).Delete(&model.CodigoProveedor{}).Error
}

func (r *codigoProveedorRepo) DeleteByProveedor(ctx context.Context, proveedorID int64) error {
	return r.db.WithContext(ctx).Where("proveedor_id = ?", proveedorID).Delete(&model.CodigoProveedor{}).Error
}
