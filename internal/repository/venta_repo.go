package repository

import (
	"context"
	"time"

	"negocioapp/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VentaRepository interface {
	// Create inserts the sale together with its items.
	Create(ctx context.Context, v *model.Venta) error
	FindByID(ctx context.Context, id int64) (*model.Venta, error)
	// ListRango returns sales whose created_at lies in [desde, hasta], both
	// bounds inclusive and expressed in UTC, oldest first.
	ListRango(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error)
	UpdateMetodoPago(ctx context.Context, id int64, metodo *string) error
	UpdateTotal(ctx context.Context, id int64, total int64) error
	Delete(ctx context.Context, id int64) error

	FindItemByID(ctx context.Context, id int64) (*model.VentaItem, error)
	ListItems(ctx context.Context, ventaID int64) ([]model.VentaItem, error)
	CreateItem(ctx context.Context, it *model.VentaItem) error
	UpdateItem(ctx context.Context, it *model.VentaItem) error
	DeleteItem(ctx context.Context, id int64) error
	// DesvincularProducto keeps past items of a deleted product readable by
	// name while dropping the reference.
	DesvincularProducto(ctx context.Context, productoID int64) error

	WithTx(tx *gorm.DB) VentaRepository
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) WithTx(tx *gorm.DB) VentaRepository { return &ventaRepo{db: tx} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, v *model.Venta) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id int64) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) ListRango(ctx context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", desde.UTC(), hasta.UTC()).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("created_at ASC, id ASC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) UpdateMetodoPago(ctx context.Context, id int64, metodo *string) error {
	return r.db.WithContext(ctx).Model(&model.Venta{}).Where("id = ?", id).Update("metodo_pago", metodo).Error
}

func (r *ventaRepo) UpdateTotal(ctx context.Context, id int64, total int64) error {
	return r.db.WithContext(ctx).Model(&model.Venta{}).Where("id = ?", id).Update("total", total).Error
}

func (r *ventaRepo) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("venta_id = ?", id).Delete(&model.VentaItem{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.Venta{}, id).Error
}

func (r *ventaRepo) FindItemByID(ctx context.Context, id int64) (*model.VentaItem, error) {
	var it model.VentaItem
	if err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ventaRepo) ListItems(ctx context.Context, ventaID int64) ([]model.VentaItem, error) {
	var items []model.VentaItem
	err := r.db.WithContext(ctx).Where("venta_id = ?", ventaID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *ventaRepo) CreateItem(ctx context.Context, it *model.VentaItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(it).Error
}

func (r *ventaRepo) UpdateItem(ctx context.Context, it *model.VentaItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(it).Error
}

func (r *ventaRepo) DeleteItem(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.VentaItem{}, id).Error
}

func (r *ventaRepo) DesvincularProducto(ctx context.Context, productoID int64) error {
	return r.db.WithContext(ctx).Model(&model.VentaItem{}).
		Where("producto_id = ?", productoID).
		Update("producto_id", nil).Error
}
