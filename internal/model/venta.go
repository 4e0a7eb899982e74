package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Venta is a posted sale. Total is the sum of each line rounded to the
// nearest ten. CreatedAt is stored in UTC.
type Venta struct {
	ID         int64 `gorm:"primaryKey"`
	Total      int64 `gorm:"not null"`
	MetodoPago *string
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time

	Items []VentaItem `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

func (Venta) TableName() string { return "ventas" }

// BeforeSave keeps created_at in UTC. Range queries compare the stored
// value against UTC bounds, and sqlite compares timestamps as text.
func (v *Venta) BeforeSave(tx *gorm.DB) error {
	if !v.CreatedAt.IsZero() {
		v.CreatedAt = v.CreatedAt.UTC()
	}
	return nil
}

// VentaItem is one line of a sale. ProductoID is NULL for provisional items and
// for products deleted after the sale; NombreProducto keeps the history readable.
// Precio and Subtotal are frozen at sale time.
type VentaItem struct {
	ID             int64           `gorm:"primaryKey"`
	VentaID        int64           `gorm:"not null;index"`
	ProductoID     *int64          `gorm:"index"`
	NombreProducto string          `gorm:"not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Precio         int64           `gorm:"not null"`
	Subtotal       int64           `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnDelete:SET NULL"`
}

func (VentaItem) TableName() string { return "venta_items" }
