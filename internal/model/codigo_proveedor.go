package model

import "time"

// CodigoProveedor is a supplier's own identifier for a product. The pair
// (ProveedorID, Codigo) is unique.
type CodigoProveedor struct {
	ID          int64  `gorm:"primaryKey"`
	ProveedorID int64  `gorm:"not null;index;uniqueIndex:idx_proveedor_codigo"`
	ProductoID  int64  `gorm:"not null;index"`
	Codigo      string `gorm:"not null;uniqueIndex:idx_proveedor_codigo"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CodigoProveedor) TableName() string { return "codigos_proveedor" }
