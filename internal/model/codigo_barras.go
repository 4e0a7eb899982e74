package model

import "time"

// CodigoBarras maps a barcode to exactly one product. Codigo is unique across
// the whole table, not per product.
type CodigoBarras struct {
	ID         int64  `gorm:"primaryKey"`
	ProductoID int64  `gorm:"not null;index"`
	Codigo     string `gorm:"uniqueIndex;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CodigoBarras) TableName() string { return "codigos_barras" }
