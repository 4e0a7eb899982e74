package model

import "time"

// Proveedor represents a supplier. RUT is the Chilean tax id, optional.
type Proveedor struct {
	ID        int64   `gorm:"primaryKey"`
	RUT       *string `gorm:"column:rut"`
	Nombre    string  `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Codigos []CodigoProveedor `gorm:"foreignKey:ProveedorID;constraint:OnDelete:CASCADE"`
}

func (Proveedor) TableName() string { return "proveedores" }
