package model

import "time"

// Producto is a catalog item. Precio is in whole pesos. A product assigned to a
// Grupo takes the group's price and follows later group price edits.
type Producto struct {
	ID           int64  `gorm:"primaryKey"`
	Nombre       string `gorm:"uniqueIndex;not null"`
	CategoriaID  *int64 `gorm:"index"`
	GrupoID      *int64 `gorm:"index"`
	Precio       int64  `gorm:"not null;default:0"`
	UnidadID     *int64 `gorm:"index"`
	AccesoRapido bool   `gorm:"not null;default:false"`
	// Atajo is a function-key label (F1..F12); NULL when unassigned
	Atajo     *string `gorm:"type:varchar(3);uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Categoria        *Categoria        `gorm:"foreignKey:CategoriaID;constraint:OnDelete:SET NULL"`
	Grupo            *Grupo            `gorm:"foreignKey:GrupoID;constraint:OnDelete:SET NULL"`
	Unidad           *Unidad           `gorm:"foreignKey:UnidadID;constraint:OnDelete:SET NULL"`
	CodigosBarras    []CodigoBarras    `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
	CodigosProveedor []CodigoProveedor `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default English pluralization.
func (Producto) TableName() string { return "productos" }
