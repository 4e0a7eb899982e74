package model

import "time"

// Categoria classifies products. Deleting one leaves its products uncategorized.
type Categoria struct {
	ID        int64  `gorm:"primaryKey"`
	Nombre    string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }
