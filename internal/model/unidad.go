package model

import "time"

// Unidad of sale. SufijoPrecio is shown next to prices, e.g. "/kg".
type Unidad struct {
	ID           int64  `gorm:"primaryKey"`
	Plural       string `gorm:"uniqueIndex;not null"`
	Singular     string `gorm:"uniqueIndex;not null"`
	SufijoPrecio string `gorm:"uniqueIndex;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Unidad) TableName() string { return "unidades" }
