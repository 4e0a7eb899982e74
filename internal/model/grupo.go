package model

import "time"

// Grupo is a pricing bucket: member products carry the group's price.
type Grupo struct {
	ID        int64  `gorm:"primaryKey"`
	Nombre    string `gorm:"uniqueIndex;not null"`
	Precio    int64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Grupo) TableName() string { return "grupos" }
