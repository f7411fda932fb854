package model

import (
	"time"

	"gorm.io/gorm"
)

type Subject struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex"`
	Code        string         `json:"code" gorm:"not null;uniqueIndex"`
	Description string         `json:"description,omitempty"`
	Image       *string        `json:"image,omitempty"`
	Price       float64        `json:"price" gorm:"default:0"`
	IsPremium   bool           `json:"is_premium" gorm:"default:false"`
	Chapters    []Chapter      `json:"chapters,omitempty" gorm:"foreignKey:SubjectID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
