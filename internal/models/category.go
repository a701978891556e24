package models

import (
	"time"
)

// Category 分类（原 Node）
type Category struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedBy   uint       `gorm:"not null;index" json:"created_by"`
	Creator     User       `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"creator"`
	Title       string     `gorm:"uniqueIndex;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      Status     `gorm:"column:deleted_at;index" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	EditedAt    *time.Time `json:"edited_at"`
}
