package models

import (
	"time"
)

type PostType string

const (
	PostTypeText PostType = "Text"
	PostTypeURL  PostType = "URL"
)

// Valid reports whether t is one of the known post types.
func (t PostType) Valid() bool {
	return t == PostTypeText || t == PostTypeURL
}

type Post struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CategoryID uint       `gorm:"not null;index" json:"category_id"`
	Category   Category   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Title      string     `gorm:"not null" json:"title"`
	Type       PostType   `gorm:"type:varchar(8);not null" json:"type"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Upvotes    int        `gorm:"not null;default:0" json:"upvotes"`
	Downvotes  int        `gorm:"not null;default:0" json:"downvotes"`
	Status     Status     `gorm:"column:deleted_at;index" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	EditedAt   *time.Time `json:"edited_at"`
}

// Editable 只有文本帖子可以在创建后修改
func (p *Post) Editable() bool {
	return p.Type == PostTypeText
}
