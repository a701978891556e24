package models

import (
	"time"
)

type Comment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	PostID    uint       `gorm:"not null;index" json:"post_id"`
	Post      Post       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ReplyID   *uint      `gorm:"index" json:"reply_id"` // Nullable for top-level comments
	Reply     *Comment   `gorm:"foreignKey:ReplyID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"reply"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Upvotes   int        `gorm:"not null;default:0" json:"upvotes"`
	Downvotes int        `gorm:"not null;default:0" json:"downvotes"`
	Status    Status     `gorm:"column:deleted_at;index" json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at"`
}
