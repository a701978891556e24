package models

import (
	"time"
)

// Bookmark 收藏模型 - 用户收藏文章或评论
type Bookmark struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SubjectType Subject   `gorm:"type:varchar(16);not null;uniqueIndex:idx_bookmark_subject_user" json:"subject_type"`
	SubjectID   uint      `gorm:"not null;uniqueIndex:idx_bookmark_subject_user" json:"subject_id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_bookmark_subject_user" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}
