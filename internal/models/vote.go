package models

import (
	"time"
)

type Direction int

const (
	Up   Direction = 1
	Down Direction = -1
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Vote 投票记录，每个 (subject, user) 最多一条，由唯一索引保证
type Vote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SubjectType Subject   `gorm:"type:varchar(16);not null;uniqueIndex:idx_vote_subject_user" json:"subject_type"`
	SubjectID   uint      `gorm:"not null;uniqueIndex:idx_vote_subject_user" json:"subject_id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_vote_subject_user" json:"user_id"`
	Direction   Direction `gorm:"not null" json:"direction"` // 1 or -1
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
