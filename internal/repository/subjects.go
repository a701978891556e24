package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agora/internal/models"
)

// SubjectRow 帖子或评论上与计数相关的列
type SubjectRow struct {
	ID        uint
	Upvotes   int
	Downvotes int
	Status    models.Status `gorm:"column:deleted_at"`
}

// SubjectRepository reads and adjusts the counters carried on post and
// comment rows.
type SubjectRepository interface {
	// Lock loads the subject row, taking a row lock where the database
	// supports one, so that concurrent ledger changes on the same subject
	// serialize.
	Lock(ctx context.Context, subject models.Subject, id uint) (*SubjectRow, error)
	// Adjust moves the counter for dir by delta. Decrements stop at zero.
	Adjust(ctx context.Context, subject models.Subject, id uint, dir models.Direction, delta int) error
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository { return &subjectRepository{db: db} }

func (r *subjectRepository) Lock(ctx context.Context, subject models.Subject, id uint) (*SubjectRow, error) {
	if !subject.Valid() {
		return nil, fmt.Errorf("repository: unknown subject %q", subject)
	}
	var row SubjectRow
	err := r.db.WithContext(ctx).Table(subject.Table()).
		Select("id", "upvotes", "downvotes", "deleted_at").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func (r *subjectRepository) Adjust(ctx context.Context, subject models.Subject, id uint, dir models.Direction, delta int) error {
	if !subject.Valid() {
		return fmt.Errorf("repository: unknown subject %q", subject)
	}
	if delta == 0 {
		return nil
	}
	col := "upvotes"
	if dir == models.Down {
		col = "downvotes"
	}

	var expr clause.Expr
	if delta > 0 {
		expr = gorm.Expr(col+" + ?", delta)
	} else {
		n := -delta
		expr = gorm.Expr("CASE WHEN "+col+" > ? THEN "+col+" - ? ELSE 0 END", n, n)
	}

	res := r.db.WithContext(ctx).Table(subject.Table()).
		Where("id = ?", id).
		UpdateColumn(col, expr)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
