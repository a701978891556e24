package repository

import (
	"context"

	"gorm.io/gorm"

	"agora/internal/models"
)

// BookmarkRepository 收藏集合，(subject_type, subject_id, user_id) 唯一
type BookmarkRepository interface {
	Exists(ctx context.Context, subject models.Subject, subjectID, userID uint) (bool, error)
	Create(ctx context.Context, bookmark *models.Bookmark) error
	Delete(ctx context.Context, subject models.Subject, subjectID, userID uint) (bool, error)
	// SubjectIDs lists the ids a user bookmarked, oldest bookmark first.
	SubjectIDs(ctx context.Context, subject models.Subject, userID uint) ([]uint, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository { return &bookmarkRepository{db: db} }

func (r *bookmarkRepository) Exists(ctx context.Context, subject models.Subject, subjectID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("subject_type = ? AND subject_id = ? AND user_id = ?", subject, subjectID, userID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	return translate(r.db.WithContext(ctx).Create(bookmark).Error)
}

func (r *bookmarkRepository) Delete(ctx context.Context, subject models.Subject, subjectID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ? AND user_id = ?", subject, subjectID, userID).
		Delete(&models.Bookmark{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *bookmarkRepository) SubjectIDs(ctx context.Context, subject models.Subject, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("subject_type = ? AND user_id = ?", subject, userID).
		Order("created_at ASC, id ASC").
		Pluck("subject_id", &ids).Error
	return ids, translate(err)
}
