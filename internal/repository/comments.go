package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agora/internal/models"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id uint) (*models.Comment, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*models.Comment, error)
	// ListByPost returns every comment of the post, tombstones included,
	// in creation order.
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Comment, error)
	UpdateContent(ctx context.Context, id uint, content string, editedAt time.Time) error
	SoftDelete(ctx context.Context, id uint, at time.Time) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) preload() *gorm.DB {
	return r.db.Preload("User").Preload("Post").Preload("Reply").Preload("Reply.User")
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error)
}

func (r *commentRepository) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.preload().WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *commentRepository) FindByIDs(ctx context.Context, ids []uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	if len(ids) == 0 {
		return comments, nil
	}
	err := r.preload().WithContext(ctx).Where("id IN ?", ids).Find(&comments).Error
	return comments, translate(err)
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.preload().WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, translate(err)
}

func (r *commentRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.preload().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, translate(err)
}

func (r *commentRepository) UpdateContent(ctx context.Context, id uint, content string, editedAt time.Time) error {
	return translate(r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "edited_at": editedAt}).Error)
}

func (r *commentRepository) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	return softDelete(ctx, r.db, "comments", id, at)
}
