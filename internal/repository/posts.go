package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agora/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*models.Post, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Post, error)
	UpdateContent(ctx context.Context, id uint, content string, editedAt time.Time) error
	SoftDelete(ctx context.Context, id uint, at time.Time) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) preload() *gorm.DB {
	return r.db.Preload("User").Preload("Category")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error)
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.preload().WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) FindByIDs(ctx context.Context, ids []uint) ([]*models.Post, error) {
	var posts []*models.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := r.preload().WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error
	return posts, translate(err)
}

func (r *postRepository) ListByCategory(ctx context.Context, categoryID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.preload().WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, translate(err)
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.preload().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, translate(err)
}

func (r *postRepository) UpdateContent(ctx context.Context, id uint, content string, editedAt time.Time) error {
	return translate(r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "edited_at": editedAt}).Error)
}

func (r *postRepository) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	return softDelete(ctx, r.db, "posts", id, at)
}
