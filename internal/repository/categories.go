package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agora/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	FindByTitle(ctx context.Context, title string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	SoftDelete(ctx context.Context, id uint, at time.Time) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepository{db: db} }

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error)
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Preload("Creator").First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *categoryRepository) FindByTitle(ctx context.Context, title string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Preload("Creator").Where("title = ?", title).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).Preload("Creator").
		Where("deleted_at IS NULL").
		Order("id ASC").
		Find(&categories).Error
	return categories, translate(err)
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"title":       category.Title,
			"description": category.Description,
			"edited_at":   category.EditedAt,
		}).Error)
}

func (r *categoryRepository) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	return softDelete(ctx, r.db, "categories", id, at)
}
