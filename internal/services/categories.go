package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"agora/internal/models"
	"agora/internal/repository"
)

const entityCategory = "Category"

type CategoryService struct {
	store repository.Store
	now   func() time.Time
}

func NewCategoryService(store repository.Store) *CategoryService {
	return &CategoryService{store: store, now: time.Now}
}

func (s *CategoryService) Create(ctx context.Context, actor *Actor, createdBy uint, title, description string) (*models.Category, error) {
	if err := RequireActor(actor, ActionCreate, entityCategory); err != nil {
		return nil, err
	}
	if createdBy == 0 {
		return nil, invalid(ActionCreate, entityCategory, "Invalid user ID.")
	}
	if !actor.Is(createdBy) {
		return nil, newError(ErrForbidden, ActionCreate, entityCategory, "You cannot create a category for someone else!")
	}
	creator, err := findLiveUser(ctx, s.store, ActionCreate, entityCategory, createdBy)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, missingTitle(ActionCreate, entityCategory)
	}
	if err := s.checkTitle(ctx, ActionCreate, 0, title); err != nil {
		return nil, err
	}

	category := &models.Category{CreatedBy: creator.ID, Title: title, Description: description}
	if err := s.store.Categories().Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, ActionCreate, entityCategory, "Title already exists.")
		}
		return nil, err
	}
	category.Creator = *creator
	return category, nil
}

func (s *CategoryService) checkTitle(ctx context.Context, action string, self uint, title string) error {
	existing, err := s.store.Categories().FindByTitle(ctx, title)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return newError(ErrConflict, action, entityCategory, "Title already exists.")
	}
	return nil
}

func (s *CategoryService) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	return findCategory(ctx, s.store, ActionFind, entityCategory, id)
}

func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.store.Categories().List(ctx)
}

func (s *CategoryService) Update(ctx context.Context, actor *Actor, id uint, title, description string) (*models.Category, error) {
	category, err := s.owned(ctx, actor, ActionEdit, id)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, missingTitle(ActionEdit, entityCategory)
	}
	if err := s.checkTitle(ctx, ActionEdit, category.ID, title); err != nil {
		return nil, err
	}

	now := s.now()
	category.Title, category.Description, category.EditedAt = title, description, &now
	if err := s.store.Categories().Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, ActionEdit, entityCategory, "Title already exists.")
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, actor *Actor, id uint) (*models.Category, error) {
	category, err := s.owned(ctx, actor, ActionDelete, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.store.Categories().SoftDelete(ctx, category.ID, now); err != nil {
		return nil, err
	}
	category.Status = models.Deleted(now)
	return category, nil
}

// owned 加载分类并校验登录、归属和未删除
func (s *CategoryService) owned(ctx context.Context, actor *Actor, action string, id uint) (*models.Category, error) {
	if err := RequireActor(actor, action, entityCategory); err != nil {
		return nil, err
	}
	category, err := findCategory(ctx, s.store, action, entityCategory, id)
	if err != nil {
		return nil, err
	}
	if !actor.Is(category.CreatedBy) {
		return nil, newError(ErrForbidden, action, entityCategory, "You cannot %s a category that you did not create!", action)
	}
	if category.Status.IsDeleted() {
		return nil, deletedError(action, entityCategory)
	}
	return category, nil
}
