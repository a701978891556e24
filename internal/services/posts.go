package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/utils"
)

const entityPost = "Post"

// 分类下帖子的排序方式
const (
	SortNew = "new"
	SortHot = "hot"
)

type CreatePostInput struct {
	UserID     uint
	CategoryID uint
	Title      string
	Type       models.PostType
	Content    string
}

type PostService struct {
	store repository.Store
	now   func() time.Time
}

func NewPostService(store repository.Store) *PostService {
	return &PostService{store: store, now: time.Now}
}

func (s *PostService) Create(ctx context.Context, actor *Actor, in CreatePostInput) (*models.Post, error) {
	if err := RequireActor(actor, ActionCreate, entityPost); err != nil {
		return nil, err
	}
	if !actor.Is(in.UserID) {
		return nil, newError(ErrForbidden, ActionCreate, entityPost, "You cannot create a post for someone else!")
	}
	user, err := findLiveUser(ctx, s.store, ActionCreate, entityPost, in.UserID)
	if err != nil {
		return nil, err
	}
	category, err := findCategory(ctx, s.store, ActionCreate, entityPost, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.Status.IsDeleted() {
		return nil, newError(ErrDeleted, ActionCreate, entityPost, "Category has been deleted.")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, missingTitle(ActionCreate, entityPost)
	}
	if !in.Type.Valid() {
		return nil, invalid(ActionCreate, entityPost, "Type must be '%s' or '%s'.", models.PostTypeText, models.PostTypeURL)
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, missingContent(ActionCreate, entityPost)
	}

	post := &models.Post{
		UserID:     user.ID,
		CategoryID: category.ID,
		Title:      title,
		Type:       in.Type,
		Content:    in.Content,
	}
	if err := s.store.Posts().Create(ctx, post); err != nil {
		return nil, err
	}
	post.User = *user
	post.Category = *category
	return post, nil
}

func (s *PostService) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	return findPost(ctx, s.store, ActionFind, entityPost, id)
}

// ListByCategory 返回分类下的帖子，sort 为 SortHot 时按热度排序，否则按时间倒序
func (s *PostService) ListByCategory(ctx context.Context, categoryID uint, sortBy string) ([]*models.Post, error) {
	posts, err := s.store.Posts().ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if sortBy == SortHot {
		now := s.now()
		score := make(map[uint]float64, len(posts))
		for _, p := range posts {
			score[p.ID] = utils.HotScore(p.Upvotes, p.Downvotes, now.Sub(p.CreatedAt))
		}
		sort.SliceStable(posts, func(i, j int) bool {
			return score[posts[i].ID] > score[posts[j].ID]
		})
	}
	return posts, nil
}

func (s *PostService) ListByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	if _, err := lookupUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	return s.store.Posts().ListByUser(ctx, userID)
}

func (s *PostService) Update(ctx context.Context, actor *Actor, id uint, content string) (*models.Post, error) {
	post, err := s.owned(ctx, actor, ActionEdit, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, missingContent(ActionEdit, entityPost)
	}
	if !post.Editable() {
		return nil, invalid(ActionEdit, entityPost, "Only text posts are updateable.")
	}

	now := s.now()
	if err := s.store.Posts().UpdateContent(ctx, post.ID, content, now); err != nil {
		return nil, err
	}
	post.Content, post.EditedAt = content, &now
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, actor *Actor, id uint) (*models.Post, error) {
	post, err := s.owned(ctx, actor, ActionDelete, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.store.Posts().SoftDelete(ctx, post.ID, now); err != nil {
		return nil, err
	}
	post.Status = models.Deleted(now)
	return post, nil
}

func (s *PostService) owned(ctx context.Context, actor *Actor, action string, id uint) (*models.Post, error) {
	if err := RequireActor(actor, action, entityPost); err != nil {
		return nil, err
	}
	post, err := findPost(ctx, s.store, action, entityPost, id)
	if err != nil {
		return nil, err
	}
	if !actor.Is(post.UserID) {
		return nil, newError(ErrForbidden, action, entityPost, "You cannot %s a post that you did not create!", action)
	}
	if post.Status.IsDeleted() {
		return nil, deletedError(action, entityPost)
	}
	return post, nil
}
