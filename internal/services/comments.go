package services

import (
	"context"
	"strings"
	"time"

	"agora/internal/models"
	"agora/internal/repository"
)

const entityComment = "Comment"

type CreateCommentInput struct {
	PostID  uint
	UserID  uint
	Content string
	ReplyID *uint
}

type CommentService struct {
	store repository.Store
	now   func() time.Time
}

func NewCommentService(store repository.Store) *CommentService {
	return &CommentService{store: store, now: time.Now}
}

// Create 创建评论。回复必须指向同一帖子下未删除的评论，
// reply_id 创建后不可修改，因此不会出现环。
func (s *CommentService) Create(ctx context.Context, actor *Actor, in CreateCommentInput) (*models.Comment, error) {
	if err := RequireActor(actor, ActionCreate, entityComment); err != nil {
		return nil, err
	}
	if !actor.Is(in.UserID) {
		return nil, newError(ErrForbidden, ActionCreate, entityComment, "You cannot create a comment for someone else!")
	}
	user, err := findLiveUser(ctx, s.store, ActionCreate, entityComment, in.UserID)
	if err != nil {
		return nil, err
	}
	post, err := findPost(ctx, s.store, ActionCreate, entityComment, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.Status.IsDeleted() {
		return nil, newError(ErrDeleted, ActionCreate, entityComment, "Post has been deleted.")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, missingContent(ActionCreate, entityComment)
	}

	if in.ReplyID != nil {
		parent, err := findComment(ctx, s.store, ActionCreate, entityComment, *in.ReplyID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != post.ID {
			return nil, invalid(ActionCreate, entityComment, "Reply must belong to the same post.")
		}
		if parent.Status.IsDeleted() {
			return nil, newError(ErrDeleted, ActionCreate, entityComment, "Comment %d has been deleted.", parent.ID)
		}
	}

	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  user.ID,
		ReplyID: in.ReplyID,
		Content: in.Content,
	}
	if err := s.store.Comments().Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.store.Comments().FindByID(ctx, comment.ID)
}

func (s *CommentService) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	return findComment(ctx, s.store, ActionFind, entityComment, id)
}

// FindByPost 帖子下的全部评论（含已删除），按创建顺序
func (s *CommentService) FindByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := findPost(ctx, s.store, ActionFind, entityPost, postID); err != nil {
		return nil, err
	}
	return s.store.Comments().ListByPost(ctx, postID)
}

// Thread returns the comment and all of its transitive replies as a tree.
func (s *CommentService) Thread(ctx context.Context, id uint) (*ThreadNode, error) {
	comment, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.Comments().ListByPost(ctx, comment.PostID)
	if err != nil {
		return nil, err
	}
	node, ok := Subtree(comments, comment.ID)
	if !ok {
		return &ThreadNode{Comment: comment}, nil
	}
	return node, nil
}

// ThreadList is Thread flattened in depth-first pre-order.
func (s *CommentService) ThreadList(ctx context.Context, id uint) ([]*models.Comment, error) {
	node, err := s.Thread(ctx, id)
	if err != nil {
		return nil, err
	}
	return node.Flatten(), nil
}

// PostForest 帖子的完整评论树
func (s *CommentService) PostForest(ctx context.Context, postID uint) ([]*ThreadNode, error) {
	comments, err := s.store.Comments().ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return Forest(comments), nil
}

func (s *CommentService) ListByUser(ctx context.Context, userID uint) ([]*models.Comment, error) {
	if _, err := lookupUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	return s.store.Comments().ListByUser(ctx, userID)
}

func (s *CommentService) Update(ctx context.Context, actor *Actor, id uint, content string) (*models.Comment, error) {
	comment, err := s.owned(ctx, actor, ActionEdit, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, missingContent(ActionEdit, entityComment)
	}
	now := s.now()
	if err := s.store.Comments().UpdateContent(ctx, comment.ID, content, now); err != nil {
		return nil, err
	}
	comment.Content, comment.EditedAt = content, &now
	return comment, nil
}

// Delete 只软删除这一条评论，回复保留在原位
func (s *CommentService) Delete(ctx context.Context, actor *Actor, id uint) (*models.Comment, error) {
	comment, err := s.owned(ctx, actor, ActionDelete, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.store.Comments().SoftDelete(ctx, comment.ID, now); err != nil {
		return nil, err
	}
	comment.Status = models.Deleted(now)
	return comment, nil
}

func (s *CommentService) owned(ctx context.Context, actor *Actor, action string, id uint) (*models.Comment, error) {
	if err := RequireActor(actor, action, entityComment); err != nil {
		return nil, err
	}
	comment, err := findComment(ctx, s.store, action, entityComment, id)
	if err != nil {
		return nil, err
	}
	if !actor.Is(comment.UserID) {
		return nil, newError(ErrForbidden, action, entityComment, "You cannot %s a comment that you did not create!", action)
	}
	if comment.Status.IsDeleted() {
		return nil, deletedError(action, entityComment)
	}
	return comment, nil
}
