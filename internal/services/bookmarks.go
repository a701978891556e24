package services

import (
	"context"
	"errors"

	"agora/internal/models"
	"agora/internal/repository"
)

// BookmarkService 收藏集合，帖子和评论的收藏互相独立
type BookmarkService struct {
	store repository.Store
}

func NewBookmarkService(store repository.Store) *BookmarkService {
	return &BookmarkService{store: store}
}

func (s *BookmarkService) Bookmark(ctx context.Context, subject models.Subject, subjectID, userID uint) error {
	entity := subject.Entity()
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := lockSubject(ctx, tx, ActionBookmark, subject, subjectID); err != nil {
			return err
		}
		if _, err := findLiveUser(ctx, tx, ActionBookmark, entity, userID); err != nil {
			return err
		}
		exists, err := tx.Bookmarks().Exists(ctx, subject, subjectID, userID)
		if err != nil {
			return err
		}
		if exists {
			return alreadyBookmarked(entity)
		}
		err = tx.Bookmarks().Create(ctx, &models.Bookmark{SubjectType: subject, SubjectID: subjectID, UserID: userID})
		if errors.Is(err, repository.ErrDuplicate) {
			return alreadyBookmarked(entity)
		}
		return err
	})
}

// Unbookmark 已删除的对象也允许取消收藏
func (s *BookmarkService) Unbookmark(ctx context.Context, subject models.Subject, subjectID, userID uint) error {
	entity := subject.Entity()
	if !subject.Valid() {
		return invalid(ActionUnbookmark, entity, "Unknown subject.")
	}
	if _, err := s.store.Subjects().Lock(ctx, subject, subjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrSubjectNotFound, ActionUnbookmark, entity, "%s does not exist with ID %d.", entity, subjectID)
		}
		return err
	}
	removed, err := s.store.Bookmarks().Delete(ctx, subject, subjectID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return newError(ErrNotBookmarked, ActionUnbookmark, entity, "%s has not been bookmarked.", entity)
	}
	return nil
}

func (s *BookmarkService) IsBookmarked(ctx context.Context, subject models.Subject, subjectID, userID uint) (bool, error) {
	return s.store.Bookmarks().Exists(ctx, subject, subjectID, userID)
}

// PostBookmarks 用户收藏的帖子，按收藏先后
func (s *BookmarkService) PostBookmarks(ctx context.Context, userID uint) ([]*models.Post, error) {
	ids, err := s.subjectIDs(ctx, models.SubjectPost, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.store.Posts().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	out := make([]*models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// CommentBookmarks 用户收藏的评论，按收藏先后
func (s *BookmarkService) CommentBookmarks(ctx context.Context, userID uint) ([]*models.Comment, error) {
	ids, err := s.subjectIDs(ctx, models.SubjectComment, userID)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.Comments().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}
	out := make([]*models.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *BookmarkService) subjectIDs(ctx context.Context, subject models.Subject, userID uint) ([]uint, error) {
	if _, err := lookupUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	return s.store.Bookmarks().SubjectIDs(ctx, subject, userID)
}

func alreadyBookmarked(entity string) *Error {
	return newError(ErrAlreadyBookmarked, ActionBookmark, entity, "%s has already been bookmarked.", entity)
}
