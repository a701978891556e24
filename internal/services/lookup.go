package services

import (
	"context"
	"errors"

	"agora/internal/models"
	"agora/internal/repository"
)

// 以下查询把 repository.ErrNotFound 翻译成带动作和实体的应用错误

func findUser(ctx context.Context, store repository.Store, action, entity string, id uint) (*models.User, error) {
	user, err := store.Users().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, userMissing(action, entity, id)
	}
	return user, err
}

// findLiveUser 已删除的用户按不存在处理
func findLiveUser(ctx context.Context, store repository.Store, action, entity string, id uint) (*models.User, error) {
	user, err := findUser(ctx, store, action, entity, id)
	if err != nil {
		return nil, err
	}
	if user.Status.IsDeleted() {
		return nil, newError(ErrUserNotFound, action, entity, "User has been deleted.")
	}
	return user, nil
}

func findPost(ctx context.Context, store repository.Store, action, entity string, id uint) (*models.Post, error) {
	post, err := store.Posts().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrPostNotFound, action, entity, "Post does not exist with ID %d.", id)
	}
	return post, err
}

func findCategory(ctx context.Context, store repository.Store, action, entity string, id uint) (*models.Category, error) {
	category, err := store.Categories().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrCategoryNotFound, action, entity, "Category does not exist with ID %d.", id)
	}
	return category, err
}

func findComment(ctx context.Context, store repository.Store, action, entity string, id uint) (*models.Comment, error) {
	comment, err := store.Comments().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrCommentNotFound, action, entity, "Comment does not exist with ID %d.", id)
	}
	return comment, err
}

// lookupUser is the public "find" of a user, tombstones included.
func lookupUser(ctx context.Context, store repository.Store, id uint) (*models.User, error) {
	user, err := store.Users().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrUserNotFound, ActionFind, entityUser, "User %d does not exist.", id)
	}
	return user, err
}
