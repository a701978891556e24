package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/services"
)

const entityPost = "Post"

func postCacheKey(id uint) string {
	return fmt.Sprintf("post:detail:%d", id)
}

// invalidatePost 帖子、评论、投票有变化时清掉详情缓存
func (e *Env) invalidatePost(ctx context.Context, postID uint) {
	e.Cache.Delete(ctx, postCacheKey(postID))
}

// invalidateCategory 分类改名或删除后，分类下所有帖子的详情缓存失效
func (e *Env) invalidateCategory(ctx context.Context, categoryID uint) {
	posts, err := e.Services.Posts.ListByCategory(ctx, categoryID, services.SortNew)
	if err != nil {
		e.Log.Warn("cache invalidation failed", zap.Uint("category_id", categoryID), zap.Error(err))
		return
	}
	keys := make([]string, len(posts))
	for i, p := range posts {
		keys[i] = postCacheKey(p.ID)
	}
	e.Cache.Delete(ctx, keys...)
}

// invalidateUser 用户改名或删除后，其发帖和评论所在帖子的详情缓存失效
func (e *Env) invalidateUser(ctx context.Context, userID uint) {
	posts, err := e.Services.Posts.ListByUser(ctx, userID)
	if err != nil {
		e.Log.Warn("cache invalidation failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	comments, err := e.Services.Comments.ListByUser(ctx, userID)
	if err != nil {
		e.Log.Warn("cache invalidation failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	seen := make(map[uint]bool, len(posts)+len(comments))
	keys := make([]string, 0, len(posts)+len(comments))
	add := func(id uint) {
		if !seen[id] {
			seen[id] = true
			keys = append(keys, postCacheKey(id))
		}
	}
	for _, p := range posts {
		add(p.ID)
	}
	for _, c := range comments {
		add(c.PostID)
	}
	e.Cache.Delete(ctx, keys...)
}

type PostHandler struct {
	*Env
}

func NewPostHandler(env *Env) *PostHandler {
	return &PostHandler{Env: env}
}

func (h *PostHandler) Create(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if err := services.RequireActor(actor, services.ActionCreate, entityPost); err != nil {
		h.fail(c, err)
		return
	}
	in, ok := h.bind(c, services.ActionCreate, entityPost)
	if !ok {
		return
	}
	userID, ok := in.id("userId")
	if !ok {
		h.fail(c, invalidID(services.ActionCreate, entityPost, "User"))
		return
	}
	categoryID, ok := in.id("categoryId")
	if !ok {
		h.fail(c, invalidID(services.ActionCreate, entityPost, "Category"))
		return
	}

	post, err := h.Services.Posts.Create(c.Request.Context(), actor, services.CreatePostInput{
		UserID:     userID,
		CategoryID: categoryID,
		Title:      in["title"],
		Type:       models.PostType(in["type"]),
		Content:    in["content"],
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, entityPost, "created", newPostView(post))
}

// Show 帖子详情及评论树。详情按帖子缓存，收藏状态按当前用户单独计算
func (h *PostHandler) Show(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionFind, entityPost)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	view, err := h.detail(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if actor := middleware.CurrentActor(c); actor != nil {
		bookmarked, err := h.Services.Bookmarks.IsBookmarked(ctx, models.SubjectPost, id, actor.UserID)
		if err != nil {
			h.fail(c, err)
			return
		}
		view.IsBookmarked = &bookmarked
	}
	success(c, http.StatusOK, entityPost, "retrieved", view)
}

func (h *PostHandler) detail(ctx context.Context, id uint) (*PostView, error) {
	key := postCacheKey(id)
	if data, ok := h.Cache.Get(ctx, key); ok {
		var view PostView
		if err := json.Unmarshal(data, &view); err == nil {
			return &view, nil
		}
	}

	post, err := h.Services.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	forest, err := h.Services.Comments.PostForest(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	view := newPostView(post)
	view.Comments = newForestView(forest)

	if data, err := json.Marshal(view); err == nil {
		h.Cache.Set(ctx, key, data, h.CacheTTL)
	} else {
		h.Log.Warn("cache encode failed", zap.Uint("post_id", id), zap.Error(err))
	}
	return view, nil
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionEdit, entityPost)
	if !ok {
		return
	}
	in, ok := h.bind(c, services.ActionEdit, entityPost)
	if !ok {
		return
	}
	post, err := h.Services.Posts.Update(c.Request.Context(), middleware.CurrentActor(c), id, in["content"])
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidatePost(c.Request.Context(), post.ID)
	success(c, http.StatusOK, entityPost, "updated", newPostView(post))
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionDelete, entityPost)
	if !ok {
		return
	}
	post, err := h.Services.Posts.Delete(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidatePost(c.Request.Context(), post.ID)
	success(c, http.StatusOK, entityPost, "deleted", newPostView(post))
}
