package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/services"
	"agora/internal/utils"
)

const entityUser = "User"

type UserHandler struct {
	*Env
}

func NewUserHandler(env *Env) *UserHandler {
	return &UserHandler{Env: env}
}

func (h *UserHandler) Create(c *gin.Context) {
	in, ok := h.bind(c, services.ActionCreate, entityUser)
	if !ok {
		return
	}
	user, err := h.Services.Users.Create(c.Request.Context(), in["username"], in["email"], in["password"])
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, entityUser, "created", newSelfView(user))
}

// Show 按数字 ID 或用户名查找
func (h *UserHandler) Show(c *gin.Context) {
	var (
		user *models.User
		err  error
	)
	ref := c.Param("id")
	if id, ok := utils.ParseID(ref); ok {
		user, err = h.Services.Users.FindByID(c.Request.Context(), id)
	} else {
		user, err = h.Services.Users.FindByUsername(c.Request.Context(), ref)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	view := newUserView(user)
	if actor := middleware.CurrentActor(c); actor != nil && actor.Is(user.ID) {
		view = newSelfView(user)
	}
	success(c, http.StatusOK, entityUser, "retrieved", view)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionEdit, entityUser)
	if !ok {
		return
	}
	in, ok := h.bind(c, services.ActionEdit, entityUser)
	if !ok {
		return
	}
	user, err := h.Services.Users.Update(c.Request.Context(), middleware.CurrentActor(c), id, in["username"], in["email"])
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidateUser(c.Request.Context(), user.ID)
	success(c, http.StatusOK, entityUser, "updated", newSelfView(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionDelete, entityUser)
	if !ok {
		return
	}
	user, err := h.Services.Users.Delete(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidateUser(c.Request.Context(), user.ID)
	// 删除自己后退出登录
	_ = middleware.LogOut(c)
	success(c, http.StatusOK, entityUser, "deleted", newSelfView(user))
}

func (h *UserHandler) Posts(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionFind, entityUser)
	if !ok {
		return
	}
	posts, err := h.Services.Posts.ListByUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User's posts were retrieved successfully!", newPostViews(posts))
}

func (h *UserHandler) Comments(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionFind, entityUser)
	if !ok {
		return
	}
	comments, err := h.Services.Comments.ListByUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User's comments were retrieved successfully!", newCommentViews(comments))
}

func (h *UserHandler) PostBookmarks(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionFind, entityUser)
	if !ok {
		return
	}
	posts, err := h.Services.Bookmarks.PostBookmarks(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User's post bookmarks were retrieved successfully!", newPostViews(posts))
}

func (h *UserHandler) CommentBookmarks(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionFind, entityUser)
	if !ok {
		return
	}
	comments, err := h.Services.Bookmarks.CommentBookmarks(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User's comment bookmarks were retrieved successfully!", newCommentViews(comments))
}
