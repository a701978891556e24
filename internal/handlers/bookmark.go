package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/services"
)

type BookmarkHandler struct {
	*Env
	subject models.Subject
}

func NewBookmarkHandler(env *Env, subject models.Subject) *BookmarkHandler {
	return &BookmarkHandler{Env: env, subject: subject}
}

func (h *BookmarkHandler) Bookmark(c *gin.Context) {
	h.toggle(c, services.ActionBookmark, "bookmarked", h.Services.Bookmarks.Bookmark)
}

func (h *BookmarkHandler) Unbookmark(c *gin.Context) {
	h.toggle(c, services.ActionUnbookmark, "unbookmarked", h.Services.Bookmarks.Unbookmark)
}

func (h *BookmarkHandler) toggle(c *gin.Context, action, verb string, fn func(context.Context, models.Subject, uint, uint) error) {
	entity := h.subject.Entity()
	actor := middleware.CurrentActor(c)
	if err := services.RequireActor(actor, action, entity); err != nil {
		h.fail(c, err)
		return
	}
	id, ok := h.pathID(c, action, entity)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := fn(ctx, h.subject, id, actor.UserID); err != nil {
		h.fail(c, err)
		return
	}

	payload, err := h.subjectPayload(ctx, h.subject, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, entity, verb, payload)
}
