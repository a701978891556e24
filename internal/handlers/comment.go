package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agora/internal/middleware"
	"agora/internal/services"
)

const entityComment = "Comment"

type CommentHandler struct {
	*Env
}

func NewCommentHandler(env *Env) *CommentHandler {
	return &CommentHandler{Env: env}
}

func (h *CommentHandler) Create(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if err := services.RequireActor(actor, services.ActionCreate, entityComment); err != nil {
		h.fail(c, err)
		return
	}
	in, ok := h.bind(c, services.ActionCreate, entityComment)
	if !ok {
		return
	}
	postID, ok := in.id("postId")
	if !ok {
		h.fail(c, invalidID(services.ActionCreate, entityComment, "Post"))
		return
	}
	userID, ok := in.id("userId")
	if !ok {
		h.fail(c, invalidID(services.ActionCreate, entityComment, "User"))
		return
	}
	replyID, ok := in.optionalID("replyId")
	if !ok {
		h.fail(c, invalidID(services.ActionCreate, entityComment, "Reply"))
		return
	}

	comment, err := h.Services.Comments.Create(c.Request.Context(), actor, services.CreateCommentInput{
		PostID:  postID,
		UserID:  userID,
		Content: in["content"],
		ReplyID: replyID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidatePost(c.Request.Context(), comment.PostID)
	success(c, http.StatusOK, entityComment, "created", newCommentView(comment))
}

// Show 返回评论及其全部回复（嵌套）
func (h *CommentHandler) Show(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionFind, entityComment)
	if !ok {
		return
	}
	thread, err := h.Services.Comments.Thread(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, entityComment, "retrieved", newThreadView(thread))
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionEdit, entityComment)
	if !ok {
		return
	}
	in, ok := h.bind(c, services.ActionEdit, entityComment)
	if !ok {
		return
	}
	comment, err := h.Services.Comments.Update(c.Request.Context(), middleware.CurrentActor(c), id, in["content"])
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidatePost(c.Request.Context(), comment.PostID)
	success(c, http.StatusOK, entityComment, "updated", newCommentView(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionDelete, entityComment)
	if !ok {
		return
	}
	comment, err := h.Services.Comments.Delete(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidatePost(c.Request.Context(), comment.PostID)
	success(c, http.StatusOK, entityComment, "deleted", newCommentView(comment))
}
