package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/services"
)

type voteFunc func(ctx context.Context, subject models.Subject, subjectID, userID uint) (services.Tally, error)

// VoteHandler 帖子和评论共用，subject 决定操作对象
type VoteHandler struct {
	*Env
	subject models.Subject
}

func NewVoteHandler(env *Env, subject models.Subject) *VoteHandler {
	return &VoteHandler{Env: env, subject: subject}
}

func (h *VoteHandler) UpVote(c *gin.Context) {
	h.cast(c, services.ActionUpVote, "up voted", h.Services.Votes.UpVote)
}

func (h *VoteHandler) DownVote(c *gin.Context) {
	h.cast(c, services.ActionDownVote, "down voted", h.Services.Votes.DownVote)
}

func (h *VoteHandler) Unvote(c *gin.Context) {
	h.cast(c, services.ActionUnvote, "unvoted", h.Services.Votes.Unvote)
}

func (h *VoteHandler) cast(c *gin.Context, action, verb string, fn voteFunc) {
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
	if _, err := fn(ctx, h.subject, id, actor.UserID); err != nil {
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

// subjectPayload 重新加载对象用于返回，并清掉所属帖子的缓存
func (e *Env) subjectPayload(ctx context.Context, subject models.Subject, id uint) (interface{}, error) {
	switch subject {
	case models.SubjectPost:
		post, err := e.Services.Posts.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		e.invalidatePost(ctx, post.ID)
		return newPostView(post), nil
	default:
		comment, err := e.Services.Comments.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		e.invalidatePost(ctx, comment.PostID)
		return newCommentView(comment), nil
	}
}
