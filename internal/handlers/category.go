package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agora/internal/middleware"
	"agora/internal/services"
)

const entityCategory = "Category"

type CategoryHandler struct {
	*Env
}

func NewCategoryHandler(env *Env) *CategoryHandler {
	return &CategoryHandler{Env: env}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.Services.Categories.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	views := make([]*CategoryView, len(categories))
	for i, category := range categories {
		views[i] = newCategoryView(category)
	}
	respond(c, http.StatusOK, "Categories were retrieved successfully!", views)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if err := services.RequireActor(actor, services.ActionCreate, entityCategory); err != nil {
		h.fail(c, err)
		return
	}
	in, ok := h.bind(c, services.ActionCreate, entityCategory)
	if !ok {
		return
	}
	// 无法解析的 createdBy 按 0 处理，由服务层报 Invalid user ID
	createdBy, _ := in.id("createdBy")
	category, err := h.Services.Categories.Create(c.Request.Context(), actor, createdBy, in["title"], in["description"])
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, entityCategory, "created", newCategoryView(category))
}

// Show 返回分类及其帖子，?sort=hot 按热度排序
func (h *CategoryHandler) Show(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionFind, entityCategory)
	if !ok {
		return
	}
	category, err := h.Services.Categories.FindByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	posts, err := h.Services.Posts.ListByCategory(c.Request.Context(), category.ID, c.DefaultQuery("sort", services.SortNew))
	if err != nil {
		h.fail(c, err)
		return
	}
	view := newCategoryView(category)
	view.Posts = newPostViews(posts)
	success(c, http.StatusOK, entityCategory, "retrieved", view)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionEdit, entityCategory)
	if !ok {
		return
	}
	in, ok := h.bind(c, services.ActionEdit, entityCategory)
	if !ok {
		return
	}
	category, err := h.Services.Categories.Update(c.Request.Context(), middleware.CurrentActor(c), id, in["title"], in["description"])
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidateCategory(c.Request.Context(), category.ID)
	success(c, http.StatusOK, entityCategory, "updated", newCategoryView(category))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, services.ActionDelete, entityCategory)
	if !ok {
		return
	}
	category, err := h.Services.Categories.Delete(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.invalidateCategory(c.Request.Context(), category.ID)
	success(c, http.StatusOK, entityCategory, "deleted", newCategoryView(category))
}
