package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agora/internal/middleware"
)

type AuthHandler struct {
	*Env
}

func NewAuthHandler(env *Env) *AuthHandler {
	return &AuthHandler{Env: env}
}

func (h *AuthHandler) Login(c *gin.Context) {
	in, ok := h.bind(c, "log in", "")
	if !ok {
		return
	}
	user, err := h.Services.Users.Authenticate(c.Request.Context(), in["email"], in["password"])
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := middleware.LogIn(c, user.ID); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Logged in successfully!", newSelfView(user))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.LogOut(c); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Logged out successfully!", nil)
}
