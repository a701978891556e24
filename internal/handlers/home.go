package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Home(c *gin.Context) {
	respond(c, http.StatusOK, "Please feel free to make an account and browse around :)", nil)
}

// NotFound 未知路由或方法
func NotFound(c *gin.Context) {
	respond(c, http.StatusNotFound, "404", nil)
}
