package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"agora/internal/config"
	"agora/internal/handlers"
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/repository"
)

// registrar 为一个路由前缀注册全部路由
type registrar func(g *gin.RouterGroup, env *handlers.Env, cfg *config.Config)

// routes 前缀到注册函数的静态分发表
var routes = map[string]registrar{
	"auth":     registerAuth,
	"user":     registerUser,
	"category": registerCategory,
	"post":     registerPost,
	"comment":  registerComment,
}

// New 组装 gin 引擎：中间件、session、分发表和 404 处理
func New(cfg *config.Config, store repository.Store, env *handlers.Env) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(env.Log))
	r.Use(middleware.Recovery(env.Log))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{Path: "/", MaxAge: 86400 * 30, HttpOnly: true})
	r.Use(sessions.Sessions("agora_session", sessionStore))
	r.Use(middleware.LoadUser(store.Users()))

	r.GET("/", handlers.Home)
	for prefix, register := range routes {
		register(r.Group("/"+prefix), env, cfg)
	}

	r.NoRoute(handlers.NotFound)
	r.NoMethod(handlers.NotFound)
	return r
}

func registerAuth(g *gin.RouterGroup, env *handlers.Env, cfg *config.Config) {
	h := handlers.NewAuthHandler(env)
	g.POST("/login", middleware.RateLimit(cfg.LoginRate, cfg.LoginBurst), h.Login) // 登录限流
	g.POST("/logout", h.Logout)
}

func registerUser(g *gin.RouterGroup, env *handlers.Env, _ *config.Config) {
	h := handlers.NewUserHandler(env)
	g.POST("", h.Create)
	g.GET("/:id", h.Show) // 数字 ID 或用户名
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/posts", h.Posts)
	g.GET("/:id/comments", h.Comments)
	g.GET("/:id/postbookmarks", h.PostBookmarks)
	g.GET("/:id/commentbookmarks", h.CommentBookmarks)
}

func registerCategory(g *gin.RouterGroup, env *handlers.Env, _ *config.Config) {
	h := handlers.NewCategoryHandler(env)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Show)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func registerPost(g *gin.RouterGroup, env *handlers.Env, _ *config.Config) {
	h := handlers.NewPostHandler(env)
	g.POST("", h.Create)
	g.GET("/:id", h.Show)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	registerSubject(g, env, models.SubjectPost)
}

func registerComment(g *gin.RouterGroup, env *handlers.Env, _ *config.Config) {
	h := handlers.NewCommentHandler(env)
	g.POST("", h.Create)
	g.GET("/:id", h.Show)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	registerSubject(g, env, models.SubjectComment)
}

// registerSubject 投票和收藏路由，帖子和评论相同
func registerSubject(g *gin.RouterGroup, env *handlers.Env, subject models.Subject) {
	votes := handlers.NewVoteHandler(env, subject)
	bookmarks := handlers.NewBookmarkHandler(env, subject)
	g.POST("/:id/upvote", votes.UpVote)
	g.POST("/:id/downvote", votes.DownVote)
	g.POST("/:id/unvote", votes.Unvote)
	g.POST("/:id/bookmark", bookmarks.Bookmark)
	g.POST("/:id/unbookmark", bookmarks.Unbookmark)
}
