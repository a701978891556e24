package middleware

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"agora/internal/repository"
	"agora/internal/services"
)

const (
	ActorKey       = "actor"
	SessionUserKey = "user_id"
)

// LoadUser 从 session 读取 user_id 并把当前用户作为 *services.Actor 放入上下文。
// 用户不存在或已删除时清掉 session。
func LoadUser(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(SessionUserKey).(uint)
		if ok {
			user, err := users.FindByID(c.Request.Context(), userID)
			if err == nil && !user.Status.IsDeleted() {
				c.Set(ActorKey, &services.Actor{UserID: user.ID, Username: user.Username})
			} else if err == nil || errors.Is(err, repository.ErrNotFound) {
				session.Delete(SessionUserKey)
				_ = session.Save()
			}
		}
		c.Next()
	}
}

// CurrentActor 返回当前登录用户，未登录时为 nil
func CurrentActor(c *gin.Context) *services.Actor {
	if v, exists := c.Get(ActorKey); exists {
		if actor, ok := v.(*services.Actor); ok {
			return actor
		}
	}
	return nil
}

// LogIn 把用户 ID 写入 session
func LogIn(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set(SessionUserKey, userID)
	return session.Save()
}

func LogOut(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
