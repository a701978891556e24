package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agora/internal/cache"
	"agora/internal/middleware"
	"agora/internal/services"
	"agora/internal/utils"
)

// Env 处理器共用的依赖
type Env struct {
	Services *services.Services
	Cache    cache.Cache
	CacheTTL time.Duration
	Log      *zap.Logger
}

// Response 所有接口统一的返回结构
type Response struct {
	Message string      `json:"message"`
	Payload interface{} `json:"payload"`
}

func respond(c *gin.Context, code int, message string, payload interface{}) {
	c.JSON(code, Response{Message: message, Payload: payload})
}

// success 返回 "<Entity> was <verb> successfully!"
func success(c *gin.Context, code int, entity, verb string, payload interface{}) {
	respond(c, code, fmt.Sprintf("%s was %s successfully!", entity, verb), payload)
}

// fail 把业务错误映射为状态码，其他错误记日志后返回 500
func (e *Env) fail(c *gin.Context, err error) {
	if !services.IsApplication(err) {
		e.Log.Error("request failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String(middleware.RequestIDKey, c.GetString(middleware.RequestIDKey)),
		)
		_ = c.Error(err)
		respond(c, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}
	respond(c, statusFor(err), err.Error(), nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrSubjectNotFound):
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// invalidID 路径或表单中的 ID 不是正整数
func invalidID(action, entity, field string) error {
	return &services.Error{
		Action: action,
		Entity: entity,
		Reason: field + " ID must be an integer.",
		Code:   services.ErrInvalid,
	}
}

// pathID 解析 :id，失败时直接写回错误
func (e *Env) pathID(c *gin.Context, action, entity string) (uint, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		e.fail(c, invalidID(action, entity, entity))
		return 0, false
	}
	return id, true
}

// input 请求体字段，兼容表单和 JSON
type input map[string]string

func readInput(c *gin.Context) (input, error) {
	in := input{}
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var raw map[string]interface{}
		if err := c.ShouldBindJSON(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		for k, v := range raw {
			switch val := v.(type) {
			case nil:
			case string:
				in[k] = val
			case float64:
				in[k] = strconv.FormatFloat(val, 'f', -1, 64)
			case bool:
				in[k] = strconv.FormatBool(val)
			default:
				// 只接受标量字段
				return nil, fmt.Errorf("field %q: unsupported value %T", k, val)
			}
		}
		return in, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			in[k] = v[0]
		}
	}
	return in, nil
}

// id 读取必填的 ID 字段
func (in input) id(key string) (uint, bool) {
	return utils.ParseID(in[key])
}

// optionalID 空值或 "null" 视为未提供
func (in input) optionalID(key string) (*uint, bool) {
	raw := strings.TrimSpace(in[key])
	if raw == "" || raw == "null" {
		return nil, true
	}
	id, ok := utils.ParseID(raw)
	if !ok {
		return nil, false
	}
	return &id, true
}

// bind 读取请求体，格式错误时写回 400
func (e *Env) bind(c *gin.Context, action, entity string) (input, bool) {
	in, err := readInput(c)
	if err != nil {
		e.fail(c, &services.Error{Action: action, Entity: entity, Reason: "Malformed request body.", Code: services.ErrInvalid})
		return nil, false
	}
	return in, true
}
