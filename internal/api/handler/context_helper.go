package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MuhammadAwais989/school-managment-system-sub000/internal/service"
	"github.com/MuhammadAwais989/school-managment-system-sub000/pkg/response"
)

// MustGetUserName 从 Gin 上下文中安全提取 user_name。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserName(c *gin.Context) (string, bool) {
	return mustGetString(c, "user_name")
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, "role")
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// CallerFromContext 组装服务层需要的调用者身份
// class_assigned/class_section 仅 Teacher 角色携带，允许为空
func CallerFromContext(c *gin.Context) *service.Caller {
	caller := &service.Caller{}
	if v, ok := c.Get("user_id"); ok {
		caller.UserID, _ = v.(string)
	}
	if v, ok := c.Get("role"); ok {
		caller.Role, _ = v.(string)
	}
	if v, ok := c.Get("class_assigned"); ok {
		caller.ClassAssigned, _ = v.(string)
	}
	if v, ok := c.Get("class_section"); ok {
		caller.ClassSection, _ = v.(string)
	}
	return caller
}
