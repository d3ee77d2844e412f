package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// Middleware 解析Bearer token，把身份放进请求上下文。
// 身份随请求显式传递，处理器不读任何全局状态。
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
			return
		}

		identity, err := ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "登录状态无效"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole 角色限制中间件
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := FromContext(c)
		if identity == nil || identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "没有操作权限"})
			return
		}
		c.Next()
	}
}

// FromContext 取当前请求的身份，未认证返回nil
func FromContext(c *gin.Context) *Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*Identity)
	if !ok {
		return nil
	}
	return identity
}
