package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// UserIdentityMiddleware 从 X-User-ID 提取调用方身份。
// 认证由外部协作方（网关）负责，这里只做归属：没有可信身份的请求
// 不允许触达简历资源。
func UserIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user identity"})
			return
		}
		c.Set(userIDKey, uint(id))
		c.Next()
	}
}

// UserIDFromContext 返回上下文中的用户 ID。
func UserIDFromContext(c *gin.Context) (uint, bool) {
	if value, ok := c.Get(userIDKey); ok {
		if id, ok := value.(uint); ok {
			return id, true
		}
	}
	return 0, false
}
