package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ManagerIDHeader = "X-Manager-ID"
	ManagerIDKey    = "manager_id"
)

// ManagerContext -> simpan id manajer dari header untuk created_by reservasi
func ManagerContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(ManagerIDHeader)); id != "" {
			c.Set(ManagerIDKey, id)
		}
		c.Next()
	}
}
