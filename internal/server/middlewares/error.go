package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expmon/pkg/ginx"
	"expmon/pkg/logger"
)

// ErrorHandler 统一错误处理中间件：记录 handler 附加的错误，未写响应时补 500
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			log.Errorf(c.Request.Context(), "[HTTP] %s %s failed: %v", c.Request.Method, c.FullPath(), e.Err)
		}
		if !c.Writer.Written() {
			ginx.InternalError(c, "internal server error")
		}
	}
}

// Recovery 捕获 panic，返回统一 500 响应
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf(c.Request.Context(), "[HTTP] panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ginx.Response{
					Meta: ginx.Meta{Code: http.StatusInternalServerError, Message: "internal server error"},
				})
			}
		}()
		c.Next()
	}
}
