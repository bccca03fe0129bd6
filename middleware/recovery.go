package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				path := c.FullPath()
				utils.Logger.Error("panic_recovered",
					zap.Any("panic", r),
					zap.String("path", path),
					zap.String("device_id", c.GetString(ctxDeviceID)),
				)
				utils.ErrorCount.WithLabelValues(path, "panic").Inc()
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}
