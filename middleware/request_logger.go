package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start).Seconds()

		utils.ReqCount.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
		utils.ReqDuration.WithLabelValues(c.Request.Method, path).Observe(duration)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Float64("duration", duration),
			zap.String("client_ip", c.ClientIP()),
		}
		if device := c.GetString(ctxDeviceID); device != "" {
			fields = append(fields, zap.String("device_id", device))
		}
		if status >= 500 {
			utils.Logger.Error("http_request", fields...)
			return
		}
		utils.Logger.Info("http_request", fields...)
	}
}
