package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"recruitadmin/internal/utils"
)

// Logger writes one structured line per request including request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		ev := utils.Logger().Info()
		if status >= 500 {
			ev = utils.Logger().Error()
		} else if status >= 400 {
			ev = utils.Logger().Warn()
		}
		ev.Str("module", "HTTP").
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Float64("latency_ms", float64(latency.Microseconds())/1000.0).
			Str("ip", c.ClientIP()).
			Msg("request")
	}
}
