package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/pkg/requestid"
)

// RequestID propagates the caller's X-Request-ID or assigns a new one. The
// id is echoed in the response and stored in the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestid.Header)
		if id == "" || len(id) > 128 {
			id = requestid.New()
		}
		c.Request = c.Request.WithContext(requestid.WithID(c.Request.Context(), id))
		c.Writer.Header().Set(requestid.Header, id)
		c.Next()
	}
}

// AccessLog writes one structured log line per request.
func AccessLog(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Str("request_id", requestid.FromContext(c.Request.Context())).
			Msg("HTTP request")
	}
}
