// Package middleware carries the cross-cutting HTTP middleware shared by
// every route group.
package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestIDMiddleware tags every request with a stable ID: a caller-
// supplied X-Request-Id is kept, otherwise a fresh one is generated. The
// ID is echoed in the response header and stamped on the request log
// line together with method, path, status and latency.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader("X-Request-Id"))
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Writer.Header().Set("X-Request-Id", rid)

		start := time.Now()
		c.Next()

		log.Printf("[req] id=%s method=%s path=%s status=%d latency=%s",
			rid, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}

// RequestID returns the ID assigned by RequestIDMiddleware, or "" when
// the middleware did not run. Handlers use it to correlate their error
// logs with the request line.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
