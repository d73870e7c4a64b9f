package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nhalm/canonlog"
)

// canonicalLogger emits one log line per request with method, path, route,
// status and duration. Errors attached with c.Error are added to the line.
func canonicalLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := canonlog.NewContext(c.Request.Context())
		start := time.Now()

		canonlog.InfoAddMany(ctx, map[string]any{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		c.Request = c.Request.WithContext(ctx)

		defer func() {
			for _, e := range c.Errors {
				canonlog.ErrorAdd(ctx, e.Err)
			}

			route := c.FullPath()
			if route == "" {
				route = c.Request.URL.Path
			}
			canonlog.InfoAddMany(ctx, map[string]any{
				"route":       route,
				"status":      c.Writer.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
			canonlog.Flush(ctx)
		}()

		c.Next()
	}
}
