package middleware

import (
	"net/http"

	"bazzangee/internal/microservices/http-api/render"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps request bodies at limit bytes. A declared Content-Length
// over the cap is refused up front; chunked bodies fail on read once they
// cross it, before multipart parsing spools them to disk.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			render.Error(c, http.StatusRequestEntityTooLarge, "request body too large")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
