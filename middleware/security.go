package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agency-site-server/response"
)

// MaxRequestBytes caps request bodies; image uploads are the largest payloads
const MaxRequestBytes = 10 << 20

// SecurityHeaders adds security headers
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https://res.cloudinary.com; connect-src 'self' ws: wss:;")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Next()
	}
}

// InputValidation rejects oversized bodies and unexpected content types on writes
func InputValidation(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, &response.AppError{
				HTTPStatus: http.StatusRequestEntityTooLarge,
				Message:    "Request body exceeds maximum size limit",
			})
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if c.Request.ContentLength == 0 {
				break
			}
			contentType := c.GetHeader("Content-Type")
			if !strings.Contains(contentType, "application/json") &&
				!strings.Contains(contentType, "multipart/form-data") &&
				!strings.Contains(contentType, "application/x-www-form-urlencoded") {
				response.Error(c, &response.AppError{
					HTTPStatus: http.StatusUnsupportedMediaType,
					Message:    "Content-Type must be application/json, multipart/form-data, or application/x-www-form-urlencoded",
				})
				return
			}
		}

		c.Next()
	}
}
