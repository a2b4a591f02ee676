package middleware

import "github.com/gin-gonic/gin"

// NoCache marks responses as non-cacheable. Availability answers are
// stale the moment someone books, so intermediaries must not store them.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
