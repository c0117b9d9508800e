package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"content-hub/helper"
)

var HTTPHelper = helper.NewHTTPHelper()

// CronAuth guards the generation trigger with a shared bearer secret.
// With an empty secret the check is disabled (local development).
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HTTPHelper.SendUnauthorizedError(c, "Authorization header required", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token != secret {
			HTTPHelper.SendUnauthorizedError(c, "Invalid cron secret", HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Next()
	}
}
