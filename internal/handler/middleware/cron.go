package middleware

import (
	"crypto/subtle"
	"log/slog"

	"reminder-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// RequireCronSecret guards the trigger endpoint. The secret may come as a
// bearer token, an X-Cron-Secret header or a secret query parameter.
func RequireCronSecret(cfg config.CronConfig) gin.HandlerFunc {
	expected := []byte(cfg.Secret)
	return func(c *gin.Context) {
		got := bearerToken(c)
		if got == "" {
			got = c.GetHeader("X-Cron-Secret")
		}
		if got == "" {
			got = c.Query("secret")
		}
		if len(expected) == 0 || got == "" || subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
			slog.Warn("rejected cron trigger", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
			abortUnauthorized(c, "Unauthorized")
			return
		}
		c.Next()
	}
}
