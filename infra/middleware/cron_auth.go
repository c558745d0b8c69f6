package middleware

import (
	"crypto/subtle"
	"strings"

	"tripscan/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// CronSecret guards internal trigger endpoints with a shared secret. The
// secret is accepted as "Authorization: Bearer <secret>" or via the
// X-Cron-Secret header. An empty configured secret rejects everything.
func CronSecret(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return apperr.Forbidden("internal endpoints disabled")
		}

		presented := c.Get("X-Cron-Secret")
		if presented == "" {
			auth := c.Get("Authorization")
			presented = strings.TrimPrefix(auth, "Bearer ")
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			return apperr.Unauthorized("invalid cron secret")
		}
		return c.Next()
	}
}
