// Package rayid assigns a unique ray ID to every incoming request so log
// lines for one request can be correlated across handlers.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray ID.
const HeaderName = "X-Ray-Id"

// New returns a middleware that stores a fresh UUID under the "ray_id"
// local and echoes it in the response header. An incoming X-Ray-Id header
// is honored so upstream proxies can thread their own IDs through.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
