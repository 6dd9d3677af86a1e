package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const TrackIDHeader = "X-Track-Id"

// TrackIDMiddleware tags every request with a track id so log lines and the
// response can be correlated. An id supplied by the caller wins.
func TrackIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		trackID := c.Get(TrackIDHeader)
		if trackID == "" {
			trackID = uuid.New().String()
		}

		c.Locals(TrackIDHeader, trackID)
		c.Set(TrackIDHeader, trackID)

		return c.Next()
	}
}
