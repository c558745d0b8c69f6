package http

import (
	"tripscan/core/port/in"
	"tripscan/infra/middleware"
	"tripscan/pkg/apperr"
	"tripscan/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PollHandler exposes internal poll triggers. Both routes sit behind the
// cron shared secret; there is no user-facing surface here.
type PollHandler struct {
	polls      in.PollService
	cronSecret string
}

func NewPollHandler(polls in.PollService, cronSecret string) *PollHandler {
	return &PollHandler{
		polls:      polls,
		cronSecret: cronSecret,
	}
}

func (h *PollHandler) Register(app *fiber.App) {
	internal := app.Group("/internal", middleware.CronSecret(h.cronSecret))
	internal.Post("/cron/poll", h.PollAll)
	internal.Post("/users/:id/poll", h.PollUser)
}

// PollAll scans every connected user's inbox once.
func (h *PollHandler) PollAll(c *fiber.Ctx) error {
	processed, err := h.polls.PollAll(c.Context())
	if err != nil {
		return err
	}
	return response.OK(c, fiber.Map{"processed": processed})
}

// PollUser scans one user's inbox once and reports per-message outcomes.
func (h *PollHandler) PollUser(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return apperr.MissingField("id")
	}

	result, err := h.polls.PollUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, result)
}
