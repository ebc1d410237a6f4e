// Package dashboard serves the admin dashboard summary.
package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/stats"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler"
)

const (
	// Path is the path of the dashboard routes below /api.
	Path = "/dashboard"

	// StatsPath answers the catalog counts.
	StatsPath = "/stats"

	// MsgStatsFailed is the answer when counting fails.
	MsgStatsFailed = "Error fetching stats"
)

// Service is the dashboard handler service.
type Service struct {
	counter stats.Counter
}

// New creates the dashboard service.
func New(counter stats.Counter) *Service {
	return &Service{counter: counter}
}

// Register adds GET /dashboard/stats behind the gate.
func (s *Service) Register(router fiber.Router, gate fiber.Handler) {
	router.Route(Path, func(r fiber.Router) {
		r.Get(StatsPath, gate, s.Stats)
	})
}

// Stats answers the live number of countries, visa types and visa categories.
func (s *Service) Stats(c *fiber.Ctx) error {
	counts, err := s.counter.Counts(c.UserContext())
	if err != nil {
		return handler.StoreError(c, err, MsgStatsFailed)
	}

	return c.JSON(counts)
}
