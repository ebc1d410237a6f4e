package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/rizkyprovidervisa/visa-admin/internal/auth"
)

// Action labels of the mutation counter.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

var mutations = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "catalog_mutations_total",
		Help: "Number of successful catalog and settings changes, by entity and action.",
	},
	[]string{"entity", "action"},
)

// Mutated records a successful change of ref and the admin who made it.
// ref is the row id or the setting key.
func Mutated(c *fiber.Ctx, entity, action, ref string) {
	mutations.WithLabelValues(entity, action).Inc()

	e := log.Info().Str("entity", entity).Str("action", action).Str("ref", ref)
	if claims := auth.ClaimsFrom(c); claims != nil {
		e = e.Uint64("admin_id", claims.ID).Str("admin", claims.Username)
	}

	e.Msg("catalog changed")
}
