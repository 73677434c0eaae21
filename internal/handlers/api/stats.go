package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"recallboard/internal/dataset"
	"recallboard/internal/models"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	store *dataset.Store
	opts  dataset.StatsOptions
}

// NewStatsHandler creates a new API stats handler.
func NewStatsHandler(store *dataset.Store, opts dataset.StatsOptions) *StatsHandler {
	return &StatsHandler{store: store, opts: opts}
}

// Stats loads all shards and returns the dashboard aggregates. The snapshot
// metadata lets clients distinguish dataset versions across deploys.
func (h *StatsHandler) Stats(c fiber.Ctx) error {
	stats, version, err := h.store.Statistics(c.Context(), h.opts)
	if err != nil {
		if errors.Is(err, dataset.ErrDatasetUnavailable) {
			return jsonError(c, fiber.StatusServiceUnavailable, "recall dataset is unavailable, try again")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to compute statistics")
	}

	return jsonSuccess(c, models.StatsResponse{
		SnapshotID:     uuid.New(),
		GeneratedAt:    time.Now().UTC(),
		DatasetVersion: version,
		Stats:          stats,
	})
}
