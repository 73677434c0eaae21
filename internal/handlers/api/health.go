package api

import (
	"github.com/gofiber/fiber/v3"

	"recallboard/internal/dataset"
	"recallboard/internal/models"
)

// HealthHandler reports liveness and shard cache state.
type HealthHandler struct {
	store *dataset.Store
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(store *dataset.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health always returns 200: the service is up even when no shard has been
// loaded yet (shards load lazily on first query).
func (h *HealthHandler) Health(c fiber.Ctx) error {
	shards := h.store.CachedShards()

	total := 0
	for _, s := range shards {
		total += s.Records
	}

	return jsonSuccess(c, models.HealthResponse{
		Status:       "ok",
		ShardsLoaded: len(shards),
		TotalRecords: total,
		Shards:       shards,
	})
}
