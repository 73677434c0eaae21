package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"recallboard/internal/dataset"
	"recallboard/internal/metrics"
	"recallboard/internal/models"
	"recallboard/internal/validation"
)

// LookupHandler resolves plate numbers to recall records via JSON API.
type LookupHandler struct {
	store *dataset.Store
}

// NewLookupHandler creates a new API lookup handler.
func NewLookupHandler(store *dataset.Store) *LookupHandler {
	return &LookupHandler{store: store}
}

// Lookup finds the recall record for a plate. A clean vehicle is a 200 with
// found=false, not an error; only bad input and dataset trouble are errors.
func (h *LookupHandler) Lookup(c fiber.Ctx) error {
	plate := validation.NormalizePlate(c.Params("plate"))

	record, err := h.store.FindByPlate(c.Context(), plate)
	if err != nil {
		switch {
		case errors.Is(err, dataset.ErrInvalidPlate):
			metrics.RecordLookup(metrics.OutcomeInvalidPlate)
			return jsonError(c, fiber.StatusBadRequest, "plate must be 7 or 8 digits")
		case errors.Is(err, dataset.ErrRecordNotFound):
			metrics.RecordLookup(metrics.OutcomeNotFound)
			return jsonSuccess(c, models.LookupResponse{Plate: plate, Found: false})
		case errors.Is(err, dataset.ErrDatasetUnavailable):
			metrics.RecordLookup(metrics.OutcomeUnavailable)
			return jsonError(c, fiber.StatusServiceUnavailable, "recall dataset is unavailable, try again")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "lookup failed")
		}
	}

	metrics.RecordLookup(metrics.OutcomeFound)
	return jsonSuccess(c, models.LookupResponse{Plate: plate, Found: true, Record: record})
}
