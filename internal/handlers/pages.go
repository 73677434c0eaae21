package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"recallboard/internal/config"
	"recallboard/internal/dataset"
	"recallboard/internal/metrics"
)

// PageHandler renders the search page and its server-side lookup results.
type PageHandler struct {
	store *dataset.Store
	cfg   *config.Config
}

// NewPageHandler creates a new page handler.
func NewPageHandler(store *dataset.Store, cfg *config.Config) *PageHandler {
	return &PageHandler{store: store, cfg: cfg}
}

func (h *PageHandler) siteMap(extra fiber.Map) fiber.Map {
	m := fiber.Map{
		"SiteTitle":   h.cfg.SiteTitle,
		"SiteTagline": h.cfg.SiteTagline,
		"SiteFooter":  h.cfg.SiteFooter,
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

// Index renders the search page. The charts load themselves from /api/stats.
func (h *PageHandler) Index(c fiber.Ctx) error {
	return c.Render("index", h.siteMap(fiber.Map{"Plate": ""}))
}

// Lookup renders the search page with a result panel for ?plate=. Every
// outcome renders the page; only the dataset being down is an error state,
// and even that is an inline retryable notice rather than an error page.
func (h *PageHandler) Lookup(c fiber.Ctx) error {
	plate := c.Query("plate")

	record, err := h.store.FindByPlate(c.Context(), plate)
	if err != nil {
		switch {
		case errors.Is(err, dataset.ErrInvalidPlate):
			metrics.RecordLookup(metrics.OutcomeInvalidPlate)
			return c.Render("index", h.siteMap(fiber.Map{
				"Plate":      plate,
				"InputError": "Plate number must be 7 or 8 digits.",
			}))
		case errors.Is(err, dataset.ErrRecordNotFound):
			metrics.RecordLookup(metrics.OutcomeNotFound)
			return c.Render("index", h.siteMap(fiber.Map{
				"Plate":   plate,
				"Clean":   true,
				"Checked": true,
			}))
		case errors.Is(err, dataset.ErrDatasetUnavailable):
			metrics.RecordLookup(metrics.OutcomeUnavailable)
			return c.Render("index", h.siteMap(fiber.Map{
				"Plate":        plate,
				"DatasetError": "The recall dataset is temporarily unavailable. Please try again.",
			}))
		default:
			return err
		}
	}

	metrics.RecordLookup(metrics.OutcomeFound)
	return c.Render("index", h.siteMap(fiber.Map{
		"Plate":   plate,
		"Checked": true,
		"Record":  record,
	}))
}
