package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"recallboard/internal/models"
)

// YAMLConfig represents the structure of the recalls.yaml file.
// Hierarchical data that's easier to manage in YAML than env vars: the
// fault-category mappings and dashboard tuning.
type YAMLConfig struct {
	FaultCategories map[string][]string `yaml:"fault_categories"` // canonical -> raw values
	Timeline        TimelineConfig      `yaml:"timeline"`
	TopModels       int                 `yaml:"top_models"`
}

// TimelineConfig bounds the by-manufacturer-year chart.
type TimelineConfig struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// defaultFaultCategories maps the raw SUG_TAKALA values seen in the
// government export onto the canonical category set. The yaml file extends
// or overrides these.
var defaultFaultCategories = map[string][]string{
	models.CategoryAirbags:    {"כריות אוויר", "כרית אוויר", "airbag", "airbags"},
	models.CategoryBrakes:     {"בלמים", "מערכת בלימה", "brakes"},
	models.CategoryEngine:     {"מנוע", "תיבת הילוכים", "engine"},
	models.CategoryElectrical: {"חשמל", "מערכת חשמל", "electrical"},
	models.CategoryFuel:       {"דלק", "מערכת דלק", "fuel"},
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by RECALLS_CONFIG env var, defaulting to "recalls.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("RECALLS_CONFIG", "recalls.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// TimelineFrom returns the start of the dashboard timeline window.
func (c *YAMLConfig) TimelineFrom() int {
	if c == nil || c.Timeline.From == 0 {
		return 2000
	}
	return c.Timeline.From
}

// TimelineTo returns the end of the dashboard timeline window.
func (c *YAMLConfig) TimelineTo() int {
	if c == nil || c.Timeline.To == 0 {
		return 2025
	}
	return c.Timeline.To
}

// TopModelsLimit returns how many models the top-open-models chart shows.
func (c *YAMLConfig) TopModelsLimit() int {
	if c == nil || c.TopModels <= 0 {
		return 10
	}
	return c.TopModels
}

// FaultMapper normalizes raw fault strings to canonical categories.
type FaultMapper struct {
	byRaw map[string]string
}

// NewFaultMapper builds a mapper from the compiled-in defaults merged with
// the yaml config (yaml entries win on conflict). Matching is
// case-insensitive on the raw value.
func NewFaultMapper(cfg *YAMLConfig) *FaultMapper {
	m := &FaultMapper{byRaw: make(map[string]string)}
	for canonical, raws := range defaultFaultCategories {
		for _, raw := range raws {
			m.byRaw[strings.ToLower(raw)] = canonical
		}
	}
	if cfg != nil {
		for canonical, raws := range cfg.FaultCategories {
			for _, raw := range raws {
				m.byRaw[strings.ToLower(raw)] = canonical
			}
		}
	}
	// Canonical names always map to themselves.
	for _, canonical := range []string{
		models.CategoryAirbags, models.CategoryBrakes, models.CategoryEngine,
		models.CategoryElectrical, models.CategoryFuel, models.CategoryOther,
	} {
		m.byRaw[strings.ToLower(canonical)] = canonical
	}
	return m
}

// Map returns the canonical category for a raw fault string, falling back to
// Other for anything unrecognized.
func (m *FaultMapper) Map(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := m.byRaw[raw]; ok {
		return canonical
	}
	return models.CategoryOther
}
