package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recallboard/internal/models"
)

func TestLoadYAMLConfig_Missing(t *testing.T) {
	t.Setenv("RECALLS_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := LoadYAMLConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg, "missing config file should be treated as optional")
}

func TestLoadYAMLConfig_Parses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recalls.yaml")
	content := `
fault_categories:
  Brakes:
    - "faulty brake line"
timeline:
  from: 2010
  to: 2020
top_models: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("RECALLS_CONFIG", path)

	cfg, err := LoadYAMLConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 2010, cfg.TimelineFrom())
	assert.Equal(t, 2020, cfg.TimelineTo())
	assert.Equal(t, 5, cfg.TopModelsLimit())
	assert.Equal(t, []string{"faulty brake line"}, cfg.FaultCategories["Brakes"])
}

func TestYAMLConfig_Defaults(t *testing.T) {
	var cfg *YAMLConfig // nil: no file present

	assert.Equal(t, 2000, cfg.TimelineFrom())
	assert.Equal(t, 2025, cfg.TimelineTo())
	assert.Equal(t, 10, cfg.TopModelsLimit())
}

func TestFaultMapper(t *testing.T) {
	mapper := NewFaultMapper(&YAMLConfig{
		FaultCategories: map[string][]string{
			models.CategoryBrakes: {"faulty brake line"},
		},
	})

	tests := []struct {
		raw  string
		want string
	}{
		{"בלמים", models.CategoryBrakes},
		{"faulty brake line", models.CategoryBrakes},
		{"FAULTY BRAKE LINE", models.CategoryBrakes},
		{"כריות אוויר", models.CategoryAirbags},
		{"Airbags", models.CategoryAirbags},
		{"engine", models.CategoryEngine},
		{" מנוע ", models.CategoryEngine},
		{"something nobody mapped", models.CategoryOther},
		{"", models.CategoryOther},
		{"Other", models.CategoryOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapper.Map(tt.raw), "Map(%q)", tt.raw)
	}
}
