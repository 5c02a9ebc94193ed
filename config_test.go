package condrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigLookups(t *testing.T) {
	cfg := DefaultConfig()

	idx, err := cfg.weekdayIndex("Monday")
	require.NoError(t, err)
	assert.Equal(t, 1, idx, "lookup is case-insensitive")

	_, err = cfg.weekdayIndex("Funday")
	assert.Error(t, err)

	dp, err := cfg.dayPart("Morning")
	require.NoError(t, err)
	assert.Equal(t, DayTime{Hour: 6, Minute: 0}, dp.Start)

	s, err := cfg.season("winter")
	require.NoError(t, err)
	assert.Equal(t, 12, s.Northern.Start.Month)
}

func TestParseConfigOverlay(t *testing.T) {
	yamlDoc := []byte(`
southern_hemisphere: true
weekday_numbers:
  sunday: 0
  monday: 1
  tuesday: 2
  wednesday: 3
  thursday: 4
  friday: 5
  saturday: 6
`)
	cfg, err := ParseConfig(yamlDoc)
	require.NoError(t, err)

	assert.True(t, cfg.SouthernHemisphere, "explicitly present key should override the default")
	assert.True(t, cfg.WeekStartsOnMonday, "key absent from the overlay should keep the default")
	assert.NotEmpty(t, cfg.DayParts, "day_parts absent from the overlay should keep the default table")
}

func TestParseConfigRejectsOutOfRangeTables(t *testing.T) {
	yamlDoc := []byte(`
weekday_numbers:
  someday: 9
`)
	_, err := ParseConfig(yamlDoc)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/to/config.yaml")
	assert.Error(t, err)
}
