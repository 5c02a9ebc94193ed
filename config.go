package condrange

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DayTime is a time-of-day with hour 24 permitted (day-part table end
// values only) to mean end-of-day.
type DayTime struct {
	Hour   int `yaml:"hour"`
	Minute int `yaml:"minute"`
}

// DayTimeRange is a named window of the day, e.g. "morning".
type DayTimeRange struct {
	Start DayTime `yaml:"start"`
	End   DayTime `yaml:"end"`
}

// MonthDay is a month (1-based, as configured) and day-of-month.
type MonthDay struct {
	Month int `yaml:"month"`
	Day   int `yaml:"day"`
}

// SeasonWindow is a hemisphere-specific month-day band.
type SeasonWindow struct {
	Start MonthDay `yaml:"start"`
	End   MonthDay `yaml:"end"`
}

// Season carries both hemispheres' windows for one season name; the
// Factory picks the active one per Config.SouthernHemisphere.
type Season struct {
	Northern SeasonWindow `yaml:"northern"`
	Southern SeasonWindow `yaml:"southern"`
}

// Config is the immutable locale/calendar record the Factory consults.
// It is referenced, never owned, by the Factory for the lifetime of
// condition creation.
type Config struct {
	WeekStartsOnMonday bool                `yaml:"week_starts_on_monday"`
	SouthernHemisphere bool                `yaml:"southern_hemisphere"`
	DayNames           [7]string           `yaml:"day_names"`
	MonthNames         [12]string          `yaml:"month_names"`
	ShortMonthNames    [12]string          `yaml:"short_month_names"`
	DayParts           map[string]DayTimeRange `yaml:"day_parts"`
	Seasons            map[string]Season       `yaml:"seasons"`
	WeekdayNumbers     map[string]int          `yaml:"weekday_numbers"`
}

// DefaultConfig returns the built-in English/Gregorian locale: week starts
// Monday, northern hemisphere, the usual day-part and season tables.
func DefaultConfig() *Config {
	return &Config{
		WeekStartsOnMonday: true,
		SouthernHemisphere: false,
		DayNames: [7]string{
			"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
		},
		MonthNames: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		ShortMonthNames: [12]string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
		},
		DayParts: map[string]DayTimeRange{
			"morning":   {Start: DayTime{Hour: 6, Minute: 0}, End: DayTime{Hour: 12, Minute: 0}},
			"afternoon": {Start: DayTime{Hour: 12, Minute: 0}, End: DayTime{Hour: 17, Minute: 0}},
			"evening":   {Start: DayTime{Hour: 17, Minute: 0}, End: DayTime{Hour: 21, Minute: 0}},
			"night":     {Start: DayTime{Hour: 21, Minute: 0}, End: DayTime{Hour: 24, Minute: 0}},
		},
		Seasons: map[string]Season{
			"spring": {
				Northern: SeasonWindow{Start: MonthDay{Month: 3, Day: 1}, End: MonthDay{Month: 5, Day: 31}},
				Southern: SeasonWindow{Start: MonthDay{Month: 9, Day: 1}, End: MonthDay{Month: 11, Day: 30}},
			},
			"summer": {
				Northern: SeasonWindow{Start: MonthDay{Month: 6, Day: 1}, End: MonthDay{Month: 8, Day: 31}},
				Southern: SeasonWindow{Start: MonthDay{Month: 12, Day: 1}, End: MonthDay{Month: 2, Day: 28}},
			},
			"autumn": {
				Northern: SeasonWindow{Start: MonthDay{Month: 9, Day: 1}, End: MonthDay{Month: 11, Day: 30}},
				Southern: SeasonWindow{Start: MonthDay{Month: 3, Day: 1}, End: MonthDay{Month: 5, Day: 31}},
			},
			"winter": {
				Northern: SeasonWindow{Start: MonthDay{Month: 12, Day: 1}, End: MonthDay{Month: 2, Day: 28}},
				Southern: SeasonWindow{Start: MonthDay{Month: 6, Day: 1}, End: MonthDay{Month: 8, Day: 31}},
			},
		},
		WeekdayNumbers: map[string]int{
			"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3,
			"thursday": 4, "friday": 5, "saturday": 6,
		},
	}
}

// ParseConfig parses a YAML document into a Config, falling back to
// DefaultConfig for any table left empty so a partial override file still
// produces a usable record (mirrors dalbodeule-maginkcal-go's
// Config.Normalize pattern).
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	overlay := &Config{}
	if err := yaml.Unmarshal(data, overlay); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	mergeConfig(cfg, overlay, data)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file from disk.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		logger.Warn("config load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

func mergeConfig(base, overlay *Config, raw []byte) {
	// yaml.Unmarshal only ever sets fields actually present in raw, so a
	// present-but-empty top-level key still needs detecting via a second,
	// permissive decode to tell "absent" from "explicit zero value".
	var present map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &present); err != nil {
		return
	}
	if _, ok := present["week_starts_on_monday"]; ok {
		base.WeekStartsOnMonday = overlay.WeekStartsOnMonday
	}
	if _, ok := present["southern_hemisphere"]; ok {
		base.SouthernHemisphere = overlay.SouthernHemisphere
	}
	if _, ok := present["day_names"]; ok {
		base.DayNames = overlay.DayNames
	}
	if _, ok := present["month_names"]; ok {
		base.MonthNames = overlay.MonthNames
	}
	if _, ok := present["short_month_names"]; ok {
		base.ShortMonthNames = overlay.ShortMonthNames
	}
	if _, ok := present["day_parts"]; ok && len(overlay.DayParts) > 0 {
		base.DayParts = overlay.DayParts
	}
	if _, ok := present["seasons"]; ok && len(overlay.Seasons) > 0 {
		base.Seasons = overlay.Seasons
	}
	if _, ok := present["weekday_numbers"]; ok && len(overlay.WeekdayNumbers) > 0 {
		base.WeekdayNumbers = overlay.WeekdayNumbers
	}
}

// validate checks the loaded tables for internal consistency, aggregating
// every problem found rather than stopping at the first.
func (c *Config) validate() error {
	var errs []error
	for name, dt := range c.DayParts {
		if err := validateDayTime(fmt.Sprintf("day_parts[%s].start", name), dt.Start); err != nil {
			errs = append(errs, err)
		}
		if err := validateDayTimeEndOfDay(fmt.Sprintf("day_parts[%s].end", name), dt.End); err != nil {
			errs = append(errs, err)
		}
	}
	for name, num := range c.WeekdayNumbers {
		if num < 0 || num > 6 {
			errs = append(errs, invalidRangeErr("weekday_numbers["+name+"]",
				fmt.Sprintf("weekday index %d out of [0,6]", num)))
		}
	}
	for name, season := range c.Seasons {
		for _, w := range []SeasonWindow{season.Northern, season.Southern} {
			if err := validateMonthDay1Based(name, w.Start); err != nil {
				errs = append(errs, err)
			}
			if err := validateMonthDay1Based(name, w.End); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return combineErrors(errs...)
}

func validateMonthDay1Based(field string, md MonthDay) error {
	if md.Month < 1 || md.Month > 12 {
		return invalidRangeErr("seasons["+field+"]", fmt.Sprintf("month %d out of [1,12]", md.Month))
	}
	if md.Day < 1 || md.Day > 31 {
		return invalidRangeErr("seasons["+field+"]", fmt.Sprintf("day %d out of [1,31]", md.Day))
	}
	return nil
}

// weekdayIndex looks up name (case-insensitive) in WeekdayNumbers.
func (c *Config) weekdayIndex(name string) (int, error) {
	idx, ok := c.WeekdayNumbers[strings.ToLower(name)]
	if !ok {
		return 0, unknownNameErr("weekday", name)
	}
	return idx, nil
}

// dayPart looks up name (case-insensitive) in DayParts.
func (c *Config) dayPart(name string) (DayTimeRange, error) {
	dp, ok := c.DayParts[strings.ToLower(name)]
	if !ok {
		return DayTimeRange{}, unknownNameErr("day_part", name)
	}
	return dp, nil
}

// season looks up name (case-insensitive) in Seasons.
func (c *Config) season(name string) (Season, error) {
	s, ok := c.Seasons[strings.ToLower(name)]
	if !ok {
		return Season{}, unknownNameErr("season", name)
	}
	return s, nil
}
