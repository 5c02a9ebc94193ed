package condrange

import "go.uber.org/zap"

// Factory builds Conditions that consult a Config for locale-specific
// lookups. It holds only a reference to cfg and owns nothing else, so a
// single Factory can be shared across goroutines as long as the Config it
// wraps is never mutated after construction.
type Factory struct {
	cfg *Config
}

// NewFactory builds a Factory around cfg. A nil cfg falls back to
// DefaultConfig so callers can always pass a live *Config without a nil
// check.
func NewFactory(cfg *Config) *Factory {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Factory{cfg: cfg}
}

// Weekday builds a WeekDayCond from a locale weekday name, e.g. "Monday".
func (f *Factory) Weekday(name string) (*Condition, error) {
	idx, err := f.cfg.weekdayIndex(name)
	if err != nil {
		logger.Warn("unknown weekday name", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return NewWeekDayCond(idx)
}

// Weekend builds the OR of the two weekend days: {Saturday, Sunday} when
// the configured week starts on Monday, {Friday, Saturday} otherwise.
func (f *Factory) Weekend() (*Condition, error) {
	first, second := 6, 0 // Saturday, Sunday
	if !f.cfg.WeekStartsOnMonday {
		first, second = 5, 6 // Friday, Saturday
	}
	a, err := NewWeekDayCond(first)
	if err != nil {
		return nil, err
	}
	b, err := NewWeekDayCond(second)
	if err != nil {
		return nil, err
	}
	return NewOrCond(a, b)
}

// Workday builds the OR of the five non-weekend days: Mon-Fri when the
// configured week starts on Monday, Sun-Thu otherwise.
func (f *Factory) Workday() (*Condition, error) {
	days := []int{1, 2, 3, 4, 5} // Mon..Fri
	if !f.cfg.WeekStartsOnMonday {
		days = []int{0, 1, 2, 3, 4} // Sun..Thu
	}
	children := make([]*Condition, 0, len(days))
	for _, d := range days {
		wd, err := NewWeekDayCond(d)
		if err != nil {
			return nil, err
		}
		children = append(children, wd)
	}
	return NewOrCond(children...)
}

// Season builds a DateBetweenCond from the configured northern or southern
// window for name, per the hemisphere flag. Config's 1-based months are
// normalised to condition.go's 0-based MonthDaySpec convention.
func (f *Factory) Season(name string) (*Condition, error) {
	s, err := f.cfg.season(name)
	if err != nil {
		logger.Warn("unknown season name", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	w := s.Northern
	if f.cfg.SouthernHemisphere {
		w = s.Southern
	}
	start := MonthDaySpec{Month: w.Start.Month - 1, Day: w.Start.Day}
	end := MonthDaySpec{Month: w.End.Month - 1, Day: w.End.Day}
	return NewDateBetweenCond(start, end)
}

// DayPart builds a DayPartCond (a TimeBetweenCond band of Kind KindDayPart)
// from the configured window for name, tagged with name for describers. Construction is always exclusive-end,
// matching the config's half-open table semantics.
func (f *Factory) DayPart(name string) (*Condition, error) {
	dp, err := f.cfg.dayPart(name)
	if err != nil {
		logger.Warn("unknown day-part name", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return NewDayPartCond(name, dp)
}
