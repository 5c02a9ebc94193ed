package condrange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	got := startOfDay(time.Date(2024, 6, 15, 14, 30, 5, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestAddMonthsOverflow(t *testing.T) {
	got := addMonths(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), got,
		"Go's AddDate rolls Jan 31 + 1 month into March, matching the ambient calendar's own convention")
}

func TestAtDayTimeHour24(t *testing.T) {
	got := atDayTime(day(2024, 6, 15), DayTime{Hour: 24, Minute: 0})
	assert.Equal(t, day(2024, 6, 16), got, "hour 24 means start of the next day")
}

func TestAtDayTimeOrdinary(t *testing.T) {
	got := atDayTime(day(2024, 6, 15), DayTime{Hour: 9, Minute: 30})
	assert.Equal(t, time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC), got)
}

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, 29, lastDayOfMonth(day(2024, 2, 10)).Day(), "2024 is a leap year")
	assert.Equal(t, 28, lastDayOfMonth(day(2023, 2, 10)).Day())
	assert.Equal(t, 31, lastDayOfMonth(day(2024, 1, 1)).Day())
}

func TestNearestWeekday(t *testing.T) {
	t.Run("Saturday target shifts to Friday", func(t *testing.T) {
		got, ok := nearestWeekday(2024, time.June, 1)
		assert.True(t, ok)
		assert.Equal(t, time.Friday, got.Weekday())
	})

	t.Run("Sunday target shifts to Monday", func(t *testing.T) {
		got, ok := nearestWeekday(2024, time.June, 2)
		assert.True(t, ok)
		assert.Equal(t, time.Monday, got.Weekday())
	})

	t.Run("weekday target is unchanged", func(t *testing.T) {
		got, ok := nearestWeekday(2024, time.June, 5)
		assert.True(t, ok)
		assert.Equal(t, 5, got.Day())
	})

	t.Run("day beyond month length fails", func(t *testing.T) {
		_, ok := nearestWeekday(2024, time.February, 30)
		assert.False(t, ok)
	})
}
