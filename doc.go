// Package condrange provides a small algebra of time-range conditions:
// predicates over an instant that also know how to describe the bounded
// interval of time during which they are (or next become) satisfied.
//
// A Condition is built from one of twelve primitives or combinators
// (NewTimeDeltaCond, NewTimeBetweenCond, NewMonthBetweenCond,
// NewDateBetweenCond, NewDayBetweenCond, NewDayPartCond, NewWeekDayCond,
// NewTimeSpanCond, NewOrCond, NewAndCond, NewNthCond,
// NewFirstAfterStartCond) or via a Factory backed by a locale Config.
// Every Condition answers three pure queries:
//
//	c.Contains(t)         // is t inside the currently active range?
//	c.LastActiveRange(t)  // the most recent range starting at or before t
//	c.NextRanges(t)       // the upcoming range(s) starting strictly after t
//
// Example usage:
//
//	businessHours, err := condrange.NewTimeBetweenCond(
//	    condrange.DayTime{Hour: 9}, condrange.DayTime{Hour: 17}, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if businessHours.Contains(time.Now()) {
//	    fmt.Println("inside business hours")
//	}
package condrange
