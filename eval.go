package condrange

import "time"

// maxAndIterations bounds the per-child envelope expansion in AndCond
// evaluation and the candidate search in NthCond and FirstAfterStartCond,
// guarding against pathological combinations that would otherwise search
// forever.
const maxAndIterations = 1000

// Contains reports whether t falls within c's currently active range.
func (c *Condition) Contains(t time.Time) bool {
	r, ok := c.LastActiveRange(t)
	return ok && r.Contains(t)
}

// NextStart returns the start of the first element of NextRanges(t).
func (c *Condition) NextStart(t time.Time) (time.Time, bool) {
	return c.NextRanges(t).FirstStart()
}

// CurrentEnd returns the end of LastActiveRange(t); ok is false if there is
// no last-active range. A nil *time.Time with ok true means that range is
// open-ended.
func (c *Condition) CurrentEnd(t time.Time) (*time.Time, bool) {
	r, ok := c.LastActiveRange(t)
	if !ok {
		return nil, false
	}
	return r.End, true
}

// LastActiveRange returns the most recent DateRange produced by c whose
// start is at or before t, or ok=false if c has not yet activated.
func (c *Condition) LastActiveRange(t time.Time) (DateRange, bool) {
	switch c.Kind {
	case KindTimeDelta:
		return c.lastActiveTimeDelta(t)
	case KindTimeBetween, KindDayPart:
		return c.lastActiveTimeBetween(t), true
	case KindMonthBetween:
		return c.lastActiveMonthBetween(t), true
	case KindDateBetween:
		return c.lastActiveDateBetween(t), true
	case KindDayBetween:
		return c.lastActiveDayBetween(t), true
	case KindWeekday:
		return c.lastActiveWeekday(t), true
	case KindTimeSpan:
		return c.lastActiveTimeSpan(t), true
	case KindOr:
		return c.lastActiveOr(t)
	case KindAnd:
		return c.andEval(t, modeLast).LastRange()
	case KindNth:
		return c.lastActiveNth(t)
	case KindFirstAfterStart:
		return c.lastActiveFirstAfterStart(t)
	default:
		return DateRange{}, false
	}
}

// NextRanges returns the upcoming DateRanges strictly after t: a singleton
// for every primitive, possibly several for combinators.
func (c *Condition) NextRanges(t time.Time) RangeSet {
	switch c.Kind {
	case KindTimeDelta:
		return c.nextTimeDelta(t)
	case KindTimeBetween, KindDayPart:
		return singleton(c.nextTimeBetween(t))
	case KindMonthBetween:
		return singleton(c.nextMonthBetween(t))
	case KindDateBetween:
		return singleton(c.nextDateBetween(t))
	case KindDayBetween:
		return singleton(c.nextDayBetween(t))
	case KindWeekday:
		return singleton(c.nextWeekday(t))
	case KindTimeSpan:
		return singleton(c.nextTimeSpan(t))
	case KindOr:
		return c.nextOr(t)
	case KindAnd:
		return c.andEval(t, modeNext)
	case KindNth:
		return c.nextNth(t)
	case KindFirstAfterStart:
		return c.nextFirstAfterStart(t)
	default:
		return RangeSet{}
	}
}

func singleton(r DateRange) RangeSet {
	return NewRangeSet([]DateRange{r})
}

// =============================================================================
// TimeDeltaCond
// =============================================================================

func (c *Condition) validFrom() time.Time {
	return c.Anchor.Add(c.Delta)
}

func (c *Condition) lastActiveTimeDelta(t time.Time) (DateRange, bool) {
	vf := c.validFrom()
	if t.Before(vf) {
		return DateRange{}, false
	}
	return NewOpenDateRange(vf), true
}

func (c *Condition) nextTimeDelta(t time.Time) RangeSet {
	vf := c.validFrom()
	if !t.Before(vf) {
		return RangeSet{}
	}
	return singleton(NewOpenDateRange(vf))
}

// =============================================================================
// TimeBetweenCond / DayPartCond
// =============================================================================

// timeBetweenEnd computes the exported end instant given the calendar day
// on which the range starts.
func (c *Condition) timeBetweenEnd(startDay time.Time) time.Time {
	overnight := dayTimeMinutes(c.TimeStart) > dayTimeMinutes(c.TimeEnd)
	endTotal := dayTimeMinutes(c.TimeEnd) + 1
	endDT := DayTime{Hour: endTotal / 60, Minute: endTotal % 60}
	base := startDay
	if overnight {
		base = addDays(startDay, 1)
	}
	return atDayTime(base, endDT)
}

func (c *Condition) timeBetweenRange(anchorDay time.Time) DateRange {
	start := atDayTime(anchorDay, c.TimeStart)
	end := c.timeBetweenEnd(anchorDay)
	return NewDateRange(start, end)
}

func (c *Condition) lastActiveTimeBetween(t time.Time) DateRange {
	day := startOfDay(t)
	todayStart := atDayTime(day, c.TimeStart)
	anchorDay := day
	if t.Before(todayStart) {
		anchorDay = addDays(day, -1)
	}
	return c.timeBetweenRange(anchorDay)
}

func (c *Condition) nextTimeBetween(t time.Time) DateRange {
	day := startOfDay(t)
	todayStart := atDayTime(day, c.TimeStart)
	anchorDay := addDays(day, 1)
	if t.Before(todayStart) {
		anchorDay = day
	}
	return c.timeBetweenRange(anchorDay)
}

// =============================================================================
// MonthBetweenCond
// =============================================================================

func (c *Condition) monthBetweenAnchorYear(t time.Time, forNext bool) int {
	curMonth := int(t.Month()) - 1
	if forNext {
		if curMonth >= c.StartMonth {
			return t.Year() + 1
		}
		return t.Year()
	}
	if curMonth >= c.StartMonth {
		return t.Year()
	}
	return t.Year() - 1
}

func (c *Condition) monthBetweenRange(startYear int, loc *time.Location) DateRange {
	start := time.Date(startYear, time.Month(c.StartMonth+1), 1, 0, 0, 0, 0, loc)
	wrap := c.StartMonth > c.EndMonth
	endYear := startYear
	if wrap {
		endYear++
	}
	end := time.Date(endYear, time.Month(c.EndMonth+2), 1, 0, 0, 0, 0, loc)
	return NewDateRange(start, end)
}

func (c *Condition) lastActiveMonthBetween(t time.Time) DateRange {
	return c.monthBetweenRange(c.monthBetweenAnchorYear(t, false), t.Location())
}

func (c *Condition) nextMonthBetween(t time.Time) DateRange {
	return c.monthBetweenRange(c.monthBetweenAnchorYear(t, true), t.Location())
}

// =============================================================================
// DateBetweenCond
// =============================================================================

func monthDayOf(t time.Time) MonthDaySpec {
	return MonthDaySpec{Month: int(t.Month()) - 1, Day: t.Day()}
}

func (c *Condition) dateBetweenAnchorYear(t time.Time, forNext bool) int {
	cmp := monthDayOf(t).compare(c.StartDate)
	if forNext {
		if cmp >= 0 {
			return t.Year() + 1
		}
		return t.Year()
	}
	if cmp >= 0 {
		return t.Year()
	}
	return t.Year() - 1
}

func (c *Condition) dateBetweenRange(startYear int, loc *time.Location) DateRange {
	start := time.Date(startYear, time.Month(c.StartDate.Month+1), c.StartDate.Day, 0, 0, 0, 0, loc)
	wrap := c.StartDate.compare(c.EndDate) > 0
	endYear := startYear
	if wrap {
		endYear++
	}
	endBase := time.Date(endYear, time.Month(c.EndDate.Month+1), c.EndDate.Day, 0, 0, 0, 0, loc)
	end := endBase.AddDate(0, 0, 1)
	return NewDateRange(start, end)
}

func (c *Condition) lastActiveDateBetween(t time.Time) DateRange {
	return c.dateBetweenRange(c.dateBetweenAnchorYear(t, false), t.Location())
}

func (c *Condition) nextDateBetween(t time.Time) DateRange {
	return c.dateBetweenRange(c.dateBetweenAnchorYear(t, true), t.Location())
}

// =============================================================================
// DayBetweenCond
// =============================================================================

func (c *Condition) dayBetweenAnchorMonth(t time.Time, forNext bool) time.Time {
	base := startOfMonth(t)
	if forNext {
		if t.Day() >= c.StartDay {
			return startOfMonth(addMonths(base, 1))
		}
		return base
	}
	if t.Day() >= c.StartDay {
		return base
	}
	return startOfMonth(addMonths(base, -1))
}

func (c *Condition) dayBetweenRange(anchorMonth time.Time) DateRange {
	loc := anchorMonth.Location()
	start := time.Date(anchorMonth.Year(), anchorMonth.Month(), c.StartDay, 0, 0, 0, 0, loc)
	wrap := c.StartDay > c.EndDay
	endMonthBasis := anchorMonth
	if wrap {
		endMonthBasis = addMonths(anchorMonth, 1)
	}
	end := time.Date(endMonthBasis.Year(), endMonthBasis.Month(), c.EndDay+1, 0, 0, 0, 0, loc)
	return NewDateRange(start, end)
}

func (c *Condition) lastActiveDayBetween(t time.Time) DateRange {
	return c.dayBetweenRange(c.dayBetweenAnchorMonth(t, false))
}

func (c *Condition) nextDayBetween(t time.Time) DateRange {
	return c.dayBetweenRange(c.dayBetweenAnchorMonth(t, true))
}

// =============================================================================
// WeekDayCond
// =============================================================================

func (c *Condition) lastActiveWeekday(t time.Time) DateRange {
	d := (dayOfWeek(t) - c.Weekday + 7) % 7
	start := startOfDay(addDays(t, -d))
	end := addDays(start, 1)
	return NewDateRange(start, end)
}

func (c *Condition) nextWeekday(t time.Time) DateRange {
	d := c.Weekday - dayOfWeek(t)
	if d <= 0 {
		d += 7
	}
	start := startOfDay(addDays(t, d))
	end := addDays(start, 1)
	return NewDateRange(start, end)
}

// =============================================================================
// TimeSpanCond
// =============================================================================

// spanUnit identifies the smallest non-zero component, which governs both
// the bucket-floor alignment and the next-bucket step.
type spanUnit int

const (
	spanSeconds spanUnit = iota
	spanMinutes
	spanHours
	spanDays
	spanMonths
)

func (c *Condition) smallestUnit() spanUnit {
	switch {
	case c.SpanSeconds > 0:
		return spanSeconds
	case c.SpanMinutes > 0:
		return spanMinutes
	case c.SpanHours > 0:
		return spanHours
	case c.SpanDays > 0:
		return spanDays
	default:
		return spanMonths
	}
}

func (c *Condition) floorToUnit(t time.Time) time.Time {
	switch c.smallestUnit() {
	case spanSeconds:
		return t.Truncate(time.Second)
	case spanMinutes:
		return t.Truncate(time.Minute)
	case spanHours:
		y, m, d := t.Date()
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, t.Location())
	case spanDays:
		return startOfDay(t)
	default:
		return startOfMonth(t)
	}
}

func (c *Condition) stepUnit(anchor time.Time, k int) time.Time {
	switch c.smallestUnit() {
	case spanSeconds:
		return anchor.Add(time.Duration(k) * time.Second)
	case spanMinutes:
		return anchor.Add(time.Duration(k) * time.Minute)
	case spanHours:
		return anchor.Add(time.Duration(k) * time.Hour)
	case spanDays:
		return addDays(anchor, k)
	default:
		return addMonths(anchor, k)
	}
}

func (c *Condition) addSpan(anchor time.Time) time.Time {
	result := addMonths(anchor, c.SpanMonths)
	result = addDays(result, c.SpanDays)
	result = result.Add(
		time.Duration(c.SpanHours)*time.Hour +
			time.Duration(c.SpanMinutes)*time.Minute +
			time.Duration(c.SpanSeconds)*time.Second,
	)
	return result
}

func (c *Condition) lastActiveTimeSpan(t time.Time) DateRange {
	anchor := c.floorToUnit(t)
	return NewDateRange(anchor, c.addSpan(anchor))
}

func (c *Condition) nextTimeSpan(t time.Time) DateRange {
	anchor := c.stepUnit(c.floorToUnit(t), 1)
	return NewDateRange(anchor, c.addSpan(anchor))
}

// =============================================================================
// OrCond
// =============================================================================

func (c *Condition) lastActiveOr(t time.Time) (DateRange, bool) {
	var ranges []DateRange
	for _, ch := range c.Children {
		if r, ok := ch.LastActiveRange(t); ok {
			ranges = append(ranges, r)
		}
	}
	if len(ranges) == 0 {
		return DateRange{}, false
	}
	return NewRangeSet(ranges).LastRange()
}

func (c *Condition) nextOr(t time.Time) RangeSet {
	var ranges []DateRange
	for _, ch := range c.Children {
		ranges = append(ranges, ch.NextRanges(t).Ranges()...)
	}
	return NewRangeSet(ranges)
}

// =============================================================================
// AndCond
//
// last_active_range(t) and next_ranges(t) share one envelope-expand-then-
// intersect procedure, differing only in the initial per-child query and
// the final survivor filter:
//
//  1. Query each child immediately (last_active_range(t) or the first
//     element of next_ranges(t)); earliest_start = min of their starts,
//     latest_end = max of their ends (a child with no immediate range is
//     skipped here but still participates below).
//  2. Refine earliest_start against every child by re-querying it there,
//     in case some child's own window starts even earlier.
//  3. Cap the envelope at latest_end, or at t if latest_end is open (any
//     child's immediate range has no end).
//  4. For each child, enumerate its own ranges covering the envelope and
//     union them into one canonical set, bounded by maxAndIterations.
//  5. Intersect all children's per-child unions together.
//  6. Drop survivors with start > t (last_active_range) or start <= t
//     (next_ranges); return the last survivor, or the whole survivor set.
// =============================================================================

type andMode int

const (
	modeLast andMode = iota
	modeNext
)

// childImmediate is step 1's per-child query: the child's own relevant
// range at the original query instant.
func childImmediate(ch *Condition, mode andMode, at time.Time) (DateRange, bool) {
	if mode == modeLast {
		return ch.LastActiveRange(at)
	}
	return ch.NextRanges(at).FirstRange()
}

// childAtOrAfter is step 2's refine query: the child's range covering or
// starting at `at`, using the ±1ms trick so an exact-start coincidence is
// not missed.
func childAtOrAfter(ch *Condition, mode andMode, at time.Time) (DateRange, bool) {
	if mode == modeLast {
		return ch.LastActiveRange(at)
	}
	return ch.NextRanges(at.Add(-time.Millisecond)).FirstRange()
}

// unionWithinEnvelope enumerates ch's own ranges covering [envelopeStart,
// capInstant] and unions them into a single canonical RangeSet (step 4).
func unionWithinEnvelope(ch *Condition, envelopeStart, capInstant time.Time) RangeSet {
	first, ok := ch.LastActiveRange(envelopeStart.Add(-time.Millisecond))
	if !ok {
		f, ok2 := ch.NextRanges(envelopeStart.Add(-time.Millisecond)).FirstRange()
		if !ok2 {
			return RangeSet{}
		}
		first = f
	}
	collected := []DateRange{first}
	frontier := first
	for i := 0; i < maxAndIterations; i++ {
		if endAfterOrEqual(frontier.End, capInstant) {
			break
		}
		nxt, ok3 := ch.NextRanges(*frontier.End).FirstRange()
		if !ok3 {
			break
		}
		collected = append(collected, nxt)
		frontier = nxt
	}
	return NewRangeSet(collected)
}

func (c *Condition) andEval(t time.Time, mode andMode) RangeSet {
	var earliestStart time.Time
	var latestEnd *time.Time
	haveAny := false
	for _, ch := range c.Children {
		r, ok := childImmediate(ch, mode, t)
		if !ok {
			continue
		}
		if !haveAny || r.Start.Before(earliestStart) {
			earliestStart = r.Start
		}
		if !haveAny {
			latestEnd = r.End
		} else {
			latestEnd = maxEnd(latestEnd, r.End)
		}
		haveAny = true
	}
	if !haveAny {
		return RangeSet{}
	}

	// Refine against a snapshot of earliestStart, not a progressively
	// mutated one, so the result does not depend on the order children
	// were passed in.
	refineFrom := earliestStart
	for _, ch := range c.Children {
		if r, ok := childAtOrAfter(ch, mode, refineFrom); ok && r.Start.Before(earliestStart) {
			earliestStart = r.Start
		}
	}

	capInstant := t
	if latestEnd != nil {
		capInstant = *latestEnd
	}

	running := NewRangeSet([]DateRange{{Start: earliestStart, End: latestEnd}})
	for _, ch := range c.Children {
		running = running.Intersection(unionWithinEnvelope(ch, earliestStart, capInstant))
	}

	var survivors []DateRange
	for _, r := range running.Ranges() {
		if mode == modeLast {
			if !r.Start.After(t) {
				survivors = append(survivors, r)
			}
		} else if r.Start.After(t) {
			survivors = append(survivors, r)
		}
	}
	return NewRangeSet(survivors)
}

// =============================================================================
// NthCond
//
// Interpretation of the n-th occurrence as an ongoing recurring series: each
// window's n-step count restarts from the end of the previous window, so
// last_active_range/next_ranges remain meaningful for arbitrary future t
// rather than describing a single fixed occurrence (see DESIGN.md).
// =============================================================================

// seekAtOrAfter returns child's first range starting at or after from,
// using the ±1ms trick.
func seekAtOrAfter(child *Condition, from time.Time) (DateRange, bool) {
	return child.NextRanges(from.Add(-time.Millisecond)).FirstRange()
}

// nthWindow computes the n-th occurrence of the child at or after from, or
// ok=false if the child is exhausted (an open-ended range or a dry
// NextRanges) before the n-th step is reached.
func (c *Condition) nthWindow(from time.Time) (DateRange, bool) {
	cur, ok := seekAtOrAfter(c.Child, from)
	if !ok {
		return DateRange{}, false
	}
	for i := 2; i <= c.N; i++ {
		if cur.Open() {
			return DateRange{}, false
		}
		nxt, ok2 := seekAtOrAfter(c.Child, *cur.End)
		if !ok2 {
			return DateRange{}, false
		}
		cur = nxt
	}
	return cur, true
}

func (c *Condition) lastActiveNth(t time.Time) (DateRange, bool) {
	cand, ok := c.nthWindow(c.Anchor)
	if !ok || cand.Start.After(t) {
		return DateRange{}, false
	}
	for i := 0; i < maxAndIterations; i++ {
		if cand.Open() {
			return cand, true
		}
		nxt, ok2 := c.nthWindow(*cand.End)
		if !ok2 || nxt.Start.After(t) {
			return cand, true
		}
		cand = nxt
	}
	return cand, true
}

func (c *Condition) nextNth(t time.Time) RangeSet {
	cand, ok := c.nthWindow(c.Anchor)
	if !ok {
		return RangeSet{}
	}
	for i := 0; i < maxAndIterations && !cand.Start.After(t); i++ {
		if cand.Open() {
			return RangeSet{}
		}
		nxt, ok2 := c.nthWindow(*cand.End)
		if !ok2 {
			return RangeSet{}
		}
		cand = nxt
	}
	if !cand.Start.After(t) {
		return RangeSet{}
	}
	return singleton(cand)
}

// =============================================================================
// FirstAfterStartCond
// =============================================================================

func (c *Condition) firstAfterStartAt(aStart time.Time) (DateRange, bool) {
	query := aStart
	if c.Inclusive {
		query = query.Add(-time.Millisecond)
	}
	return c.B.NextRanges(query).FirstRange()
}

func (c *Condition) lastActiveFirstAfterStart(t time.Time) (DateRange, bool) {
	bCur, ok := c.B.LastActiveRange(t)
	if !ok {
		return DateRange{}, false
	}
	aQuery := bCur.Start
	if !c.Inclusive {
		aQuery = aQuery.Add(-time.Millisecond)
	}
	aCur, ok := c.A.LastActiveRange(aQuery)
	if !ok {
		return DateRange{}, false
	}
	return c.firstAfterStartAt(aCur.Start)
}

func (c *Condition) nextFirstAfterStart(t time.Time) RangeSet {
	if aCur, ok := c.A.LastActiveRange(t); ok && aCur.Contains(t) {
		if cand, ok2 := c.firstAfterStartAt(aCur.Start); ok2 && cand.Start.After(t) {
			return singleton(cand)
		}
	}
	from := t
	for i := 0; i < maxAndIterations; i++ {
		aNext, ok := c.A.NextRanges(from).FirstRange()
		if !ok {
			return RangeSet{}
		}
		cand, ok2 := c.firstAfterStartAt(aNext.Start)
		if ok2 && cand.Start.After(t) {
			return singleton(cand)
		}
		from = aNext.Start
	}
	return RangeSet{}
}
