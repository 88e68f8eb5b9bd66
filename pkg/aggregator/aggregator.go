package aggregator

import (
	"github.com/parivaar/kutir-report/pkg/period"
	"github.com/parivaar/kutir-report/pkg/record"
)

// aggregator implements the Aggregator interface.
type aggregator struct {
	logger Logger
}

// New creates a new aggregator.
//
// Parameters:
//   - cfg: Aggregator configuration
//
// Returns a configured Aggregator.
func New(cfg Config) Aggregator {
	log := cfg.Logger
	if log == nil {
		log = noopLogger{}
	}

	return &aggregator{logger: log}
}

// Aggregate implements Aggregator.Aggregate.
func (a *aggregator) Aggregate(records []record.AttendanceRecord, g period.Granularity) Result {
	result := Result{
		Granularity: g,
		Overall:     []PeriodAggregate{},
		Detail:      []EntityAggregate{},
		WeekRanges:  map[string]period.WeekRange{},
	}

	// Fail-soft: a typo'd granularity reads as "no data", not a crash.
	if !g.Valid() {
		a.logger.Warn("unsupported granularity, returning empty aggregates", "granularity", string(g))
		return result
	}

	if len(records) == 0 {
		return result
	}

	if g == period.Weekly {
		a.aggregateWeekly(records, &result)
	} else {
		a.aggregateSummed(records, g, &result)
	}

	return result
}

// aggregateSummed handles daily, monthly and yearly granularities:
// group by (period, kutir) and sum, overall = sum across kutirs.
func (a *aggregator) aggregateSummed(records []record.AttendanceRecord, g period.Granularity, result *Result) {
	overall := newOrderedSeries()
	detail := newOrderedDetail()

	for _, rec := range records {
		label := period.Label(rec.Date, g)

		overall.add(label, float64(rec.StudentAttendance))

		row := detail.row(label, entityKey(rec), rec)
		row.Attendance += float64(rec.StudentAttendance)
	}

	for _, label := range overall.order {
		result.Overall = append(result.Overall, PeriodAggregate{
			Period:     label,
			Attendance: overall.values[label],
		})
	}
	result.Detail = detail.rows()
}

// aggregateWeekly applies the two-stage averaging rule.
//
// Summing a week naively would let kutirs attending more days dominate
// the figure. Instead: same-day rows (shifts) collapse into one daily
// total per kutir, each kutir is scored by its weekly average over the
// days it actually recorded, and the overall weekly figure is the mean
// of those per-kutir averages.
func (a *aggregator) aggregateWeekly(records []record.AttendanceRecord, result *Result) {
	// Stage 1: daily total per (week, kutir, date).
	type dayKey struct {
		week   string
		entity string
		date   string
	}

	dailyTotals := make(map[dayKey]float64, len(records))
	detail := newOrderedDetail()

	for _, rec := range records {
		week := period.Label(rec.Date, period.Weekly)

		// Register the (week, kutir) row in first-occurrence order.
		detail.row(week, entityKey(rec), rec)

		k := dayKey{week: week, entity: entityKey(rec), date: rec.Date.Format("2006-01-02")}
		if _, seen := dailyTotals[k]; !seen {
			detail.get(week, entityKey(rec)).Days++
		}
		dailyTotals[k] += float64(rec.StudentAttendance)
	}

	// Stage 2: per-kutir weekly average over its recorded days.
	for k, total := range dailyTotals {
		detail.get(k.week, k.entity).Attendance += total
	}
	for _, row := range detail.order {
		r := detail.get(row.period, row.entity)
		if r.Days > 0 {
			r.Attendance /= float64(r.Days)
		} else {
			// Cannot occur after grouping, but a zero beats a panic.
			r.Attendance = 0
		}
	}

	// Stage 3: overall weekly figure = mean of per-kutir averages.
	weekEntities := newOrderedSeries()
	weekCounts := make(map[string]int)
	for _, key := range detail.order {
		r := detail.get(key.period, key.entity)
		weekEntities.add(key.period, r.Attendance)
		weekCounts[key.period]++
	}

	labels := make([]string, 0, len(weekEntities.order))
	labels = append(labels, weekEntities.order...)
	result.WeekRanges = period.BuildWeekRanges(labels, a.logger)

	for _, label := range weekEntities.order {
		agg := PeriodAggregate{
			Period:     label,
			Attendance: weekEntities.values[label] / float64(weekCounts[label]),
		}
		if r, ok := result.WeekRanges[label]; ok {
			wr := r
			agg.Week = &wr
		}
		result.Overall = append(result.Overall, agg)
	}
	result.Detail = detail.rows()
}

// ByType collapses the detail series into the breakdown-by-type series.
//
// Weekly results take the mean of per-kutir weekly averages within each
// (period, type) — the same mean-of-means discipline as the overall
// series. Other granularities sum, consistent with their overall policy.
func (r Result) ByType() []TypeAggregate {
	sums := newOrderedSeries()
	counts := make(map[string]int)
	types := make(map[string]TypeAggregate)

	for _, row := range r.Detail {
		key := row.Period + "\x1f" + row.KutirType
		sums.add(key, row.Attendance)
		counts[key]++
		if _, seen := types[key]; !seen {
			types[key] = TypeAggregate{Period: row.Period, KutirType: row.KutirType}
		}
	}

	out := make([]TypeAggregate, 0, len(sums.order))
	for _, key := range sums.order {
		t := types[key]
		t.Attendance = sums.values[key]
		if r.Granularity == period.Weekly {
			t.Attendance /= float64(counts[key])
		}
		out = append(out, t)
	}
	return out
}

// KPIs reduces an overall series to its headline figures.
//
// Every field is zero on empty input; the caller never sees NaN.
func KPIs(overall []PeriodAggregate) KPISummary {
	if len(overall) == 0 {
		return KPISummary{}
	}

	summary := KPISummary{Periods: len(overall)}

	var sum float64
	for _, p := range overall {
		sum += p.Attendance
		if p.Attendance > summary.Max {
			summary.Max = p.Attendance
		}
	}
	summary.Mean = sum / float64(len(overall))

	return summary
}

// entityKey identifies a kutir for grouping. Districts can reuse kutir
// names, so the key is the (district, name) pair.
func entityKey(rec record.AttendanceRecord) string {
	return rec.District + "\x1f" + rec.KutirName
}

// noopLogger discards all diagnostics.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}
