package aggregator

import (
	"github.com/parivaar/kutir-report/pkg/record"
)

// orderedSeries accumulates float values per key, remembering the first
// occurrence order of each key. The engine promises insertion-order
// output per grouping key; chronological sorting is the caller's call.
type orderedSeries struct {
	order  []string
	values map[string]float64
}

func newOrderedSeries() *orderedSeries {
	return &orderedSeries{
		order:  make([]string, 0),
		values: make(map[string]float64),
	}
}

// add accumulates v under key, registering key on first sight.
func (s *orderedSeries) add(key string, v float64) {
	if _, seen := s.values[key]; !seen {
		s.order = append(s.order, key)
	}
	s.values[key] += v
}

// detailKey identifies one (period, entity) detail row.
type detailKey struct {
	period string
	entity string
}

// orderedDetail accumulates per-kutir rows in first-occurrence order.
type orderedDetail struct {
	order []detailKey
	byKey map[detailKey]*EntityAggregate
}

func newOrderedDetail() *orderedDetail {
	return &orderedDetail{
		order: make([]detailKey, 0),
		byKey: make(map[detailKey]*EntityAggregate),
	}
}

// row returns the row for (period, entity), creating it from rec's
// identifying columns on first sight.
func (d *orderedDetail) row(periodLabel, entity string, rec record.AttendanceRecord) *EntityAggregate {
	key := detailKey{period: periodLabel, entity: entity}
	if existing, ok := d.byKey[key]; ok {
		return existing
	}

	row := &EntityAggregate{
		Period:    periodLabel,
		Kutir:     rec.KutirName,
		KutirType: rec.KutirType,
		District:  rec.District,
	}
	d.byKey[key] = row
	d.order = append(d.order, key)
	return row
}

// get returns the existing row for (period, entity). The row must have
// been registered via row first.
func (d *orderedDetail) get(periodLabel, entity string) *EntityAggregate {
	return d.byKey[detailKey{period: periodLabel, entity: entity}]
}

// rows materializes the accumulated rows in first-occurrence order.
func (d *orderedDetail) rows() []EntityAggregate {
	out := make([]EntityAggregate, 0, len(d.order))
	for _, key := range d.order {
		out = append(out, *d.byKey[key])
	}
	return out
}
