package distribution

import (
	"sort"

	"github.com/parivaar/kutir-report/pkg/aggregator"
	"github.com/parivaar/kutir-report/pkg/category"
	"github.com/parivaar/kutir-report/pkg/period"
)

// Build derives the district distribution from a detail series.
//
// Parameters:
//   - detail: Per-kutir detail series (weekly rows already carry the
//     per-kutir weekly average; other granularities carry sums)
//   - g: Granularity the detail series was computed at
//   - weekRanges: Week-range table from the same aggregation call;
//     ignored for non-weekly granularities
//
// Only the two most recent periods are considered. For weekly results
// recency follows the chronological week start from the range table
// (labels without a resolvable range fall back to label order); other
// granularities order by label, which is chronological because labels
// are zero-padded. Empty input yields an empty Distribution.
func Build(detail []aggregator.EntityAggregate, g period.Granularity, weekRanges map[string]period.WeekRange) Distribution {
	dist := Distribution{
		Wide:       []WideRow{},
		Long:       []LongRow{},
		Categories: category.Order(),
	}

	selected := recentPeriods(detail, g, weekRanges, 2)
	if len(selected) == 0 {
		return dist
	}

	inSelection := make(map[string]bool, len(selected))
	for _, p := range selected {
		inSelection[p] = true
	}

	// Per (district-period, kutir) attendance. Weekly detail rows are
	// already one per kutir with the computed weekly average; summing
	// keeps the builder safe against callers passing unmerged rows.
	type kutirKey struct {
		region RegionKey
		kutir  string
	}

	regionOrder := make([]RegionKey, 0)
	seenRegion := make(map[RegionKey]bool)
	values := make(map[kutirKey]float64)
	kutirOrder := make([]kutirKey, 0, len(detail))

	for _, row := range detail {
		if !inSelection[row.Period] {
			continue
		}

		region := RegionKey{
			District:  row.District,
			Period:    row.Period,
			Qualifier: qualifier(row.Period, g, weekRanges),
		}
		if !seenRegion[region] {
			seenRegion[region] = true
			regionOrder = append(regionOrder, region)
		}

		k := kutirKey{region: region, kutir: row.Kutir}
		if _, seen := values[k]; !seen {
			kutirOrder = append(kutirOrder, k)
		}
		values[k] += row.Attendance
	}

	// Classify each kutir and accumulate per-region counts and means.
	counts := make(map[RegionKey]map[category.Category]int)
	sums := make(map[RegionKey]float64)
	kutirs := make(map[RegionKey]int)

	for _, k := range kutirOrder {
		v := values[k]
		bucket := category.Classify(&v)

		if counts[k.region] == nil {
			counts[k.region] = make(map[category.Category]int)
		}
		counts[k.region][bucket]++
		sums[k.region] += v
		kutirs[k.region]++
	}

	// Emit regions grouped by selected period order, preserving first
	// occurrence of district within each period.
	sortRegions(regionOrder, selected)

	for _, region := range regionOrder {
		wide := WideRow{
			Region: region,
			Counts: make(map[category.Category]int, len(dist.Categories)),
		}
		for _, bucket := range dist.Categories {
			n := counts[region][bucket]
			wide.Counts[bucket] = n
			dist.Long = append(dist.Long, LongRow{Region: region, Category: bucket, Kutirs: n})
		}
		if kutirs[region] > 0 {
			wide.Mean = sums[region] / float64(kutirs[region])
		}
		dist.Wide = append(dist.Wide, wide)
	}

	return dist
}

// recentPeriods returns up to n most recent period labels present in
// the detail series, oldest first.
func recentPeriods(detail []aggregator.EntityAggregate, g period.Granularity, weekRanges map[string]period.WeekRange, n int) []string {
	seen := make(map[string]bool)
	labels := make([]string, 0)
	for _, row := range detail {
		if !seen[row.Period] {
			seen[row.Period] = true
			labels = append(labels, row.Period)
		}
	}

	if g == period.Weekly {
		sort.SliceStable(labels, func(i, j int) bool {
			ri, iOK := weekRanges[labels[i]]
			rj, jOK := weekRanges[labels[j]]
			if iOK && jOK {
				return ri.Start.Before(rj.Start)
			}
			return labels[i] < labels[j]
		})
	} else {
		sort.Strings(labels)
	}

	if len(labels) > n {
		labels = labels[len(labels)-n:]
	}
	return labels
}

// qualifier renders the human-readable period tag for a region key.
func qualifier(label string, g period.Granularity, weekRanges map[string]period.WeekRange) string {
	if g != period.Weekly {
		return label
	}
	r, ok := weekRanges[label]
	if !ok {
		// Unresolvable week label: the bare label beats an absent tag.
		return label
	}
	return r.Start.Format("2006-01-02") + " to " + r.End.Format("2006-01-02")
}

// sortRegions orders region keys by their period's position in the
// selected-period list, keeping district first-occurrence order inside
// each period (stable sort).
func sortRegions(regions []RegionKey, selected []string) {
	pos := make(map[string]int, len(selected))
	for i, p := range selected {
		pos[p] = i
	}
	sort.SliceStable(regions, func(i, j int) bool {
		return pos[regions[i].Period] < pos[regions[j].Period]
	})
}
