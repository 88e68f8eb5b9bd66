// Package distribution builds the district-level attendance distribution.
//
// Using the two most recent periods of a detail series, it groups
// per-kutir attendance by district, classifies every kutir into an
// ordinal category bucket, and produces a wide pivot (one column per
// bucket plus a district mean) and a long pivot (one row per bucket)
// for stacked-chart rendering.
package distribution

import (
	"github.com/parivaar/kutir-report/pkg/category"
)

// RegionKey identifies a district within one reporting period.
//
// The key stays structured; the same district in two different periods
// is two distinct keys. Flattening to a display string (e.g.
// "Indore / 2024-W23") happens at the presentation boundary, never here.
type RegionKey struct {
	// District is the region name.
	District string

	// Period is the canonical period label.
	Period string

	// Qualifier is the human-readable period tag: the week's date range
	// for weekly results ("2024-06-03 to 2024-06-09"), the period label
	// itself otherwise.
	Qualifier string
}

// WideRow is one district-period row of the wide pivot.
type WideRow struct {
	Region RegionKey

	// Counts has one entry per category bucket, zero-filled for buckets
	// with no kutirs. Iterate with Categories for stable column order.
	Counts map[category.Category]int

	// Mean is the mean per-kutir attendance in this district-period.
	Mean float64
}

// LongRow is one (district-period, bucket) row of the tidy pivot.
type LongRow struct {
	Region   RegionKey
	Category category.Category

	// Kutirs is the number of kutirs classified into this bucket.
	Kutirs int
}

// Distribution is the full output of one build.
type Distribution struct {
	// Wide has one row per district-period, in period order then first
	// occurrence of district.
	Wide []WideRow

	// Long has len(Categories) rows per district-period, in category
	// order within each district-period.
	Long []LongRow

	// Categories is the ordered bucket dimension for chart rendering.
	Categories []category.Category
}
