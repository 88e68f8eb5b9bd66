// Package category classifies attendance values into ordinal buckets.
//
// The bucket set and its order are fixed: Unknown, <50, 50-75, 76-100,
// 100+. Charts and tables rely on this order for stable rendering, so
// it must be preserved verbatim wherever categories appear.
package category

// Category is one ordinal attendance bucket.
type Category string

// The fixed bucket set, in display order.
const (
	Unknown     Category = "Unknown"
	Below50     Category = "<50"
	From50To75  Category = "50-75"
	From76To100 Category = "76-100"
	Above100    Category = "100+"
)

// Order returns the buckets in their canonical display order.
//
// The returned slice is freshly allocated; callers may reorder their
// copy without affecting others.
func Order() []Category {
	return []Category{Unknown, Below50, From50To75, From76To100, Above100}
}

// Classify maps an attendance value to its bucket.
//
// A nil value (missing or non-numeric upstream) is Unknown; that is
// the only way to produce Unknown. Boundaries are inclusive as named:
// 50 and 75 fall in 50-75, 76 and exactly 100 fall in 76-100, anything
// strictly above 100 is 100+.
func Classify(value *float64) Category {
	if value == nil {
		return Unknown
	}

	v := *value
	switch {
	case v < 50:
		return Below50
	case v <= 75:
		return From50To75
	case v <= 100:
		return From76To100
	default:
		return Above100
	}
}
