package period

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Granularity
		ok    bool
	}{
		{"daily", Daily, true},
		{"weekly", Weekly, true},
		{"monthly", Monthly, true},
		{"yearly", Yearly, true},
		{"Weekly", Weekly, true},
		{"WEEKLY", Weekly, true},
		{"", "", false},
		{"hourly", "", false},
		{"week", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, ok := Parse(tt.input)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		time time.Time
		g    Granularity
		want string
	}{
		{"daily", date(2024, time.June, 3), Daily, "2024-06-03"},
		{"weekly mid-year", date(2024, time.June, 3), Weekly, "2024-W23"},
		{"weekly single digit week", date(2024, time.January, 10), Weekly, "2024-W02"},
		{"monthly", date(2024, time.June, 3), Monthly, "2024-06"},
		{"yearly", date(2024, time.June, 3), Yearly, "2024"},
		{"unknown granularity", date(2024, time.June, 3), Granularity("hourly"), ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Label(tt.time, tt.g); got != tt.want {
				t.Errorf("Label(%s, %s) = %q, want %q",
					tt.time.Format("2006-01-02"), tt.g, got, tt.want)
			}
		})
	}
}

func TestLabel_ISOYearBoundary(t *testing.T) {
	t.Parallel()

	// 2024-12-30 is a Monday belonging to ISO week 1 of 2025.
	if got := Label(date(2024, time.December, 30), Weekly); got != "2025-W01" {
		t.Errorf("Label(2024-12-30, Weekly) = %q, want %q", got, "2025-W01")
	}

	// 2021-01-01 is a Friday belonging to ISO week 53 of 2020.
	if got := Label(date(2021, time.January, 1), Weekly); got != "2020-W53" {
		t.Errorf("Label(2021-01-01, Weekly) = %q, want %q", got, "2020-W53")
	}
}

func TestParseWeekLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label    string
		wantYear int
		wantWeek int
		wantErr  bool
	}{
		{"2024-W23", 2024, 23, false},
		{"2025-W01", 2025, 1, false},
		{"2020-W53", 2020, 53, false}, // 2020 is a long ISO year
		{"2024-W53", 0, 0, true},      // 2024 has only 52 ISO weeks
		{"2024-W00", 0, 0, true},
		{"2024-W60", 0, 0, true},
		{"2024-23", 0, 0, true},
		{"2024-W2", 0, 0, true},
		{"garbage", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()

			year, week, err := ParseWeekLabel(tt.label)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseWeekLabel(%q) error = nil, want error", tt.label)
				}
				if !errors.Is(err, ErrMalformedWeekLabel) {
					t.Errorf("ParseWeekLabel(%q) error = %v, want ErrMalformedWeekLabel", tt.label, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWeekLabel(%q) error = %v", tt.label, err)
			}
			if year != tt.wantYear || week != tt.wantWeek {
				t.Errorf("ParseWeekLabel(%q) = (%d, %d), want (%d, %d)",
					tt.label, year, week, tt.wantYear, tt.wantWeek)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label     string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"2024-W23", date(2024, time.June, 3), date(2024, time.June, 9)},
		{"2025-W01", date(2024, time.December, 30), date(2025, time.January, 5)},
		{"2020-W53", date(2020, time.December, 28), date(2021, time.January, 3)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()

			r, err := Bounds(tt.label)
			if err != nil {
				t.Fatalf("Bounds(%q) error = %v", tt.label, err)
			}
			if !r.Start.Equal(tt.wantStart) {
				t.Errorf("Bounds(%q).Start = %s, want %s",
					tt.label, r.Start.Format("2006-01-02"), tt.wantStart.Format("2006-01-02"))
			}
			if !r.End.Equal(tt.wantEnd) {
				t.Errorf("Bounds(%q).End = %s, want %s",
					tt.label, r.End.Format("2006-01-02"), tt.wantEnd.Format("2006-01-02"))
			}
			if r.Start.Weekday() != time.Monday {
				t.Errorf("Bounds(%q).Start is a %s, want Monday", tt.label, r.Start.Weekday())
			}
			if r.End.Weekday() != time.Sunday {
				t.Errorf("Bounds(%q).End is a %s, want Sunday", tt.label, r.End.Weekday())
			}
		})
	}
}

func TestBounds_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := Bounds("2024-W53"); !errors.Is(err, ErrMalformedWeekLabel) {
		t.Errorf("Bounds(2024-W53) error = %v, want ErrMalformedWeekLabel", err)
	}
}

// warnCounter counts warnings for BuildWeekRanges diagnostics.
type warnCounter struct {
	warns int
}

func (w *warnCounter) Debug(string, ...interface{}) {}
func (w *warnCounter) Warn(string, ...interface{})  { w.warns++ }

func TestBuildWeekRanges(t *testing.T) {
	t.Parallel()

	log := &warnCounter{}
	labels := []string{"2024-W23", "2024-W24", "2024-W23", "bogus", "2024-W53"}

	ranges := BuildWeekRanges(labels, log)

	if len(ranges) != 2 {
		t.Fatalf("BuildWeekRanges() returned %d ranges, want 2", len(ranges))
	}
	if _, ok := ranges["2024-W23"]; !ok {
		t.Error("BuildWeekRanges() missing 2024-W23")
	}
	if _, ok := ranges["2024-W24"]; !ok {
		t.Error("BuildWeekRanges() missing 2024-W24")
	}
	if _, ok := ranges["bogus"]; ok {
		t.Error("BuildWeekRanges() resolved a malformed label")
	}
	if log.warns != 2 {
		t.Errorf("BuildWeekRanges() logged %d warnings, want 2", log.warns)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	in := time.Date(2024, time.June, 3, 14, 30, 12, 999, time.UTC)
	want := date(2024, time.June, 3)

	if got := Truncate(in); !got.Equal(want) {
		t.Errorf("Truncate() = %v, want %v", got, want)
	}
}

func TestGranularityValid(t *testing.T) {
	t.Parallel()

	for _, g := range []Granularity{Daily, Weekly, Monthly, Yearly} {
		if !g.Valid() {
			t.Errorf("%q.Valid() = false, want true", g)
		}
	}
	if Granularity("hourly").Valid() {
		t.Error(`Granularity("hourly").Valid() = true, want false`)
	}
}
