package display

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/parivaar/kutir-report/pkg/aggregator"
	"github.com/parivaar/kutir-report/pkg/category"
	"github.com/parivaar/kutir-report/pkg/distribution"
	"github.com/parivaar/kutir-report/pkg/period"
)

func sampleResult() aggregator.Result {
	week := period.WeekRange{
		Start: time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC),
	}
	return aggregator.Result{
		Granularity: period.Weekly,
		Overall: []aggregator.PeriodAggregate{
			{Period: "2024-W24", Attendance: 55.5},
			{Period: "2024-W23", Attendance: 70, Week: &week},
		},
		WeekRanges: map[string]period.WeekRange{"2024-W23": week},
	}
}

func sampleDistribution() distribution.Distribution {
	region := distribution.RegionKey{
		District:  "Indore",
		Period:    "2024-W23",
		Qualifier: "2024-06-03 to 2024-06-09",
	}
	dist := distribution.Distribution{
		Categories: category.Order(),
		Wide: []distribution.WideRow{
			{
				Region: region,
				Counts: map[category.Category]int{
					category.Unknown:     0,
					category.Below50:     1,
					category.From50To75:  2,
					category.From76To100: 0,
					category.Above100:    1,
				},
				Mean: 68.25,
			},
		},
	}
	for _, bucket := range dist.Categories {
		dist.Long = append(dist.Long, distribution.LongRow{
			Region:   region,
			Category: bucket,
			Kutirs:   dist.Wide[0].Counts[bucket],
		})
	}
	return dist
}

func TestNew_FormatSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
	}{
		{FormatTable},
		{FormatJSON},
		{FormatSimple},
		{FormatCSV},
		{Format("")},
	}

	for _, tt := range tests {
		if f := New(Config{Format: tt.format}); f == nil {
			t.Errorf("New(%q) returned nil", tt.format)
		}
	}
}

func TestTableFormatOverall(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatTable, MaxWidth: 120})

	if err := f.FormatOverall(&buf, sampleResult()); err != nil {
		t.Fatalf("FormatOverall() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Attendance by Period (weekly)") {
		t.Error("missing section title")
	}
	if !strings.Contains(out, "2024-W23") || !strings.Contains(out, "70.00") {
		t.Error("missing weekly row")
	}
	if !strings.Contains(out, "2024-06-03 to 2024-06-09") {
		t.Error("missing joined week range")
	}

	// Rows must come out chronologically even though the input is not.
	if strings.Index(out, "2024-W23") > strings.Index(out, "2024-W24") {
		t.Error("rows not in chronological order")
	}
}

func TestTableFormatOverall_NoWeekColumnForDaily(t *testing.T) {
	t.Parallel()

	result := aggregator.Result{
		Granularity: period.Daily,
		Overall: []aggregator.PeriodAggregate{
			{Period: "2024-06-03", Attendance: 45},
		},
	}

	var buf bytes.Buffer
	f := New(Config{Format: FormatTable, MaxWidth: 120})
	if err := f.FormatOverall(&buf, result); err != nil {
		t.Fatalf("FormatOverall() error = %v", err)
	}

	if strings.Contains(buf.String(), "Week") {
		t.Error("daily output carries a Week column")
	}
}

func TestTableFormatOverall_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatTable, MaxWidth: 120})

	if err := f.FormatOverall(&buf, aggregator.Result{Granularity: period.Weekly}); err != nil {
		t.Fatalf("FormatOverall() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No data") {
		t.Error("empty result should render No data")
	}
}

func TestTableFormatKPIs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatTable, MaxWidth: 120})

	kpis := aggregator.KPISummary{Periods: 3, Max: 90, Mean: 70}
	if err := f.FormatKPIs(&buf, kpis); err != nil {
		t.Fatalf("FormatKPIs() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Periods", "3", "Max Attendance", "90.00", "Mean Attendance", "70.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("KPI output missing %q", want)
		}
	}
}

func TestTableFormatDistribution(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatTable, MaxWidth: 200})

	if err := f.FormatDistribution(&buf, sampleDistribution()); err != nil {
		t.Fatalf("FormatDistribution() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Indore / 2024-06-03 to 2024-06-09") {
		t.Error("missing flattened region label")
	}
	for _, bucket := range category.Order() {
		if !strings.Contains(out, string(bucket)) {
			t.Errorf("missing category column %q", bucket)
		}
	}
	if !strings.Contains(out, "68.25") {
		t.Error("missing district mean")
	}
}

func TestJSONFormatOverall(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatJSON})

	if err := f.FormatOverall(&buf, sampleResult()); err != nil {
		t.Fatalf("FormatOverall() error = %v", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["period"] != "2024-W23" {
		t.Errorf("rows[0].period = %v, want 2024-W23", rows[0]["period"])
	}
	if rows[0]["week_start"] != "2024-06-03" {
		t.Errorf("rows[0].week_start = %v, want 2024-06-03", rows[0]["week_start"])
	}
	if _, present := rows[1]["week_start"]; present {
		t.Error("rows[1] has week_start despite missing range")
	}
}

func TestJSONFormatDistribution(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatJSON, Compact: true})

	if err := f.FormatDistribution(&buf, sampleDistribution()); err != nil {
		t.Fatalf("FormatDistribution() error = %v", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d long rows, want 5 (one per bucket)", len(rows))
	}
	if rows[1]["category"] != "<50" || rows[1]["kutirs"] != float64(1) {
		t.Errorf("rows[1] = %v, want <50 with 1 kutir", rows[1])
	}
}

func TestSimpleFormatOverall(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatSimple})

	if err := f.FormatOverall(&buf, sampleResult()); err != nil {
		t.Fatalf("FormatOverall() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "2024-W23 (2024-06-03 to 2024-06-09): 70.00" {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if lines[1] != "2024-W24: 55.50" {
		t.Errorf("lines[1] = %q", lines[1])
	}
}

func TestCSVFormatOverall(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatCSV})

	if err := f.FormatOverall(&buf, sampleResult()); err != nil {
		t.Fatalf("FormatOverall() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "period" || rows[0][2] != "week_start" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "2024-W23" || rows[1][1] != "70.00" || rows[1][2] != "2024-06-03" {
		t.Errorf("rows[1] = %v", rows[1])
	}
	if rows[2][2] != "" {
		t.Errorf("rows[2].week_start = %q, want empty", rows[2][2])
	}
}

func TestCSVFormatDistribution(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := New(Config{Format: FormatCSV})

	if err := f.FormatDistribution(&buf, sampleDistribution()); err != nil {
		t.Fatalf("FormatDistribution() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	wantHeader := []string{"district", "period", "qualifier", "Unknown", "<50", "50-75", "76-100", "100+", "mean_attendance"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	if rows[1][0] != "Indore" || rows[1][8] != "68.25" {
		t.Errorf("rows[1] = %v", rows[1])
	}
}

func TestFormatByType(t *testing.T) {
	t.Parallel()

	rows := []aggregator.TypeAggregate{
		{Period: "2024-W24", KutirType: "SRC", Attendance: 40},
		{Period: "2024-W23", KutirType: "FRC", Attendance: 50},
	}

	var buf bytes.Buffer
	f := New(Config{Format: FormatSimple})
	if err := f.FormatByType(&buf, rows); err != nil {
		t.Fatalf("FormatByType() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "2024-W23 FRC: 50.00" {
		t.Errorf("lines[0] = %q, want sorted by period", lines[0])
	}
}

func TestWriteRow_Truncation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := &tableFormatter{config: Config{MaxWidth: 24}}

	header := []string{"District / Period", "Mean"}
	rows := [][]string{{"A very long district name / 2024-06-03 to 2024-06-09", "70.00"}}

	if err := f.writeTable(&buf, header, rows); err != nil {
		t.Fatalf("writeTable() error = %v", err)
	}

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if len(line) > 24 {
			t.Errorf("line exceeds width budget: %q (%d cols)", line, len(line))
		}
	}
}
