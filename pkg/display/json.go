package display

import (
	"encoding/json"
	"io"

	"github.com/parivaar/kutir-report/pkg/aggregator"
	"github.com/parivaar/kutir-report/pkg/distribution"
)

// jsonFormatter formats output as JSON.
type jsonFormatter struct {
	config Config
}

// overallRow is the JSON shape of one overall series row.
type overallRow struct {
	Period     string  `json:"period"`
	Attendance float64 `json:"attendance"`
	WeekStart  string  `json:"week_start,omitempty"`
	WeekEnd    string  `json:"week_end,omitempty"`
}

func (f *jsonFormatter) encoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	if !f.config.Compact {
		enc.SetIndent("", "  ")
	}
	return enc
}

// FormatOverall implements Formatter.FormatOverall.
func (f *jsonFormatter) FormatOverall(w io.Writer, result aggregator.Result) error {
	rows := make([]overallRow, 0, len(result.Overall))
	for _, row := range sortedOverall(result) {
		out := overallRow{Period: row.Period, Attendance: row.Attendance}
		if row.Week != nil {
			out.WeekStart = row.Week.Start.Format("2006-01-02")
			out.WeekEnd = row.Week.End.Format("2006-01-02")
		}
		rows = append(rows, out)
	}

	return f.encoder(w).Encode(rows)
}

// FormatByType implements Formatter.FormatByType.
func (f *jsonFormatter) FormatByType(w io.Writer, rows []aggregator.TypeAggregate) error {
	return f.encoder(w).Encode(sortedByType(rows))
}

// FormatKPIs implements Formatter.FormatKPIs.
func (f *jsonFormatter) FormatKPIs(w io.Writer, kpis aggregator.KPISummary) error {
	return f.encoder(w).Encode(kpis)
}

// FormatDistribution implements Formatter.FormatDistribution.
func (f *jsonFormatter) FormatDistribution(w io.Writer, dist distribution.Distribution) error {
	type longRow struct {
		District  string `json:"district"`
		Period    string `json:"period"`
		Qualifier string `json:"qualifier"`
		Category  string `json:"category"`
		Kutirs    int    `json:"kutirs"`
	}

	rows := make([]longRow, 0, len(dist.Long))
	for _, row := range dist.Long {
		rows = append(rows, longRow{
			District:  row.Region.District,
			Period:    row.Region.Period,
			Qualifier: row.Region.Qualifier,
			Category:  string(row.Category),
			Kutirs:    row.Kutirs,
		})
	}

	return f.encoder(w).Encode(rows)
}
