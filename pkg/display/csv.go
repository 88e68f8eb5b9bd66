package display

import (
	"encoding/csv"
	"io"

	"github.com/parivaar/kutir-report/pkg/aggregator"
	"github.com/parivaar/kutir-report/pkg/distribution"
)

// csvFormatter renders output as CSV for spreadsheet import.
type csvFormatter struct {
	config Config
}

// FormatOverall implements Formatter.FormatOverall.
func (f *csvFormatter) FormatOverall(w io.Writer, result aggregator.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"period", "attendance", "week_start", "week_end"}); err != nil {
		return err
	}

	for _, row := range sortedOverall(result) {
		start, end := "", ""
		if row.Week != nil {
			start = row.Week.Start.Format("2006-01-02")
			end = row.Week.End.Format("2006-01-02")
		}
		if err := cw.Write([]string{row.Period, formatFloat(row.Attendance, 2), start, end}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatByType implements Formatter.FormatByType.
func (f *csvFormatter) FormatByType(w io.Writer, rows []aggregator.TypeAggregate) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"period", "kutir_type", "attendance"}); err != nil {
		return err
	}

	for _, row := range sortedByType(rows) {
		if err := cw.Write([]string{row.Period, row.KutirType, formatFloat(row.Attendance, 2)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatKPIs implements Formatter.FormatKPIs.
func (f *csvFormatter) FormatKPIs(w io.Writer, kpis aggregator.KPISummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"periods", "max_attendance", "mean_attendance"}); err != nil {
		return err
	}
	if err := cw.Write([]string{
		formatCount(kpis.Periods),
		formatFloat(kpis.Max, 2),
		formatFloat(kpis.Mean, 2),
	}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// FormatDistribution implements Formatter.FormatDistribution.
//
// The wide pivot is exported: one row per district-period with one
// column per category bucket plus the district mean.
func (f *csvFormatter) FormatDistribution(w io.Writer, dist distribution.Distribution) error {
	cw := csv.NewWriter(w)

	header := []string{"district", "period", "qualifier"}
	for _, bucket := range dist.Categories {
		header = append(header, string(bucket))
	}
	header = append(header, "mean_attendance")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range dist.Wide {
		cells := []string{row.Region.District, row.Region.Period, row.Region.Qualifier}
		for _, bucket := range dist.Categories {
			cells = append(cells, formatCount(row.Counts[bucket]))
		}
		cells = append(cells, formatFloat(row.Mean, 2))
		if err := cw.Write(cells); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
