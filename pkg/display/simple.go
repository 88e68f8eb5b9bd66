package display

import (
	"fmt"
	"io"

	"github.com/parivaar/kutir-report/pkg/aggregator"
	"github.com/parivaar/kutir-report/pkg/distribution"
)

// simpleFormatter formats output as terse one-line-per-row text.
type simpleFormatter struct {
	config Config
}

// FormatOverall implements Formatter.FormatOverall.
func (f *simpleFormatter) FormatOverall(w io.Writer, result aggregator.Result) error {
	for _, row := range sortedOverall(result) {
		span := weekSpan(row)
		if span != "" {
			span = " (" + span + ")"
		}
		if _, err := fmt.Fprintf(w, "%s%s: %s\n",
			row.Period, span, formatFloat(row.Attendance, 2)); err != nil {
			return err
		}
	}
	return nil
}

// FormatByType implements Formatter.FormatByType.
func (f *simpleFormatter) FormatByType(w io.Writer, rows []aggregator.TypeAggregate) error {
	for _, row := range sortedByType(rows) {
		if _, err := fmt.Fprintf(w, "%s %s: %s\n",
			row.Period, row.KutirType, formatFloat(row.Attendance, 2)); err != nil {
			return err
		}
	}
	return nil
}

// FormatKPIs implements Formatter.FormatKPIs.
func (f *simpleFormatter) FormatKPIs(w io.Writer, kpis aggregator.KPISummary) error {
	_, err := fmt.Fprintf(w, "Periods: %d | Max: %s | Mean: %s\n",
		kpis.Periods,
		formatFloat(kpis.Max, 2),
		formatFloat(kpis.Mean, 2))
	return err
}

// FormatDistribution implements Formatter.FormatDistribution.
func (f *simpleFormatter) FormatDistribution(w io.Writer, dist distribution.Distribution) error {
	for _, row := range dist.Wide {
		if _, err := fmt.Fprintf(w, "%s:", regionLabel(row.Region.District, row.Region.Qualifier)); err != nil {
			return err
		}
		for _, bucket := range dist.Categories {
			if _, err := fmt.Fprintf(w, " %s=%d", bucket, row.Counts[bucket]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " mean=%s\n", formatFloat(row.Mean, 2)); err != nil {
			return err
		}
	}
	return nil
}
