package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/parivaar/kutir-report/pkg/aggregator"
	"github.com/parivaar/kutir-report/pkg/distribution"
)

// tableFormatter formats output as aligned text tables.
type tableFormatter struct {
	config Config
}

// FormatOverall implements Formatter.FormatOverall.
func (f *tableFormatter) FormatOverall(w io.Writer, result aggregator.Result) error {
	title := fmt.Sprintf("Attendance by Period (%s)", result.Granularity)
	if err := writeHeader(w, title, f.config.Compact); err != nil {
		return err
	}

	rows := make([][]string, 0, len(result.Overall))
	weekly := false
	for _, row := range sortedOverall(result) {
		span := weekSpan(row)
		if span != "" {
			weekly = true
		}
		rows = append(rows, []string{row.Period, formatFloat(row.Attendance, 2), span})
	}

	header := []string{"Period", "Attendance", "Week"}
	if !weekly {
		header = header[:2]
		for i := range rows {
			rows[i] = rows[i][:2]
		}
	}

	return f.writeTable(w, header, rows)
}

// FormatByType implements Formatter.FormatByType.
func (f *tableFormatter) FormatByType(w io.Writer, rows []aggregator.TypeAggregate) error {
	if err := writeHeader(w, "Attendance by Kutir Type", f.config.Compact); err != nil {
		return err
	}

	out := make([][]string, 0, len(rows))
	for _, row := range sortedByType(rows) {
		out = append(out, []string{row.Period, row.KutirType, formatFloat(row.Attendance, 2)})
	}

	return f.writeTable(w, []string{"Period", "Type", "Attendance"}, out)
}

// FormatKPIs implements Formatter.FormatKPIs.
func (f *tableFormatter) FormatKPIs(w io.Writer, kpis aggregator.KPISummary) error {
	if err := writeHeader(w, "Attendance KPIs", f.config.Compact); err != nil {
		return err
	}

	rows := [][]string{
		{"Periods", formatCount(kpis.Periods)},
		{"Max Attendance", formatFloat(kpis.Max, 2)},
		{"Mean Attendance", formatFloat(kpis.Mean, 2)},
	}

	return f.writeTable(w, []string{"Metric", "Value"}, rows)
}

// FormatDistribution implements Formatter.FormatDistribution.
func (f *tableFormatter) FormatDistribution(w io.Writer, dist distribution.Distribution) error {
	if err := writeHeader(w, "District Distribution (last two periods)", f.config.Compact); err != nil {
		return err
	}

	header := make([]string, 0, len(dist.Categories)+2)
	header = append(header, "District / Period")
	for _, bucket := range dist.Categories {
		header = append(header, string(bucket))
	}
	header = append(header, "Mean")

	rows := make([][]string, 0, len(dist.Wide))
	for _, row := range dist.Wide {
		cells := make([]string, 0, len(header))
		cells = append(cells, regionLabel(row.Region.District, row.Region.Qualifier))
		for _, bucket := range dist.Categories {
			cells = append(cells, formatCount(row.Counts[bucket]))
		}
		cells = append(cells, formatFloat(row.Mean, 2))
		rows = append(rows, cells)
	}

	return f.writeTable(w, header, rows)
}

// writeTable writes a formatted table clamped to the width budget.
func (f *tableFormatter) writeTable(w io.Writer, header []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	f.clampWidths(widths)

	if err := f.writeRow(w, header, widths); err != nil {
		return err
	}

	if !f.config.Compact {
		separator := make([]string, len(header))
		for i, width := range widths {
			separator[i] = strings.Repeat("-", width)
		}
		if err := f.writeRow(w, separator, widths); err != nil {
			return err
		}
	}

	for _, row := range rows {
		if err := f.writeRow(w, row, widths); err != nil {
			return err
		}
	}

	if !f.config.Compact {
		_, err := fmt.Fprintln(w)
		return err
	}

	return nil
}

// clampWidths shrinks the widest columns until the table fits the
// terminal (or width budget), never below a readable minimum.
func (f *tableFormatter) clampWidths(widths []int) {
	const minWidth = 6

	budget := terminalWidth(f.config) - 2*(len(widths)-1)
	total := 0
	for _, w := range widths {
		total += w
	}

	for total > budget {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minWidth {
			break
		}
		widths[widest]--
		total--
	}
}

// writeRow writes one table row, truncating cells to column width.
func (f *tableFormatter) writeRow(w io.Writer, cells []string, widths []int) error {
	gap := "  "
	if f.config.Compact {
		gap = " "
	}

	for i, cell := range cells {
		if i > 0 {
			if _, err := fmt.Fprint(w, gap); err != nil {
				return err
			}
		}

		if len(cell) > widths[i] {
			if widths[i] > 1 {
				cell = cell[:widths[i]-1] + "~"
			} else {
				cell = cell[:widths[i]]
			}
		}

		if _, err := fmt.Fprintf(w, fmt.Sprintf("%%-%ds", widths[i]), cell); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}
