package export

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
	"github.com/KaramelBytes/cubeloom-cli/internal/table"
)

// ChartConfig holds the size and theme of chart exports.
type ChartConfig struct {
	Width  string
	Height string
	Theme  string
	Color  string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{Width: "900px", Height: "500px", Theme: "light", Color: "#5470C6"}
}

// chartColumn picks the plotted column and the label column.
func chartColumn(t *table.Table, want string) (value, label table.ColumnSpec, err error) {
	cols := t.Columns()
	label = cols[0]
	for _, c := range cols {
		if c.Heading {
			label = c
			break
		}
	}
	for _, c := range cols {
		if want == "" && !c.Heading {
			return c, label, nil
		}
		if want != "" && (c.Key == want || c.Title == want) {
			return c, label, nil
		}
	}
	if want == "" {
		return value, label, errs.Config("chart", "table has no value column")
	}
	return value, label, errs.Config("chart", fmt.Sprintf("unknown column %q", want))
}

func writeChart(w io.Writer, doc Document, opt Options) error {
	valueCol, labelCol, err := chartColumn(doc.Table, opt.ChartColumn)
	if err != nil {
		return err
	}
	cfg := DefaultChartConfig()
	rows := doc.Table.SortedRows()
	xLabels := make([]string, 0, len(rows))
	yData := make([]opts.BarData, 0, len(rows))
	for _, r := range rows {
		// plot the exported number so the chart agrees with the table
		v, err := strconv.ParseFloat(table.FormatValue(r[valueCol.Key]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xLabels = append(xLabels, table.FormatValue(r[labelCol.Key]))
		yData = append(yData, opts.BarData{Value: v})
	}
	seriesName := valueCol.Title
	if seriesName == "" {
		seriesName = valueCol.Key
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  cfg.Width,
			Height: cfg.Height,
			Theme:  cfg.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    doc.Title,
			Subtitle: seriesName,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithColorsOpts(opts.Colors{cfg.Color}),
	)
	bar.SetXAxis(xLabels).
		AddSeries(seriesName, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)
	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
