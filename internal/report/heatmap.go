package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"labeleval/internal/confusion"
)

var heatmapColors = []string{"#f7fbff", "#c6dbef", "#6baed6", "#2171b5", "#08306b"}

// RenderHeatmaps writes one HTML page with a heatmap per confusion table.
func RenderHeatmaps(w io.Writer, emotion, dom *confusion.Table) error {
	page := components.NewPage()
	page.AddCharts(
		confusionHeatmap("Emotion mismatches", emotion),
		confusionHeatmap("Domain mismatches", dom),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render heatmaps: %w", err)
	}
	return nil
}

func confusionHeatmap(title string, t *confusion.Table) *charts.HeatMap {
	rows, cols := t.Rows(), t.Cols()
	data := make([]opts.HeatMapData, 0, t.Len())
	maxCount := 1
	for x, predicted := range cols {
		for y, manual := range rows {
			n := t.Count(manual, predicted)
			if n == 0 {
				continue
			}
			if n > maxCount {
				maxCount = n
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{x, y, n}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("pairs=%d cells=%d", t.Total(), t.Len())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: cols, Name: "predicted"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: rows, Name: "manual"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCount),
			InRange:    &opts.VisualMapInRange{Color: heatmapColors},
		}),
	)
	hm.AddSeries("pairs", data)
	return hm
}
