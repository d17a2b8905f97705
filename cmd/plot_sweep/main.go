// Command plot_sweep renders the JSONL output of `freycheck sweep` as an
// interactive HTML page: a bar chart of classification-row hit counts and a
// scatter of comparisons vs. mismatches per grid cell.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	json "github.com/goccy/go-json"

	"frey-conductor/verify"
)

func main() {
	inPath := flag.String("in", "conductor_sweep.jsonl", "input sweep JSONL file")
	outPath := flag.String("out", "conductor_sweep.html", "output HTML file")
	flag.Parse()

	recs, err := readRecords(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "[debug] records loaded from %s: %d\n", *inPath, len(recs))

	page := components.NewPage().SetPageTitle("Conductor Verification Sweep")
	page.AddCharts(rowHitBar(recs), cellScatter(recs))

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		fmt.Fprintf(os.Stderr, "render error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s | cells: %d\n", *outPath, len(recs))
}

func readRecords(path string) ([]verify.SweepRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	var recs []verify.SweepRecord
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec verify.SweepRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no sweep records found in %s", path)
	}
	return recs, nil
}

// rowHitBar aggregates row hits across every cell into one bar chart, so a
// glance shows which rows of the cascade the sampling actually exercised.
func rowHitBar(recs []verify.SweepRecord) *charts.Bar {
	totals := map[string]int{}
	for _, rec := range recs {
		for row, hits := range rec.RowHits {
			totals[row] += hits
		}
	}
	rows := make([]string, 0, len(totals))
	for row := range totals {
		rows = append(rows, row)
	}
	sort.Strings(rows)

	items := make([]opts.BarData, 0, len(rows))
	for _, row := range rows {
		items = append(items, opts.BarData{Value: totals[row]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Classification row coverage"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 30}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "comparisons"}),
	)
	bar.SetXAxis(rows).AddSeries("hits", items)
	return bar
}

// cellScatter plots one point per grid cell: comparisons on x, mismatches on
// y, colored by wall time. A healthy sweep sits flat on the x axis.
func cellScatter(recs []verify.SweepRecord) *charts.Scatter {
	minUS, maxUS := recs[0].DurationUS, recs[0].DurationUS
	items := make([]opts.ScatterData, 0, len(recs))
	for _, rec := range recs {
		if rec.DurationUS < minUS {
			minUS = rec.DurationUS
		}
		if rec.DurationUS > maxUS {
			maxUS = rec.DurationUS
		}
		items = append(items, opts.ScatterData{Value: []interface{}{
			rec.Comparisons,
			rec.Mismatches,
			float64(rec.DurationUS) / 1000.0,
			rec.R,
			rec.MaxSize,
			rec.Trials,
			rec.SetMismatches,
		}})
	}
	if maxUS == minUS {
		maxUS = minUS + 1
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mismatches per sweep cell"}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
			Formatter: opts.FuncOpts(`
function (p) {
  var v = p.value || [];
  return [
    'r=' + v[3] + ', maxSize=' + v[4],
    'Trials: ' + v[5],
    'Comparisons: ' + v[0],
    'Mismatches: ' + v[1],
    'Set mismatches: ' + v[6],
    'Time: ' + v[2] + ' ms'
  ].join('<br/>');
}`),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "comparisons", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "mismatches", Type: "value"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Type:       "continuous",
			Dimension:  "2",
			Min:        float32(minUS) / 1000.0,
			Max:        float32(maxUS) / 1000.0,
			Calculable: opts.Bool(true),
			Left:       "left",
			Top:        "middle",
			InRange:    &opts.VisualMapInRange{Color: []string{"#0ea5e9", "#22c55e", "#ef4444"}},
		}),
	)
	sc.AddSeries("cells", items,
		charts.WithScatterChartOpts(opts.ScatterChart{Symbol: "circle", SymbolSize: 9}),
	)
	return sc
}
