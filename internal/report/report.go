// Package report renders the weight distribution of emitted trails as an HTML page of bar charts.
package report

import (
	"fmt"
	"io"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/codahale/difftrail"
)

// A Histogram counts occurrences of integer weights.
type Histogram struct {
	counts map[int]int
	n      int
}

// Add records one occurrence of weight.
func (h *Histogram) Add(weight int) {
	if h.counts == nil {
		h.counts = make(map[int]int)
	}
	h.counts[weight]++
	h.n++
}

// Len returns the number of recorded weights.
func (h *Histogram) Len() int {
	return h.n
}

// Min returns the smallest recorded weight, or zero if none were recorded.
func (h *Histogram) Min() int {
	weights, _ := h.Bins()
	if len(weights) == 0 {
		return 0
	}
	return weights[0]
}

// Bins returns every weight from the smallest to the largest recorded, and the number of times each was recorded.
func (h *Histogram) Bins() (weights, counts []int) {
	if h.n == 0 {
		return nil, nil
	}

	keys := make([]int, 0, len(h.counts))
	for w := range h.counts {
		keys = append(keys, w)
	}
	lo, hi := slices.Min(keys), slices.Max(keys)

	for w := lo; w <= hi; w++ {
		weights = append(weights, w)
		counts = append(counts, h.counts[w])
	}
	return weights, counts
}

func (h *Histogram) chart(title string) *charts.Bar {
	weights, counts := h.Bins()

	labels := make([]string, len(weights))
	for i, w := range weights {
		labels[i] = fmt.Sprint(w)
	}

	items := make([]opts.BarData, len(counts))
	for i, c := range counts {
		items[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("n=%d, min=%d", h.n, h.Min())}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("trails", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

// Weights records the total and per-round weights of emitted solutions.
type Weights struct {
	Total  Histogram
	Rounds []Histogram
}

// Add records the weights of sol.
func (w *Weights) Add(sol difftrail.Solution) {
	w.Total.Add(sol.Weight())
	for len(w.Rounds) < len(sol.Rounds) {
		w.Rounds = append(w.Rounds, Histogram{})
	}
	for r, trail := range sol.Rounds {
		w.Rounds[r].Add(trail.Weight)
	}
}

// Render writes an HTML page with a histogram of total weights followed by one histogram per round.
func (w *Weights) Render(out io.Writer, title string) error {
	page := components.NewPage()
	page.PageTitle = title

	page.AddCharts(w.Total.chart(title + ": total weight"))
	for r := range w.Rounds {
		page.AddCharts(w.Rounds[r].chart(fmt.Sprintf("%s: round %d weight", title, r)))
	}

	return page.Render(out)
}
