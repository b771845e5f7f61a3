package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// BenchmarkResult mirrors the subset of cmd/bench output the graphs need.
type BenchmarkResult struct {
	Implementation string  `json:"implementation"`
	Workload       string  `json:"workload"`
	Capacity       int     `json:"capacity"`
	Ops            int64   `json:"ops"`
	ActualElapsed  string  `json:"actual_elapsed"` // measured time
	Throughput     float64 `json:"throughput_ops_sec"`
	Mallocs        uint64  `json:"mallocs"`
	NumGC          uint32  `json:"num_gc"`
}

// FullReport represents a complete test session.
type FullReport struct {
	SessionTime string            `json:"session_time"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// workloadStats holds "5%-avg-min", median, and "5%-avg-max" for one workload.
type workloadStats struct {
	x      float64 // category index plus per-implementation offset
	orig   string  // workload name
	min    float64 // "average of bottom 5%"
	median float64
	max    float64 // "average of top 5%"
}

// statsPoints implements XYer and YErrorer for workloadStats, so we can plot lines + error bars.
type statsPoints []workloadStats

func (s statsPoints) Len() int                { return len(s) }
func (s statsPoints) XY(i int) (x, y float64) { return s[i].x, s[i].median }
func (s statsPoints) YError(i int) (low, high float64) {
	low = s[i].median - s[i].min
	high = s[i].max - s[i].median
	return low, high
}

// categoryTicks implements a categorical X-axis: 0,1,2,... => workload labels.
type categoryTicks struct {
	positions []float64
	labels    []string
}

func (ct categoryTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, pos := range ct.positions {
		if pos >= min && pos <= max {
			ticks = append(ticks, plot.Tick{Value: pos, Label: ct.labels[i]})
		}
	}
	return ticks
}

// metric extracts one y value from a result; ok=false skips the result.
type metric struct {
	name   string
	label  string
	value  func(b BenchmarkResult) (float64, bool)
	format func(float64) string
}

var metrics = []metric{
	{
		name:  "ns_per_op",
		label: "Time per Op [log scale]",
		value: func(b BenchmarkResult) (float64, bool) {
			dur, err := time.ParseDuration(b.ActualElapsed)
			if err != nil || b.Ops == 0 {
				return 0, false
			}
			return float64(dur.Nanoseconds()) / float64(b.Ops), true
		},
		format: formatNs,
	},
	{
		name:  "mallocs_per_kop",
		label: "Heap allocations per 1000 ops [log scale]",
		value: func(b BenchmarkResult) (float64, bool) {
			if b.Ops == 0 {
				return 0, false
			}
			// +1 keeps allocation-free runs visible on the log axis.
			return float64(b.Mallocs)*1000/float64(b.Ops) + 1, true
		},
		format: func(v float64) string { return fmt.Sprintf("%.1f", v-1) },
	},
}

func main() {
	jsonFile := flag.String("jsonfile", "test-results.json", "Path to JSON file containing test sessions")
	outputPrefix := flag.String("out", "benchmark_graph", "Output graph image filename prefix")
	flag.Parse()

	data, err := os.ReadFile(*jsonFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading JSON file: %v\n", err)
		os.Exit(1)
	}

	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshalling JSON: %v\n", err)
		os.Exit(1)
	}

	for _, m := range metrics {
		// Group data by capacity -> implementation -> workload -> values.
		pointsByCapacity := make(map[int]map[string]map[string][]float64)
		for _, session := range sessions {
			for _, b := range session.Benchmarks {
				v, ok := m.value(b)
				if !ok {
					continue
				}
				implMap, ok := pointsByCapacity[b.Capacity]
				if !ok {
					implMap = make(map[string]map[string][]float64)
					pointsByCapacity[b.Capacity] = implMap
				}
				if _, ok := implMap[b.Implementation]; !ok {
					implMap[b.Implementation] = make(map[string][]float64)
				}
				implMap[b.Implementation][b.Workload] = append(implMap[b.Implementation][b.Workload], v)
			}
		}

		for capacity, implMap := range pointsByCapacity {
			p := buildPlot(m, capacity, implMap)
			filename := fmt.Sprintf("%s_%s_%d.png", *outputPrefix, m.name, capacity)
			if err := p.Save(12*vg.Inch, 9*vg.Inch, filename); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving plot for capacity %d: %v\n", capacity, err)
				continue
			}
			fmt.Printf("Graph %s for capacity %d saved to %s\n", m.name, capacity, filename)
		}
	}
}

func buildPlot(m metric, capacity int, implMap map[string]map[string][]float64) *plot.Plot {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (5%%-avg-min / Median / 5%%-avg-max) per Workload, capacity %d", m.name, capacity)
	p.X.Label.Text = "Workload"
	p.Y.Label.Text = m.label
	p.Y.Scale = plot.LogScale{}

	// Dark theme.
	p.BackgroundColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	p.Title.TextStyle.Color = white
	p.X.Label.TextStyle.Color = white
	p.Y.Label.TextStyle.Color = white
	p.X.Color = white
	p.Y.Color = white
	p.X.Tick.Label.Color = white
	p.Y.Tick.Label.Color = white
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Color = white

	p.Y.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick {
		// About one tick per 30px on a 648px tall plot.
		const nTicks = 648.0 / 30.0
		if min <= 0 {
			min = 1e-9
		}
		start := math.Log10(min)
		end := math.Log10(max)
		step := (end - start) / nTicks

		var ticks []plot.Tick
		for i := 0.0; i <= nTicks; i++ {
			y := math.Pow(10, start+i*step)
			ticks = append(ticks, plot.Tick{Value: y, Label: m.format(y)})
		}
		return ticks
	})

	p.Add(plotter.NewGrid())

	// Build union of workloads for this capacity.
	workloadSet := make(map[string]struct{})
	for _, implData := range implMap {
		for w := range implData {
			workloadSet[w] = struct{}{}
		}
	}
	var workloads []string
	for w := range workloadSet {
		workloads = append(workloads, w)
	}
	sort.Strings(workloads)

	// Map workload => category index.
	workloadIndex := make(map[string]float64)
	var positions []float64
	for i, w := range workloads {
		workloadIndex[w] = float64(i)
		positions = append(positions, float64(i))
	}
	p.X.Tick.Marker = categoryTicks{positions: positions, labels: workloads}

	// Sort implementations alphabetically for consistent legend ordering.
	var implNames []string
	for implName := range implMap {
		implNames = append(implNames, implName)
	}
	sort.Strings(implNames)

	colors := plotutil.SoftColors
	shapes := []draw.GlyphDrawer{
		draw.CircleGlyph{},
		draw.SquareGlyph{},
		draw.TriangleGlyph{},
		draw.CrossGlyph{},
		draw.PlusGlyph{},
	}

	// Slight offset so each implementation is visually separated.
	offsetRange := 0.4
	offsetStep := offsetRange / float64(len(implNames))
	startOffset := -offsetRange/2 + offsetStep/2

	for i, impl := range implNames {
		stats := buildStats(implMap[impl])
		if len(stats) == 0 {
			continue
		}
		for j := range stats {
			stats[j].x = workloadIndex[stats[j].orig] + startOffset + float64(i)*offsetStep
		}
		sort.Slice(stats, func(a, b int) bool {
			return stats[a].x < stats[b].x
		})
		sp := statsPoints(stats)

		points, err := plotter.NewScatter(sp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scatter: %v\n", err)
			continue
		}
		points.GlyphStyle.Radius = vg.Points(5)
		points.Color = colors[i%len(colors)]
		points.Shape = shapes[i%len(shapes)]

		yErrBars, err := plotter.NewYErrorBars(sp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating error bars: %v\n", err)
			continue
		}
		yErrBars.Color = colors[i%len(colors)]

		p.Add(points, yErrBars)
		p.Legend.Add(impl, points)
	}

	return p
}

// buildStats computes "average of bottom 5%", median, and "average of top 5%".
func buildStats(workloadMap map[string][]float64) []workloadStats {
	var out []workloadStats
	for w, vals := range workloadMap {
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		out = append(out, workloadStats{
			orig:   w,
			min:    averageOfRange(vals, 0.0, 0.05),
			median: median(vals),
			max:    averageOfRange(vals, 0.95, 1.0),
		})
	}
	return out
}

// averageOfRange returns the average of sortedVals in [startFrac, endFrac] of its length.
// E.g. averageOfRange(vals, 0, 0.05) is the average of the bottom 5%.
func averageOfRange(sortedVals []float64, startFrac, endFrac float64) float64 {
	n := len(sortedVals)
	if n == 0 {
		return 0
	}
	startIndex := int(float64(n) * startFrac)
	endIndex := int(float64(n) * endFrac)
	if endIndex > n {
		endIndex = n
	}
	if startIndex >= endIndex {
		// fallback to median if 5% slice is too small
		return median(sortedVals)
	}
	sum := 0.0
	for i := startIndex; i < endIndex; i++ {
		sum += sortedVals[i]
	}
	return sum / float64(endIndex-startIndex)
}

func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return 0.5 * (sorted[mid-1] + sorted[mid])
}

// formatNs nicely formats a nanoseconds value in ns, µs, ms, or s.
func formatNs(ns float64) string {
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.0fns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.1fµs", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.1fms", ns/1e6)
	default:
		return fmt.Sprintf("%.2fs", ns/1e9)
	}
}
