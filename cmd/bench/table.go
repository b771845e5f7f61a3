package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// outputMarkdownTable loads the JSON file and writes a Markdown table of the
// last session, averaged per implementation and workload.
func outputMarkdownTable(w io.Writer, jsonFile string) error {
	data, err := os.ReadFile(jsonFile)
	if err != nil {
		return fmt.Errorf("read JSON file %q: %w", jsonFile, err)
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	if len(sessions) == 0 {
		return errors.New("no sessions found in JSON")
	}
	// Use the last session for the table.
	writeMarkdownTable(w, sessions[len(sessions)-1])
	return nil
}

func writeMarkdownTable(w io.Writer, session FullReport) {
	// Build a map of implementation meta info.
	implMetaMap := make(map[string]Implementation)
	for _, impl := range getImplementations() {
		implMetaMap[impl.name] = impl
	}

	type key struct{ impl, workload string }
	type tableRow struct {
		implementation string
		workload       string
		pkgName        string
		features       string
		throughput     float64
		mallocs        float64
		gc             float64
		runs           int
	}

	rowsByKey := make(map[key]*tableRow)
	var order []key
	for _, bench := range session.Benchmarks {
		k := key{bench.Implementation, bench.Workload}
		row, ok := rowsByKey[k]
		if !ok {
			row = &tableRow{implementation: bench.Implementation, workload: bench.Workload}
			if meta, ok := implMetaMap[bench.Implementation]; ok {
				row.pkgName = meta.pkgName
				row.features = strings.Join(meta.features, ", ")
			}
			rowsByKey[k] = row
			order = append(order, k)
		}
		row.throughput += bench.Throughput
		row.mallocs += float64(bench.Mallocs)
		row.gc += float64(bench.NumGC)
		row.runs++
	}

	rows := make([]tableRow, 0, len(order))
	for _, k := range order {
		r := *rowsByKey[k]
		n := float64(r.runs)
		r.throughput /= n
		r.mallocs /= n
		r.gc /= n
		rows = append(rows, r)
	}
	// Sort rows by workload, then throughput descending.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].workload != rows[j].workload {
			return rows[i].workload < rows[j].workload
		}
		return rows[i].throughput > rows[j].throughput
	})

	fmt.Fprintln(w, "## Last Session Benchmark Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Implementation           | Workload   | Package     | Features                    | Throughput (ops/sec) | Mallocs/run | GC/run |")
	fmt.Fprintln(w, "|--------------------------|------------|-------------|-----------------------------|----------------------|-------------|--------|")
	for _, r := range rows {
		fmt.Fprintf(w, "| %-24s | %-10s | %-11s | %-27s | %20.0f | %11.0f | %6.1f |\n",
			r.implementation, r.workload, r.pkgName, r.features, r.throughput, r.mallocs, r.gc)
	}
}

// gatherSystemInfo collects basic CPU and memory details.
func gatherSystemInfo() SystemInfo {
	var cpuModel string
	var cpuSpeed float64
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		cpuModel = infos[0].ModelName
		cpuSpeed = infos[0].Mhz
	}

	var totalMemory uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMemory = vm.Total
	}

	return SystemInfo{
		NumCPU:      runtime.NumCPU(),
		CPUModel:    cpuModel,
		CPUSpeedMHz: cpuSpeed,
		GOARCH:      runtime.GOARCH,
		TotalMemory: totalMemory,
	}
}
