package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/scene/ecs"
)

// Report collects the configuration and results of one stress run.
type Report struct {
	Duration   time.Duration
	Entities   int
	Components int
	Systems    int
	Churn      float64

	TotalUpdates  int64
	TotalTime     time.Duration
	FrameTimes    FrameTimes
	CommandErrors int64
	Spawned       int64
	Killed        int64

	Scene     *ecs.SceneStats
	Scheduler *ecs.SchedulerStats

	GCPauseMetrics bool
	MemBefore      runtime.MemStats
	MemAfter       runtime.MemStats
}

// FrameTimes summarizes the duration of every UpdateSystems call.
type FrameTimes struct {
	Samples []time.Duration

	Fastest time.Duration
	Slowest time.Duration
	Mean    time.Duration
	P50     time.Duration
	P99     time.Duration
}

func (f *FrameTimes) Record(d time.Duration) {
	f.Samples = append(f.Samples, d)
}

// Summarize fills the aggregate fields from Samples. Samples keeps its order.
func (f *FrameTimes) Summarize() {
	if len(f.Samples) == 0 {
		return
	}

	sorted := slices.Clone(f.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	f.Fastest = sorted[0]
	f.Slowest = sorted[len(sorted)-1]
	f.Mean = total / time.Duration(len(sorted))
	f.P50 = sorted[rank(len(sorted), 0.50)]
	f.P99 = sorted[rank(len(sorted), 0.99)]
}

func rank(n int, p float64) int {
	return int(float64(n-1) * p)
}

var reportFuncs = template.FuncMap{
	"mib": func(b uint64) string {
		return fmt.Sprintf("%.2f MiB", float64(b)/(1<<20))
	},
	"delta": func(after, before uint64) int64 {
		return int64(after) - int64(before)
	},
	"gcs": func(after, before uint32) uint32 {
		return after - before
	},
	"pause": func(ns uint64) time.Duration {
		return time.Duration(ns)
	},
}

var reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(`
# Scene Stress Report

## Run
| Setting | Value |
|---|---|
| Duration | {{.Duration}} |
| Target entities | {{.Entities}} |
| Component types | {{.Components}} |
| Systems | {{.Systems}} |
| Churn per frame | {{.Churn}} |

## Frames
{{with .FrameTimes}}{{$.TotalUpdates}} updates in {{$.TotalTime}}: mean {{.Mean}}, p50 {{.P50}}, p99 {{.P99}}, fastest {{.Fastest}}, slowest {{.Slowest}}
{{end}}
Entities spawned {{.Spawned}}, destroyed {{.Killed}}, failed flushes {{.CommandErrors}}.
{{with .Scheduler}}
## Systems
| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{end}}{{end}}{{with .Scene}}
## Scene
{{.LiveEntityCount}} live entities over {{.RowCount}} rows, {{.FreeSlotCount}} free.

{{range .Components}}- {{.Name}}: {{.Count}} entities, {{.Capacity}} slots in {{.Blocks}} blocks
{{end}}{{end}}
## Memory
| | Before | After | Delta |
|---|---|---|---|
| Heap | {{mib .MemBefore.HeapAlloc}} | {{mib .MemAfter.HeapAlloc}} | {{delta .MemAfter.HeapAlloc .MemBefore.HeapAlloc}} |
| Total alloc | {{mib .MemBefore.TotalAlloc}} | {{mib .MemAfter.TotalAlloc}} | {{delta .MemAfter.TotalAlloc .MemBefore.TotalAlloc}} |
| Sys | {{mib .MemBefore.Sys}} | {{mib .MemAfter.Sys}} | {{delta .MemAfter.Sys .MemBefore.Sys}} |
{{if .GCPauseMetrics}}
{{gcs .MemAfter.NumGC .MemBefore.NumGC}} GC cycles, {{pause .MemAfter.PauseTotalNs}} total pause.
{{end}}`))

// Generate writes the report as Markdown.
func (r *Report) Generate(w io.Writer) error {
	return reportTemplate.Execute(w, r)
}
