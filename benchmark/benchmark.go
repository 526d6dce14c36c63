// Package benchmark measures end-to-end throughput of the image pipeline:
// decode, resize, and encode against synthesized source frames.
package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/fastimage/go-fastimage/codec"
	"github.com/fastimage/go-fastimage/engine"
	"github.com/fastimage/go-fastimage/profiler"
	"github.com/fastimage/go-fastimage/raster"
	"github.com/fastimage/go-fastimage/raster/kernels"
)

// Resolution represents image dimensions for benchmarking
type Resolution struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Name   string `json:"name"`
}

// Common resolutions for benchmarking
var CommonResolutions = []Resolution{
	{Width: 640, Height: 480, Name: "640x480"},
	{Width: 1280, Height: 720, Name: "1280x720"},
	{Width: 1920, Height: 1080, Name: "1920x1080"},
	{Width: 2560, Height: 1440, Name: "2560x1440"},
	{Width: 3840, Height: 2160, Name: "3840x2160"},
}

// Scenario defines a specific pipeline configuration to measure. Format and
// filter names use the same spellings the CLI accepts and are resolved when
// the scenario runs.
type Scenario struct {
	Name         string     `json:"name"`
	Source       Resolution `json:"source"`
	SourceFormat string     `json:"source_format"`
	Target       Resolution `json:"target"`
	Filter       string     `json:"filter"`
	OutputFormat string     `json:"output_format"`
	Quality      int        `json:"quality"`
	Iterations   int        `json:"iterations"`
	WarmupRuns   int        `json:"warmup_runs"`
}

// Suite manages and executes benchmark scenarios
type Suite struct {
	scenarios []Scenario
	engine    *engine.Engine
	outputDir string
	sources   map[string][]byte
	mu        sync.RWMutex
	results   []PerformanceMetrics
}

// NewSuite creates a new benchmark suite backed by the given engine.
func NewSuite(eng *engine.Engine, outputDir string) *Suite {
	return &Suite{
		engine:    eng,
		outputDir: outputDir,
		sources:   make(map[string][]byte),
		scenarios: make([]Scenario, 0),
		results:   make([]PerformanceMetrics, 0),
	}
}

// AddScenario adds a test scenario to the benchmark suite
func (bs *Suite) AddScenario(scenario Scenario) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.scenarios = append(bs.scenarios, scenario)
}

// RunScenario executes a single benchmark scenario
func (bs *Suite) RunScenario(ctx context.Context, scenario Scenario) (*PerformanceMetrics, error) {
	if scenario.Iterations < 1 {
		return nil, errors.Errorf("scenario %s has no iterations", scenario.Name)
	}

	source, err := bs.sourceBytes(scenario)
	if err != nil {
		return nil, err
	}
	filter, err := kernels.ParseFilter(scenario.Filter)
	if err != nil {
		return nil, err
	}
	output, err := codec.ParseFormat(scenario.OutputFormat)
	if err != nil {
		return nil, err
	}

	metrics := &PerformanceMetrics{
		Scenario:  scenario,
		Timestamp: time.Now(),
	}

	// Warmup runs
	for i := 0; i < scenario.WarmupRuns; i++ {
		if _, err := bs.processOnce(source, scenario, filter, output, nil); err != nil {
			continue // Skip warmup errors
		}
	}

	// Capture initial memory stats
	var startMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&startMem)

	tracker := profiler.NewTracker(scenario.Iterations)
	startTime := time.Now()
	encodedBytes := 0
	failures := 0

	// Run benchmark iterations
	for i := 0; i < scenario.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := bs.processOnce(source, scenario, filter, output, tracker)
		if err != nil {
			failures++
			continue
		}

		encodedBytes += n
	}

	totalDuration := time.Since(startTime)

	// Capture final memory stats
	var endMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&endMem)

	// Calculate metrics
	metrics.TotalDuration = totalDuration
	metrics.FramesPerSecond = float64(scenario.Iterations) / totalDuration.Seconds()
	metrics.EncodedBytes = encodedBytes
	metrics.ErrorRate = float64(failures) / float64(scenario.Iterations)

	stages := tracker.Stats()
	metrics.StageTimings = stages
	metrics.DecodeDuration = stages["decode"].Total
	metrics.ResizeDuration = stages["resize"].Total
	metrics.EncodeDuration = stages["encode"].Total

	metrics.MemoryStats = MemoryMetrics{
		AllocBytes:      endMem.Alloc,
		TotalAllocBytes: endMem.TotalAlloc - startMem.TotalAlloc,
		SysBytes:        endMem.Sys,
		NumGC:           endMem.NumGC - startMem.NumGC,
		HeapAllocBytes:  endMem.HeapAlloc,
		HeapSysBytes:    endMem.HeapSys,
	}

	metrics.CPUStats = CPUMetrics{
		NumCPU: runtime.NumCPU(),
	}

	return metrics, nil
}

// processOnce pushes one frame through decode, resize, and encode, recording
// stage durations on tracker when it is non-nil.
func (bs *Suite) processOnce(
	source []byte,
	scenario Scenario,
	filter kernels.Filter,
	output codec.Format,
	tracker *profiler.Tracker,
) (int, error) {
	decodeStart := time.Now()
	src, code := bs.engine.LoadFromMemory(source)
	if code != engine.Success {
		return 0, errors.Errorf("decode: %s", code)
	}
	decodeDuration := time.Since(decodeStart)

	resizeStart := time.Now()
	dst, code := bs.engine.ResizeExact(src, uint32(scenario.Target.Width), uint32(scenario.Target.Height), filter)
	if code != engine.Success {
		bs.engine.Free(src)
		return 0, errors.Errorf("resize: %s", code)
	}
	resizeDuration := time.Since(resizeStart)

	encodeStart := time.Now()
	buf, code := bs.engine.Encode(dst, output, codec.EncodeOptions{
		JPEGQuality: scenario.Quality,
		WebPQuality: float32(scenario.Quality),
	})
	if code != engine.Success {
		bs.engine.Free(dst)
		bs.engine.Free(src)
		return 0, errors.Errorf("encode: %s", code)
	}
	encodeDuration := time.Since(encodeStart)

	data, _ := bs.engine.BufferBytes(buf)
	n := len(data)

	bs.engine.FreeBuffer(buf)
	bs.engine.Free(dst)
	bs.engine.Free(src)

	if tracker != nil {
		tracker.Record("decode", decodeDuration)
		tracker.Record("resize", resizeDuration)
		tracker.Record("encode", encodeDuration)
	}

	return n, nil
}

// sourceBytes returns an encoded frame matching the scenario's source shape,
// synthesizing and caching it on first use.
func (bs *Suite) sourceBytes(scenario Scenario) ([]byte, error) {
	key := fmt.Sprintf("%dx%d_%s", scenario.Source.Width, scenario.Source.Height, scenario.SourceFormat)

	bs.mu.RLock()
	data, ok := bs.sources[key]
	bs.mu.RUnlock()
	if ok {
		return data, nil
	}

	format, err := codec.ParseFormat(scenario.SourceFormat)
	if err != nil {
		return nil, err
	}
	if scenario.Source.Width < 1 || scenario.Source.Height < 1 {
		return nil, errors.Errorf("scenario %s has an empty source resolution", scenario.Name)
	}

	img := raster.New(scenario.Source.Width, scenario.Source.Height, raster.RGBA8)
	fillTestPattern(img)

	data, err = codec.Encode(img, format, codec.EncodeOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "synthesize %s source", scenario.SourceFormat)
	}

	bs.mu.Lock()
	bs.sources[key] = data
	bs.mu.Unlock()

	return data, nil
}

// fillTestPattern writes a deterministic gradient so the encoded source is
// not a trivially compressible flat field.
func fillTestPattern(img *raster.Image) {
	i := 0
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			img.Pix[i+0] = byte(x * 7)
			img.Pix[i+1] = byte(y * 5)
			img.Pix[i+2] = byte((x + y) * 3)
			img.Pix[i+3] = 0xFF
			i += 4
		}
	}
}

// RunAllScenarios executes all configured benchmark scenarios
func (bs *Suite) RunAllScenarios(ctx context.Context) error {
	bs.mu.RLock()
	scenarios := make([]Scenario, len(bs.scenarios))
	copy(scenarios, bs.scenarios)
	bs.mu.RUnlock()

	for _, scenario := range scenarios {
		metrics, err := bs.RunScenario(ctx, scenario)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Printf("Scenario %s failed: %v\n", scenario.Name, err)
			continue
		}

		bs.mu.Lock()
		bs.results = append(bs.results, *metrics)
		bs.mu.Unlock()

		fmt.Printf("Scenario %s completed: %.2f FPS\n", scenario.Name, metrics.FramesPerSecond)
	}

	return bs.SaveResults()
}

// SaveResults persists benchmark results to filesystem
func (bs *Suite) SaveResults() error {
	bs.mu.RLock()
	results := make([]PerformanceMetrics, len(bs.results))
	copy(results, bs.results)
	bs.mu.RUnlock()

	// Ensure output directory exists
	if err := os.MkdirAll(bs.outputDir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	// Save detailed results as JSON
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	resultsFile := filepath.Join(bs.outputDir, fmt.Sprintf("benchmark_results_%s.json", timestamp))

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal results")
	}

	if err := os.WriteFile(resultsFile, data, 0o644); err != nil {
		return errors.Wrap(err, "write results file")
	}

	// Save summary CSV
	summaryFile := filepath.Join(bs.outputDir, fmt.Sprintf("benchmark_summary_%s.csv", timestamp))
	if err := bs.saveSummaryCSV(summaryFile, results); err != nil {
		return errors.Wrap(err, "save summary CSV")
	}

	fmt.Printf("Results saved to: %s\n", resultsFile)
	fmt.Printf("Summary saved to: %s\n", summaryFile)

	return nil
}

func (bs *Suite) saveSummaryCSV(filename string, results []PerformanceMetrics) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	// Write CSV header
	header := "Scenario,Source,Target,Filter,Output,FPS,Total_Duration_ms,Decode_ms,Resize_ms,Encode_ms,Avg_Memory_MB,Error_Rate\n"
	if _, err := file.WriteString(header); err != nil {
		return err
	}

	// Write data rows
	for _, result := range results {
		avgMemoryMB := float64(result.MemoryStats.AllocBytes) / (1024 * 1024)
		line := fmt.Sprintf("%s,%s,%s,%s,%s,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.4f\n",
			result.Scenario.Name,
			result.Scenario.Source.Name,
			result.Scenario.Target.Name,
			result.Scenario.Filter,
			result.Scenario.OutputFormat,
			result.FramesPerSecond,
			float64(result.TotalDuration.Nanoseconds())/1e6,
			float64(result.DecodeDuration.Nanoseconds())/1e6,
			float64(result.ResizeDuration.Nanoseconds())/1e6,
			float64(result.EncodeDuration.Nanoseconds())/1e6,
			avgMemoryMB,
			result.ErrorRate,
		)
		if _, err := file.WriteString(line); err != nil {
			return err
		}
	}

	return nil
}

// GetResults returns all benchmark results
func (bs *Suite) GetResults() []PerformanceMetrics {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	results := make([]PerformanceMetrics, len(bs.results))
	copy(results, bs.results)
	return results
}
