package benchmark

import (
	"time"

	"github.com/fastimage/go-fastimage/profiler"
)

// PerformanceMetrics captures detailed performance data
type PerformanceMetrics struct {
	Scenario        Scenario                           `json:"scenario"`
	Timestamp       time.Time                          `json:"timestamp"`
	TotalDuration   time.Duration                      `json:"total_duration"`
	DecodeDuration  time.Duration                      `json:"decode_duration"`
	ResizeDuration  time.Duration                      `json:"resize_duration"`
	EncodeDuration  time.Duration                      `json:"encode_duration"`
	StageTimings    map[string]profiler.OperationStats `json:"stage_timings,omitempty"`
	FramesPerSecond float64                            `json:"frames_per_second"`
	MemoryStats     MemoryMetrics                      `json:"memory_stats"`
	CPUStats        CPUMetrics                         `json:"cpu_stats"`
	EncodedBytes    int                                `json:"encoded_bytes"`
	ErrorRate       float64                            `json:"error_rate"`
}

// MemoryMetrics captures memory usage statistics
type MemoryMetrics struct {
	AllocBytes      uint64 `json:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	SysBytes        uint64 `json:"sys_bytes"`
	NumGC           uint32 `json:"num_gc"`
	HeapAllocBytes  uint64 `json:"heap_alloc_bytes"`
	HeapSysBytes    uint64 `json:"heap_sys_bytes"`
}

// CPUMetrics captures CPU usage statistics
type CPUMetrics struct {
	UserTime   time.Duration `json:"user_time"`
	SystemTime time.Duration `json:"system_time"`
	NumCPU     int           `json:"num_cpu"`
}
