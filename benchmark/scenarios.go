package benchmark

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// ScenarioBuilder helps build test scenarios with fluent API
type ScenarioBuilder struct {
	scenario Scenario
}

// NewScenarioBuilder creates a new scenario builder
func NewScenarioBuilder(name string) *ScenarioBuilder {
	return &ScenarioBuilder{
		scenario: Scenario{
			Name:         name,
			SourceFormat: "png",
			Filter:       "lanczos3",
			OutputFormat: "jpeg",
			Iterations:   100,
			WarmupRuns:   10,
		},
	}
}

// WithSource sets the synthesized source frame shape and container format
func (sb *ScenarioBuilder) WithSource(width, height int, format string) *ScenarioBuilder {
	sb.scenario.Source = Resolution{
		Width:  width,
		Height: height,
		Name:   fmt.Sprintf("%dx%d", width, height),
	}
	sb.scenario.SourceFormat = format
	return sb
}

// WithTarget sets the resize target shape
func (sb *ScenarioBuilder) WithTarget(width, height int) *ScenarioBuilder {
	sb.scenario.Target = Resolution{
		Width:  width,
		Height: height,
		Name:   fmt.Sprintf("%dx%d", width, height),
	}
	return sb
}

// WithFilter sets the resampling filter by name
func (sb *ScenarioBuilder) WithFilter(filter string) *ScenarioBuilder {
	sb.scenario.Filter = filter
	return sb
}

// WithOutputFormat sets the encode format and quality
func (sb *ScenarioBuilder) WithOutputFormat(format string, quality int) *ScenarioBuilder {
	sb.scenario.OutputFormat = format
	sb.scenario.Quality = quality
	return sb
}

// WithIterations sets the number of test iterations
func (sb *ScenarioBuilder) WithIterations(iterations int) *ScenarioBuilder {
	sb.scenario.Iterations = iterations
	return sb
}

// WithWarmupRuns sets the number of warmup runs
func (sb *ScenarioBuilder) WithWarmupRuns(warmups int) *ScenarioBuilder {
	sb.scenario.WarmupRuns = warmups
	return sb
}

// Build returns the configured test scenario
func (sb *ScenarioBuilder) Build() Scenario {
	return sb.scenario
}

// ScenarioSet represents a collection of related test scenarios
type ScenarioSet struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Scenarios   []Scenario `json:"scenarios"`
}

// PredefinedScenarios contains common benchmark scenario sets
type PredefinedScenarios struct{}

// GetComprehensiveScenarios returns a comprehensive set of benchmark scenarios
func (ps *PredefinedScenarios) GetComprehensiveScenarios() *ScenarioSet {
	scenarios := make([]Scenario, 0)

	// Test every source resolution against each output format
	for _, resolution := range CommonResolutions {
		for _, format := range []string{"jpeg", "png", "webp"} {
			scenario := NewScenarioBuilder(fmt.Sprintf("comprehensive_%s_%s", resolution.Name, format)).
				WithSource(resolution.Width, resolution.Height, "png").
				WithTarget(640, 640).
				WithOutputFormat(format, 0).
				WithIterations(100).
				WithWarmupRuns(10).
				Build()

			scenarios = append(scenarios, scenario)
		}
	}

	return &ScenarioSet{
		Name:        "Comprehensive Performance Test",
		Description: "Tests all combinations of source resolutions and output formats",
		Scenarios:   scenarios,
	}
}

// GetQuickScenarios returns a smaller set for quick testing
func (ps *PredefinedScenarios) GetQuickScenarios() *ScenarioSet {
	scenarios := make([]Scenario, 0)

	// Quick test with common configurations
	commonResolutions := []Resolution{
		{Width: 1280, Height: 720, Name: "1280x720"},
		{Width: 1920, Height: 1080, Name: "1920x1080"},
	}

	for _, resolution := range commonResolutions {
		// Test only JPEG for quick scenarios
		scenario := NewScenarioBuilder(fmt.Sprintf("quick_%s", resolution.Name)).
			WithSource(resolution.Width, resolution.Height, "jpeg").
			WithTarget(640, 360).
			WithOutputFormat("jpeg", 0).
			WithIterations(50).
			WithWarmupRuns(5).
			Build()

		scenarios = append(scenarios, scenario)
	}

	return &ScenarioSet{
		Name:        "Quick Performance Test",
		Description: "Quick test with common configurations",
		Scenarios:   scenarios,
	}
}

// GetFilterComparisonScenarios tests every resampling filter with the same
// source and target shape
func (ps *PredefinedScenarios) GetFilterComparisonScenarios(source, target Resolution) *ScenarioSet {
	scenarios := make([]Scenario, 0)

	filters := []string{"nearest", "triangle", "catmullrom", "gaussian", "lanczos3"}
	for _, filter := range filters {
		scenario := NewScenarioBuilder(fmt.Sprintf("filter_%s_%s", filter, target.Name)).
			WithSource(source.Width, source.Height, "png").
			WithTarget(target.Width, target.Height).
			WithFilter(filter).
			WithOutputFormat("jpeg", 0).
			WithIterations(100).
			WithWarmupRuns(10).
			Build()

		scenarios = append(scenarios, scenario)
	}

	return &ScenarioSet{
		Name:        fmt.Sprintf("Filter Comparison @ %s", target.Name),
		Description: fmt.Sprintf("Compares resampling filters scaling %s to %s", source.Name, target.Name),
		Scenarios:   scenarios,
	}
}

// GetFormatComparisonScenarios tests different output formats with the same
// source and target shape
func (ps *PredefinedScenarios) GetFormatComparisonScenarios(source Resolution) *ScenarioSet {
	scenarios := make([]Scenario, 0)

	formats := []string{"jpeg", "png", "webp", "bmp", "tiff"}
	for _, format := range formats {
		scenario := NewScenarioBuilder(fmt.Sprintf("format_%s_%s", source.Name, format)).
			WithSource(source.Width, source.Height, "png").
			WithTarget(source.Width/2, source.Height/2).
			WithOutputFormat(format, 0).
			WithIterations(100).
			WithWarmupRuns(10).
			Build()

		scenarios = append(scenarios, scenario)
	}

	return &ScenarioSet{
		Name:        fmt.Sprintf("Format Comparison - %s", source.Name),
		Description: fmt.Sprintf("Compares encode formats for %s sources", source.Name),
		Scenarios:   scenarios,
	}
}

// SaveScenarioSet saves a scenario set to a JSON file
func SaveScenarioSet(scenarioSet *ScenarioSet, filename string) error {
	data, err := json.MarshalIndent(scenarioSet, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal scenario set")
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrap(err, "write scenario file")
	}

	return nil
}

// LoadScenarioSet loads a scenario set from a JSON file
func LoadScenarioSet(filename string) (*ScenarioSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario file")
	}

	var scenarioSet ScenarioSet
	if err := json.Unmarshal(data, &scenarioSet); err != nil {
		return nil, errors.Wrap(err, "unmarshal scenario set")
	}

	return &scenarioSet, nil
}
