package main

import (
	"fmt"
	"log"

	"github.com/fastimage/go-fastimage/benchmark"
)

// Example program to create and save benchmark scenarios
func main() {
	predefined := &benchmark.PredefinedScenarios{}

	// Create comprehensive scenarios
	comprehensive := predefined.GetComprehensiveScenarios()
	err := benchmark.SaveScenarioSet(comprehensive, "comprehensive_scenarios.json")
	if err != nil {
		log.Fatalf("Failed to save comprehensive scenarios: %v", err)
	}
	fmt.Printf("Saved %d comprehensive scenarios\n", len(comprehensive.Scenarios))

	// Create quick scenarios
	quick := predefined.GetQuickScenarios()
	err = benchmark.SaveScenarioSet(quick, "quick_scenarios.json")
	if err != nil {
		log.Fatalf("Failed to save quick scenarios: %v", err)
	}
	fmt.Printf("Saved %d quick scenarios\n", len(quick.Scenarios))

	// Create filter comparison scenarios
	source := benchmark.Resolution{Width: 1920, Height: 1080, Name: "1920x1080"}
	target := benchmark.Resolution{Width: 640, Height: 360, Name: "640x360"}
	filters := predefined.GetFilterComparisonScenarios(source, target)
	err = benchmark.SaveScenarioSet(filters, "filter_scenarios.json")
	if err != nil {
		log.Fatalf("Failed to save filter scenarios: %v", err)
	}
	fmt.Printf("Saved %d filter scenarios\n", len(filters.Scenarios))

	// Create format comparison scenarios
	formats := predefined.GetFormatComparisonScenarios(source)
	err = benchmark.SaveScenarioSet(formats, "format_scenarios.json")
	if err != nil {
		log.Fatalf("Failed to save format scenarios: %v", err)
	}
	fmt.Printf("Saved %d format scenarios\n", len(formats.Scenarios))

	// Create custom scenario using builder
	customScenario := benchmark.NewScenarioBuilder("custom_4k_webp").
		WithSource(3840, 2160, "png").
		WithTarget(1280, 720).
		WithFilter("catmullrom").
		WithOutputFormat("webp", 80).
		WithIterations(50).
		WithWarmupRuns(5).
		Build()

	customSet := &benchmark.ScenarioSet{
		Name:        "Custom 4K WebP Test",
		Description: "Scales 4K frames to 720p and encodes them as WebP",
		Scenarios:   []benchmark.Scenario{customScenario},
	}

	err = benchmark.SaveScenarioSet(customSet, "custom_scenarios.json")
	if err != nil {
		log.Fatalf("Failed to save custom scenarios: %v", err)
	}
	fmt.Printf("Saved %d custom scenarios\n", len(customSet.Scenarios))

	fmt.Println("All scenario files created successfully!")
}
