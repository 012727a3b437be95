// Command dashgen generates the Grafana dashboard and Prometheus rule
// artifacts committed under deploy/.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ktnkk/crosslist/tools/dashgen/dashboards"
	"github.com/ktnkk/crosslist/tools/dashgen/rules"
	"github.com/ktnkk/crosslist/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, validateOnly bool) error {
	dash, err := dashboards.BuildOverview().Build()
	if err != nil {
		return fmt.Errorf("build overview dashboard: %w", err)
	}

	result := validate.Dashboard(dash, KnownMetrics)
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	if !result.Ok() {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "invalid: %s\n", e)
		}
		return fmt.Errorf("dashboard validation failed with %d errors", len(result.Errors))
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	if cfg.DashboardEnabled {
		if err := writeDashboard(cfg.OutputDir, dash); err != nil {
			return err
		}
	}
	if cfg.RulesEnabled {
		if err := writeRules(cfg.OutputDir); err != nil {
			return err
		}
	}
	return nil
}

func writeDashboard(outputDir string, dash any) error {
	data, err := json.MarshalIndent(dash, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dashboard: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(outputDir, "grafana", "data", "crosslist-overview.json")
	return writeFile(path, data)
}

func writeRules(outputDir string) error {
	artifacts := []struct {
		name string
		cr   rules.PrometheusRule
	}{
		{"crosslist-recording-rules.yaml", rules.RecordingRules()},
		{"crosslist-alerts.yaml", rules.AlertRules()},
	}

	for _, artifact := range artifacts {
		data, err := yaml.Marshal(artifact.cr)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", artifact.name, err)
		}
		data = append([]byte(generatedHeader), data...)

		path := filepath.Join(outputDir, "prometheus", artifact.name)
		if err := writeFile(path, data); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
