// Package amendment13 exports Israeli Privacy Protection Law Amendment 13
// self-assessment results as OCSF 1.6.0 findings.
package amendment13

import (
	"fmt"
	"os"

	"github.com/SamuelRCrider/amendment13-go/core"
)

var defaultExporter = core.NewExporter()

// ExportComplianceFindings maps every violation to a Compliance Finding
// using the default configuration
func ExportComplianceFindings(results *core.AssessmentResult, answers core.Answers) core.ComplianceDocument {
	return defaultExporter.ExportComplianceFindings(results, answers)
}

// ExportDataSecurityFindings maps data security violations to Data Security
// Findings using the default configuration
func ExportDataSecurityFindings(results *core.AssessmentResult, answers core.Answers) core.DataSecurityDocument {
	return defaultExporter.ExportDataSecurityFindings(results, answers)
}

// ExportRecommendations converts recommendations using the default configuration
func ExportRecommendations(recommendations []core.Recommendation) []core.RecommendationRecord {
	return defaultExporter.ExportRecommendations(recommendations)
}

// ExportReport builds the combined report using the default configuration
func ExportReport(results *core.AssessmentResult, answers core.Answers) core.CombinedReport {
	return defaultExporter.ExportCombinedReport(results, answers)
}

// ExportReportFiles reads results and answers from JSON files and builds the
// combined report. configPath may be empty to use the built-in configuration.
func ExportReportFiles(resultsPath, answersPath, configPath string) (*core.CombinedReport, error) {
	exporter := defaultExporter
	if configPath != "" {
		cfg, err := core.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		exporter = core.NewExporter(core.WithConfig(cfg))
	}

	results, answers, err := ReadInputs(resultsPath, answersPath)
	if err != nil {
		return nil, err
	}

	report := exporter.ExportCombinedReport(results, answers)
	return &report, nil
}

// ReadInputs decodes the results file and, when answersPath is not empty,
// the answers file
func ReadInputs(resultsPath, answersPath string) (*core.AssessmentResult, core.Answers, error) {
	rf, err := os.Open(resultsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer rf.Close()

	results, err := core.DecodeResults(rf)
	if err != nil {
		return nil, nil, err
	}

	answers := core.Answers{}
	if answersPath == "" {
		return results, answers, nil
	}

	af, err := os.Open(answersPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open answers file: %w", err)
	}
	defer af.Close()

	answers, err = core.DecodeAnswers(af)
	if err != nil {
		return nil, nil, err
	}

	return results, answers, nil
}
