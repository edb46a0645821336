package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	amendment13 "github.com/SamuelRCrider/amendment13-go"
	"github.com/SamuelRCrider/amendment13-go/core"
)

var (
	resultsPath string
	answersPath string
	outputPath  string
	pretty      bool
)

// exportKind selects which document an export command produces
type exportKind string

const (
	kindCompliance      exportKind = "compliance"
	kindDataSecurity    exportKind = "data-security"
	kindCombined        exportKind = "combined"
	kindRecommendations exportKind = "recommendations"
)

var exportCommands = []struct {
	kind  exportKind
	short string
}{
	{kindCompliance, "Export every violation as an OCSF Compliance Finding (class 2003)"},
	{kindDataSecurity, "Export data security violations as OCSF Data Security Findings (class 2006)"},
	{kindCombined, "Export both finding sets, a summary and the recommendations"},
	{kindRecommendations, "Export the recommendations as OCSF shaped remediation records"},
}

func init() {
	for _, ec := range exportCommands {
		kind := ec.kind
		cmd := &cobra.Command{
			Use:   string(kind),
			Short: ec.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runExport(kind, cmd.OutOrStdout())
			},
		}
		cmd.Flags().StringVarP(&resultsPath, "results", "r", "", "Assessment results JSON file (required)")
		cmd.Flags().StringVarP(&answersPath, "answers", "a", "", "Questionnaire answers JSON file")
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the document to a file instead of stdout")
		cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
		_ = cmd.MarkFlagRequired("results")
		rootCmd.AddCommand(cmd)
	}
}

func runExport(kind exportKind, stdout io.Writer) error {
	settings := loadSettings()
	logger := newLogger(settings)

	cfg, err := loadConfig(settings, logger)
	if err != nil {
		return err
	}

	results, answers, err := amendment13.ReadInputs(resultsPath, answersPath)
	if err != nil {
		return err
	}

	exporter := core.NewExporter(core.WithConfig(cfg))

	var doc interface{}
	switch kind {
	case kindCompliance:
		doc = exporter.ExportComplianceFindings(results, answers)
	case kindDataSecurity:
		doc = exporter.ExportDataSecurityFindings(results, answers)
	case kindCombined:
		doc = exporter.ExportCombinedReport(results, answers)
	case kindRecommendations:
		doc = exporter.ExportRecommendations(results.Recommendations)
	default:
		return fmt.Errorf("unknown export kind %q", kind)
	}

	out := stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeJSON(out, doc, pretty); err != nil {
		return err
	}

	logger.Info("export complete",
		slog.String("kind", string(kind)),
		slog.Int("violations", len(results.Violations)),
		slog.String("output", outputOrStdout(outputPath)),
	)
	return nil
}

func writeJSON(w io.Writer, v interface{}, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func outputOrStdout(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
