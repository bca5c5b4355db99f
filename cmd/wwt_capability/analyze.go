package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/wwt_capability_go/internal/analysis"
	"github.com/user/wwt_capability_go/internal/config"
	"github.com/user/wwt_capability_go/internal/dataset"
	"github.com/user/wwt_capability_go/internal/logging"
	"github.com/user/wwt_capability_go/internal/report"
)

var (
	analyzeInput     string
	analyzeDemo      bool
	analyzeConfig    string
	analyzeParams    []string
	analyzePDF       string
	analyzeChartsDir string
	analyzeWorkers   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute capability indices and control charts for a measurement file",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "measurement file (.csv or .xlsx)")
	analyzeCmd.Flags().BoolVar(&analyzeDemo, "demo", false, "analyze the built-in demo dataset instead of a file")
	analyzeCmd.Flags().StringVarP(&analyzeConfig, "config", "c", "", "limits YAML file (default: DOE Standard B limits)")
	analyzeCmd.Flags().StringSliceVarP(&analyzeParams, "params", "p", nil, "parameters to analyze (default: first three numeric columns)")
	analyzeCmd.Flags().StringVarP(&analyzePDF, "pdf", "o", "", "write a PDF report to this path")
	analyzeCmd.Flags().StringVar(&analyzeChartsDir, "charts-dir", "", "write per-parameter control chart PNGs to this directory")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 1, "number of parameters to evaluate concurrently")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logging.New("analyze")

	limits := config.Default()
	if analyzeConfig != "" {
		var err error
		limits, err = config.Load(analyzeConfig)
		if err != nil {
			return err
		}
		log.Debug("loaded limits", "path", analyzeConfig, "entries", len(limits.USL))
	}

	var ds *dataset.Dataset
	switch {
	case analyzeDemo:
		ds = dataset.Demo()
	case analyzeInput == "":
		return errors.New("either --input or --demo is required")
	default:
		var err error
		ds, err = dataset.Load(analyzeInput)
		if err != nil {
			return fmt.Errorf("reading measurement file: %w", err)
		}
	}
	for _, w := range ds.Warnings {
		log.Warn(w)
	}
	log.Info("dataset loaded", "columns", len(ds.Names))

	params := analyzeParams
	if len(params) == 0 {
		params = ds.DefaultSelection(3)
	}

	summary, err := analysis.Analyze(ds, params, limits, analysis.Options{Workers: analyzeWorkers})
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), summary)

	if analyzeChartsDir == "" && analyzePDF == "" {
		return nil
	}

	charts, chartErrs := report.CreateAllCharts(summary)
	for _, e := range chartErrs {
		log.Warn("chart rendering failed", "error", e)
	}

	if analyzeChartsDir != "" {
		if err := os.MkdirAll(analyzeChartsDir, 0o755); err != nil {
			return fmt.Errorf("creating charts directory: %w", err)
		}
		for param, img := range charts {
			path := filepath.Join(analyzeChartsDir, chartFileName(param))
			if err := os.WriteFile(path, img, 0o644); err != nil {
				return fmt.Errorf("writing chart for %s: %w", param, err)
			}
			log.Info("wrote control chart", "path", path)
		}
	}

	if analyzePDF != "" {
		if err := report.BuildPDFReport(analyzePDF, summary, charts); err != nil {
			return fmt.Errorf("writing PDF report: %w", err)
		}
		log.Info("wrote PDF report", "path", analyzePDF)
	}
	return nil
}

// printSummary writes the rounded summary table, one row per selected
// parameter, with flagged conditions and per-parameter errors in the last
// column.
func printSummary(w io.Writer, summary *analysis.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMETER\tSTD B LIMIT\tMEAN\tSTDDEV\tCPK\tSTATUS\tNOTES")
	for _, res := range summary.Results {
		if res.Err != nil {
			fmt.Fprintf(tw, "%s\t%g\t-\t-\t-\tERROR\t%v\n", res.Parameter, res.Limit, res.Err)
			continue
		}
		row := res.Row()
		fmt.Fprintf(tw, "%s\t%g\t%.3f\t%.3f\t%.2f\t%s\t%s\n",
			row.Parameter, row.Limit, row.Mean, row.StdDev, row.Cpk, row.Status, rowNotes(res))
	}
	tw.Flush()
}

func rowNotes(res analysis.CapabilityResult) string {
	var parts []string
	if res.FallbackLimit {
		parts = append(parts, "fallback limit")
	}
	if res.ZeroVariance {
		parts = append(parts, "zero variance")
	}
	return strings.Join(parts, ", ")
}

// chartFileName maps a parameter name like "Lead (Pb)" to a safe file name.
func chartFileName(param string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, param)
	mapped = strings.Trim(mapped, "_")
	for strings.Contains(mapped, "__") {
		mapped = strings.ReplaceAll(mapped, "__", "_")
	}
	return mapped + ".png"
}
