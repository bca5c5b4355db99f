// wwt_capability analyzes effluent-quality measurements: one-sided process
// capability (Cpk) against DOE Standard B limits, capability tiers, control
// charts and a PDF summary report.
//
// Usage:
//
//	wwt_capability analyze --input data.csv [--config limits.yaml] [--params "Lead (Pb)",COD] [--pdf report.pdf]
//	wwt_capability analyze --demo
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/wwt_capability_go/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "wwt_capability",
	Short: "Process capability analysis for effluent quality data",
	Long: "wwt_capability computes one-sided process capability indices (Cpk) for\n" +
		"effluent measurements against DOE Standard B upper limits, classifies each\n" +
		"parameter's capability tier, and renders control charts and a PDF report.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.ParseLevel(logLevel), logFormat)
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
