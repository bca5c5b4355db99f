package report

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/wwt_capability_go/internal/analysis"
)

func testSummary() *analysis.Summary {
	lead := analysis.CapabilityResult{
		Parameter: "Lead (Pb)",
		Limit:     0.5,
		Mean:      0.171,
		StdDev:    0.102897,
		Cpk:       1.0658,
		UCL:       0.479691,
		Status:    analysis.StatusMarginal,
	}
	ph := analysis.CapabilityResult{
		Parameter:    "pH",
		Limit:        1.0,
		Mean:         7.1,
		UCL:          7.1,
		Status:       analysis.StatusNotCapable,
		FallbackLimit: true,
		ZeroVariance: true,
	}
	phosphate := analysis.CapabilityResult{
		Parameter: "Phosphate",
		Limit:     1.0,
		Err:       fmt.Errorf("%w (got 1)", analysis.ErrInsufficientData),
	}
	return &analysis.Summary{
		Results: []analysis.CapabilityResult{lead, ph, phosphate},
		Series: []analysis.ChartSeries{
			{
				Parameter: "Lead (Pb)",
				Values:    []float64{0.12, 0.15, 0.11, 0.20, 0.13, 0.45, 0.18, 0.12, 0.10, 0.15},
				USL:       0.5,
				UCL:       0.479691,
				Mean:      0.171,
			},
		},
	}
}

func TestBuildPDFReport(t *testing.T) {
	summary := testSummary()
	charts, errs := CreateAllCharts(summary)
	require.Empty(t, errs)

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, BuildPDFReport(path, summary, charts))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBuildPDFReportMissingChart(t *testing.T) {
	// A summary with a series but no rendered chart gets a placeholder
	// note instead of failing.
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, BuildPDFReport(path, testSummary(), nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBuildPDFReportEmptySummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, BuildPDFReport(path, &analysis.Summary{}, nil))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestNotes(t *testing.T) {
	summary := testSummary()

	assert.Empty(t, notes(summary.Results[0]))
	assert.Equal(t, "fallback limit, not configured; zero variance, Cpk sentinel", notes(summary.Results[1]))
	assert.Contains(t, notes(summary.Results[2]), "insufficient data")
}

func TestStatusStyle(t *testing.T) {
	assert.Equal(t, "statusGreen", statusStyle(analysis.StatusExcellent))
	assert.Equal(t, "statusOrange", statusStyle(analysis.StatusMarginal))
	assert.Equal(t, "statusRed", statusStyle(analysis.StatusNotCapable))
}
