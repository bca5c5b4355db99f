package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/wwt_capability_go/internal/analysis"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func leadChartSeries() analysis.ChartSeries {
	return analysis.ChartSeries{
		Parameter: "Lead (Pb)",
		Values:    []float64{0.12, 0.15, 0.11, 0.20, 0.13, 0.45, 0.18, 0.12, 0.10, 0.15},
		USL:       0.5,
		UCL:       0.4797,
		Mean:      0.171,
	}
}

func TestCreateControlChart(t *testing.T) {
	img, err := CreateControlChart(leadChartSeries())
	require.NoError(t, err)
	require.Greater(t, len(img), len(pngMagic))
	assert.Equal(t, pngMagic, img[:len(pngMagic)])
}

func TestCreateControlChartEmptySeries(t *testing.T) {
	_, err := CreateControlChart(analysis.ChartSeries{Parameter: "COD"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COD")
}

func TestCreateAllCharts(t *testing.T) {
	summary := &analysis.Summary{
		Series: []analysis.ChartSeries{
			leadChartSeries(),
			{Parameter: "COD"}, // no samples, must not stop the others
		},
	}

	charts, errs := CreateAllCharts(summary)
	assert.Len(t, charts, 1)
	assert.Contains(t, charts, "Lead (Pb)")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "COD")
}
