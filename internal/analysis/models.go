package analysis

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when a cleaned series has fewer than two
// samples. The sample standard deviation (n-1 denominator) is undefined for
// n < 2, so no capability index can be computed.
var ErrInsufficientData = errors.New("insufficient data: need at least two samples")

// Status is the capability tier assigned to a parameter.
type Status int

const (
	StatusNotCapable Status = iota // Cpk < 1.0, high risk
	StatusMarginal                 // 1.0 <= Cpk < 1.33, warning
	StatusExcellent                // Cpk >= 1.33, safe
)

func (s Status) String() string {
	switch s {
	case StatusNotCapable:
		return "NOT CAPABLE"
	case StatusMarginal:
		return "MARGINAL"
	case StatusExcellent:
		return "EXCELLENT"
	default:
		return "UNKNOWN"
	}
}

// Stats holds the capability statistics computed for one cleaned series.
type Stats struct {
	Mean   float64
	StdDev float64 // sample standard deviation (n-1 denominator)
	Cpk    float64 // one-sided capability index against the USL
	UCL    float64 // upper control limit, mean + 3*stddev

	// ZeroVariance is set when all cleaned samples are identical. Cpk is
	// then the documented 0 sentinel rather than a computed index, so
	// consumers can tell degenerate constant data from genuinely poor
	// capability.
	ZeroVariance bool
}

// CapabilityResult holds the outcome of the pipeline for a single parameter.
// When Err is non-nil the statistics fields are unset and only Parameter,
// Limit and FallbackLimit are meaningful.
type CapabilityResult struct {
	Parameter     string
	Limit         float64 // upper specification limit (USL) used
	Mean          float64
	StdDev        float64
	Cpk           float64
	UCL           float64
	Status        Status
	FallbackLimit bool // limit came from the fallback default, not the configuration
	ZeroVariance  bool
	Err           error
}

// ReportRow is the rounded presentation view of a CapabilityResult:
// mean and standard deviation to 3 decimal places, Cpk to 2.
type ReportRow struct {
	Parameter string
	Limit     float64
	Mean      float64
	StdDev    float64
	Cpk       float64
	Status    string
}

// Row returns the rounded report view. Rounding applies only here; the
// ChartSeries kept on the Summary stays at full precision.
func (r CapabilityResult) Row() ReportRow {
	return ReportRow{
		Parameter: r.Parameter,
		Limit:     r.Limit,
		Mean:      roundTo(r.Mean, 3),
		StdDev:    roundTo(r.StdDev, 3),
		Cpk:       roundTo(r.Cpk, 2),
		Status:    r.Status.String(),
	}
}

// ChartSeries is the unrounded projection used to draw a control chart:
// the cleaned samples in measurement order plus the three reference lines.
type ChartSeries struct {
	Parameter string
	Values    []float64
	USL       float64
	UCL       float64
	Mean      float64
}

// Summary holds per-parameter results in selection order. Series contains
// one entry per parameter that produced statistics; parameters that failed
// (Err set on their result) have no chart series.
type Summary struct {
	Results []CapabilityResult
	Series  []ChartSeries
}

// Rows returns the rounded report rows for all parameters that produced
// statistics, in selection order.
func (s *Summary) Rows() []ReportRow {
	rows := make([]ReportRow, 0, len(s.Results))
	for _, r := range s.Results {
		if r.Err != nil {
			continue
		}
		rows = append(rows, r.Row())
	}
	return rows
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
