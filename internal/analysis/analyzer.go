// Package analysis implements the process-capability pipeline: clean a
// measurement series, resolve its specification limit, compute the one-sided
// capability index and control limit, classify the tier, and aggregate
// per-parameter results into a summary.
package analysis

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/user/wwt_capability_go/internal/config"
	"github.com/user/wwt_capability_go/internal/dataset"
)

// Clean returns the series with missing entries (NaN) removed, preserving
// the order of the remaining samples. The input is never mutated. An
// all-missing series yields an empty slice, which Capability rejects with
// ErrInsufficientData.
func Clean(raw []float64) []float64 {
	cleaned := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsNaN(v) {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

// Capability computes the one-sided capability statistics for a cleaned
// series against an upper specification limit:
//
//	Cpk = (USL - mean) / (3 * stddev)
//	UCL = mean + 3 * stddev
//
// where stddev is the sample standard deviation (n-1 denominator). A series
// with zero variance returns Cpk = 0 as a documented sentinel with
// Stats.ZeroVariance set, instead of dividing by zero. Fewer than two
// samples returns ErrInsufficientData.
func Capability(values []float64, usl float64) (Stats, error) {
	if len(values) < 2 {
		return Stats{}, fmt.Errorf("%w (got %d)", ErrInsufficientData, len(values))
	}

	// Identical samples have zero spread by definition; checking values
	// rather than the computed stddev keeps the degenerate case exact
	// (summing n copies of a float and dividing by n carries rounding
	// noise into the deviations).
	if allEqual(values) {
		return Stats{
			Mean:         values[0],
			UCL:          values[0],
			ZeroVariance: true,
		}, nil
	}

	mean := calculateMean(values)
	stddev := calculateSampleStdDev(values, mean)

	return Stats{
		Mean:   mean,
		StdDev: stddev,
		Cpk:    (usl - mean) / (3 * stddev),
		UCL:    mean + 3*stddev,
	}, nil
}

// Classify maps a capability index to its risk tier. Boundaries are
// half-open: exactly 1.0 is Marginal, exactly 1.33 is Excellent.
func Classify(cpk float64) Status {
	switch {
	case cpk < 1.0:
		return StatusNotCapable
	case cpk < 1.33:
		return StatusMarginal
	default:
		return StatusExcellent
	}
}

// Options control how Analyze evaluates the selected parameters.
type Options struct {
	// Workers bounds concurrent parameter evaluation. Values below 2 run
	// the parameters sequentially; parameters are independent, so the
	// result is identical either way.
	Workers int
}

// Analyze runs the full pipeline for each selected parameter, in selection
// order. Parameter names are validated against the dataset before any work
// starts. A parameter with too few cleaned samples gets its error recorded
// on the result row and does not abort the remaining parameters.
func Analyze(ds *dataset.Dataset, params []string, limits *config.Limits, opts Options) (*Summary, error) {
	if ds == nil {
		return nil, fmt.Errorf("nil dataset")
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("no parameters selected")
	}
	for _, p := range params {
		if !ds.HasColumn(p) {
			return nil, fmt.Errorf("parameter %q not found in dataset (columns: %v)", p, ds.Names)
		}
	}

	results := make([]CapabilityResult, len(params))

	if opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i, p := range params {
			g.Go(func() error {
				raw, _ := ds.Column(p)
				results[i] = analyzeOne(p, raw, limits)
				return nil
			})
		}
		// Per-parameter failures land on the result rows, never here.
		_ = g.Wait()
	} else {
		for i, p := range params {
			raw, _ := ds.Column(p)
			results[i] = analyzeOne(p, raw, limits)
		}
	}

	summary := &Summary{Results: results}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		raw, _ := ds.Column(r.Parameter)
		summary.Series = append(summary.Series, ChartSeries{
			Parameter: r.Parameter,
			Values:    Clean(raw),
			USL:       r.Limit,
			UCL:       r.UCL,
			Mean:      r.Mean,
		})
	}
	return summary, nil
}

// analyzeOne evaluates a single parameter: clean, resolve limit, compute
// capability, classify.
func analyzeOne(param string, raw []float64, limits *config.Limits) CapabilityResult {
	usl, fallback := limits.Resolve(param)
	res := CapabilityResult{
		Parameter:     param,
		Limit:         usl,
		FallbackLimit: fallback,
	}

	values := Clean(raw)
	stats, err := Capability(values, usl)
	if err != nil {
		res.Err = err
		return res
	}

	res.Mean = stats.Mean
	res.StdDev = stats.StdDev
	res.Cpk = stats.Cpk
	res.UCL = stats.UCL
	res.ZeroVariance = stats.ZeroVariance
	res.Status = Classify(stats.Cpk)
	return res
}
