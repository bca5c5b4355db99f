// Package config holds the parameter limit configuration for an analysis run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFallback is the upper specification limit applied to parameters
// that have no configured entry. The value is arbitrary relative to the
// parameter's unit and scale, which is why Resolve reports its use instead
// of applying it silently.
const DefaultFallback = 1.0

// Limits maps effluent parameter names to their upper specification limits
// (mg/L). A Limits value is an immutable snapshot for one analysis run; it
// must not be mutated while Analyze is using it.
type Limits struct {
	USL      map[string]float64 `yaml:"limits"`
	Fallback float64            `yaml:"fallback"`
}

// Default returns the DOE Standard B limits (Environmental Quality
// Regulations 2009).
func Default() *Limits {
	return &Limits{
		USL: map[string]float64{
			"Lead (Pb)":      0.5,
			"Manganese (Mn)": 1.0,
			"Boron (B)":      4.0,
			"COD":            200.0,
		},
		Fallback: DefaultFallback,
	}
}

// Load reads a limits file in YAML form:
//
//	limits:
//	  Lead (Pb): 0.5
//	  COD: 200
//	fallback: 1.0
//
// Missing sections fall back to the Standard B defaults.
func Load(path string) (*Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading limits file: %w", err)
	}
	var l Limits
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing limits file %s: %w", path, err)
	}
	if l.USL == nil {
		l.USL = Default().USL
	}
	if l.Fallback == 0 {
		l.Fallback = DefaultFallback
	}
	for name, usl := range l.USL {
		if usl <= 0 {
			return nil, fmt.Errorf("limit for %q must be positive, got %v", name, usl)
		}
	}
	return &l, nil
}

// Resolve returns the upper specification limit for the parameter. When the
// name has no configured entry the fallback limit is returned and the second
// result is true, so callers can flag the result instead of reporting
// against an arbitrary default as if it were configured.
func (l *Limits) Resolve(param string) (float64, bool) {
	if usl, ok := l.USL[param]; ok {
		return usl, false
	}
	return l.Fallback, true
}
