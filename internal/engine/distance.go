package engine

import (
	"fmt"
	"math"

	"github.com/tunegraph/tunegraph/internal/domain"
)

// DefaultDimensions mirrors the catalog's reference scoring behavior:
// valence and energy, unweighted.
var DefaultDimensions = []string{domain.DimValence, domain.DimEnergy}

// DistanceConfig selects which feature dimensions participate in
// scoring and how much each contributes. Weights are positional and
// default to 1.0 when the slice is nil or shorter than Dimensions.
type DistanceConfig struct {
	Dimensions []string
	Weights    []float64
}

func (c DistanceConfig) validate() error {
	if len(c.Dimensions) == 0 {
		return fmt.Errorf("distance config: at least one dimension required")
	}
	var probe domain.AudioFeatures
	for _, d := range c.Dimensions {
		if _, ok := probe.Dimension(d); !ok {
			return fmt.Errorf("distance config: unknown dimension %q", d)
		}
	}
	if len(c.Weights) > len(c.Dimensions) {
		return fmt.Errorf("distance config: %d weights for %d dimensions", len(c.Weights), len(c.Dimensions))
	}
	return nil
}

func (c DistanceConfig) weight(i int) float64 {
	if i < len(c.Weights) {
		return c.Weights[i]
	}
	return 1.0
}

// Distance is the weighted sum of absolute differences over the
// configured dimensions. Symmetric, and zero for identical vectors.
func (e *Engine) Distance(a, b domain.AudioFeatures) float64 {
	var total float64
	for i, dim := range e.cfg.Dimensions {
		av, _ := a.Dimension(dim)
		bv, _ := b.Dimension(dim)
		total += e.cfg.weight(i) * math.Abs(av-bv)
	}
	return total
}
