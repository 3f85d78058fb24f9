package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/veridata-labs/airlens-cli/internal/dataset"
)

const (
	// correlationMinPairs is the minimum valid (x, y) pairs per factor.
	correlationMinPairs = 5
	// correlationThreshold gates emission on |r|.
	correlationThreshold = 0.3
	// correlationStrong separates strong from moderate descriptions.
	correlationStrong = 0.7
)

// Column-name substrings excluded from factor candidates. Case-sensitive
// substring match.
var excludedFactorSubstrings = []string{"lat", "lon", "id", "timestamp"}

// FindCorrelations computes Pearson correlation between each plausible
// numeric auxiliary column and the pollutant value, keeping factors with
// |r| > 0.3 sorted by |r| descending.
func FindCorrelations(records dataset.RecordSet) []Correlation {
	correlations := []Correlation{}
	if len(records) == 0 {
		return correlations
	}

	for _, factor := range candidateFactors(records[0]) {
		var xs, ys []float64
		for _, rec := range records {
			x, ok := dataset.Float(rec[factor])
			if !ok {
				continue
			}
			y, ok := dataset.Float(rec[valueColumn])
			if !ok {
				continue
			}
			xs = append(xs, x)
			ys = append(ys, y)
		}
		if len(xs) < correlationMinPairs {
			continue
		}
		r := pearson(xs, ys)
		if math.Abs(r) <= correlationThreshold {
			continue
		}
		correlations = append(correlations, Correlation{
			Factor:      factor,
			Strength:    r,
			Description: describeCorrelation(factor, r),
		})
	}

	sort.SliceStable(correlations, func(i, j int) bool {
		return math.Abs(correlations[i].Strength) > math.Abs(correlations[j].Strength)
	})
	return correlations
}

// candidateFactors picks numeric-coercible columns of the first record,
// skipping coordinates, ids, timestamps and the pollutant value itself.
// Sorted for deterministic evaluation order.
func candidateFactors(first dataset.Record) []string {
	var names []string
	for name, v := range first {
		if name == valueColumn {
			continue
		}
		if containsAny(name, excludedFactorSubstrings) {
			continue
		}
		if _, ok := dataset.Float(v); !ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// pearson computes the correlation coefficient, returning 0 when either
// series has zero variance so NaN never escapes.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXX += xs[i] * xs[i]
		sumYY += ys[i] * ys[i]
		sumXY += xs[i] * ys[i]
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return 0
	}
	r := (n*sumXY - sumX*sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

func describeCorrelation(factor string, r float64) string {
	var label string
	switch {
	case r > correlationStrong:
		label = "strong positive"
	case r > 0:
		label = "moderate positive"
	case r < -correlationStrong:
		label = "strong negative"
	default:
		label = "moderate negative"
	}
	return fmt.Sprintf("%s shows a %s correlation with pollution levels", factor, label)
}
