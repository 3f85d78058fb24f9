package pipeline

import (
	"math"
	"sort"
)

const (
	// forecastMinPoints gates forecasting entirely.
	forecastMinPoints = 5
	// forecastMinDays gates the regression; below it the last day's average
	// is parroted back with low confidence.
	forecastMinDays = 3
	// slopeThreshold separates increasing/decreasing from stable.
	slopeThreshold = 0.05
)

// Forecast predicts the next day's average reading via ordinary least squares
// over daily averages, and classifies the next-week trend by slope. The
// confidence is a clamped fit-error heuristic, not a statistical interval.
func Forecast(points []Point) Prediction {
	if len(points) < forecastMinPoints {
		return Prediction{NextDayPrediction: 0, NextWeekTrend: TrendStable, Confidence: 0}
	}

	buckets := map[string][]float64{}
	for _, p := range points {
		t, ok := parseTimestamp(p.Timestamp)
		if !ok {
			continue
		}
		k := dayKey(t.UTC())
		buckets[k] = append(buckets[k], p.Value)
	}
	days := make([]string, 0, len(buckets))
	for k := range buckets {
		days = append(days, k)
	}
	sort.Strings(days)

	averages := make([]float64, len(days))
	for i, k := range days {
		averages[i] = mean(buckets[k])
	}

	if len(days) < forecastMinDays {
		last := 0.0
		if len(averages) > 0 {
			last = averages[len(averages)-1]
		}
		return Prediction{NextDayPrediction: last, NextWeekTrend: TrendStable, Confidence: 0.3}
	}

	slope, intercept := leastSquares(averages)
	next := intercept + slope*float64(len(averages))

	trend := TrendStable
	if slope > slopeThreshold {
		trend = TrendIncreasing
	} else if slope < -slopeThreshold {
		trend = TrendDecreasing
	}

	return Prediction{
		NextDayPrediction: next,
		NextWeekTrend:     trend,
		Confidence:        fitConfidence(averages, slope, intercept),
	}
}

// leastSquares fits y = intercept + slope·i over day indices 0..n-1.
func leastSquares(ys []float64) (slope, intercept float64) {
	n := float64(len(ys))
	var sumX, sumY, sumXX, sumXY float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// fitConfidence maps mean absolute error relative to the mean level into
// [0.3, 0.9]. A zero mean level clamps to the floor rather than dividing.
func fitConfidence(ys []float64, slope, intercept float64) float64 {
	m := mean(ys)
	if m == 0 {
		return 0.3
	}
	var absErr float64
	for i, y := range ys {
		absErr += math.Abs(y - (intercept + slope*float64(i)))
	}
	mae := absErr / float64(len(ys))
	return math.Max(0.3, math.Min(0.9, 1-mae/m))
}
