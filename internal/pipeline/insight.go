package pipeline

import (
	"fmt"
	"math"
)

const (
	// hotspotFactor flags zones reading above this multiple of the mean.
	hotspotFactor = 1.5
	// anomalySigma flags readings beyond this many standard deviations.
	anomalySigma = 2.0
	// dailyMinHours is the distinct hour count needed for a daily pattern.
	dailyMinHours = 6
	// dailySwing is the min-to-max hourly swing that counts as a pattern.
	dailySwing = 0.2
)

// GenerateInsights derives qualitative findings from the readings and zones.
// The four checks are independent; emission order is fixed: hotspot, seasonal,
// anomaly, daily.
func GenerateInsights(points []Point, zones []PollutionZone) []MLInsight {
	insights := []MLInsight{}
	if len(points) == 0 {
		return insights
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	avg := mean(values)

	if hot := countHotspots(zones, avg); hot > 0 {
		insights = append(insights, MLInsight{
			Type:        InsightHotspot,
			Description: fmt.Sprintf("Identified %d pollution hotspots with readings well above the dataset average", hot),
			Confidence:  0.85,
			Relevance:   0.9,
		})
	}

	if monthsSpanned(points) >= 2 {
		insights = append(insights, MLInsight{
			Type:        InsightSeasonal,
			Description: "Readings span multiple months, suggesting seasonal variation in pollution levels",
			Confidence:  0.7,
			Relevance:   0.8,
		})
	}

	if hasAnomaly(values, avg) {
		insights = append(insights, MLInsight{
			Type:        InsightAnomaly,
			Description: "Detected readings deviating more than two standard deviations from the mean",
			Confidence:  0.75,
			Relevance:   0.7,
		})
	}

	if hasDailyPattern(points) {
		insights = append(insights, MLInsight{
			Type:        InsightDaily,
			Description: "Pollution levels vary significantly by hour of day",
			Confidence:  0.8,
			Relevance:   0.85,
		})
	}

	return insights
}

func countHotspots(zones []PollutionZone, avg float64) int {
	n := 0
	for _, z := range zones {
		if z.Value > hotspotFactor*avg {
			n++
		}
	}
	return n
}

func monthsSpanned(points []Point) int {
	months := map[string]struct{}{}
	for _, p := range points {
		t, ok := parseTimestamp(p.Timestamp)
		if !ok {
			continue
		}
		months[monthKey(t.UTC())] = struct{}{}
	}
	return len(months)
}

func hasAnomaly(values []float64, avg float64) bool {
	sd := stdDev(values, avg)
	for _, v := range values {
		if math.Abs(v-avg) > anomalySigma*sd {
			return true
		}
	}
	return false
}

func hasDailyPattern(points []Point) bool {
	hourly := map[int][]float64{}
	for _, p := range points {
		t, ok := parseTimestamp(p.Timestamp)
		if !ok {
			continue
		}
		h := t.UTC().Hour()
		hourly[h] = append(hourly[h], p.Value)
	}
	if len(hourly) < dailyMinHours {
		return false
	}
	minAvg, maxAvg := math.Inf(1), math.Inf(-1)
	for _, vals := range hourly {
		a := mean(vals)
		minAvg = math.Min(minAvg, a)
		maxAvg = math.Max(maxAvg, a)
	}
	if minAvg == 0 {
		return false
	}
	return (maxAvg-minAvg)/minAvg > dailySwing
}

// stdDev is the population standard deviation around a known mean.
func stdDev(values []float64, avg float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - avg
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
