package pipeline

import (
	"fmt"
	"sort"
	"time"
)

// Minimum day spans before a granularity is considered at all.
const (
	dailyMinSpanDays   = 2
	weeklyMinSpanDays  = 14
	monthlyMinSpanDays = 60
)

// AnalyzeTrends groups points into day/week/month buckets and reports the
// percent change between the two most recent buckets of each granularity.
// A granularity whose span or bucket-count threshold is not met emits nothing:
// absence means "not enough data", never "no change". Points with unparseable
// timestamps are ignored.
func AnalyzeTrends(points []Point) []Trend {
	type stamped struct {
		t time.Time
		v float64
	}
	var samples []stamped
	for _, p := range points {
		t, ok := parseTimestamp(p.Timestamp)
		if !ok {
			continue
		}
		samples = append(samples, stamped{t: t.UTC(), v: p.Value})
	}
	if len(samples) == 0 {
		return []Trend{}
	}

	first, last := samples[0].t, samples[0].t
	for _, s := range samples[1:] {
		if s.t.Before(first) {
			first = s.t
		}
		if s.t.After(last) {
			last = s.t
		}
	}
	spanDays := int(dateOnly(last).Sub(dateOnly(first)).Hours()/24) + 1

	trends := []Trend{}
	granularities := []struct {
		period  string
		minSpan int
		key     func(time.Time) string
	}{
		{"daily", dailyMinSpanDays, dayKey},
		{"weekly", weeklyMinSpanDays, weekKey},
		{"monthly", monthlyMinSpanDays, monthKey},
	}
	for _, g := range granularities {
		if spanDays < g.minSpan {
			continue
		}
		buckets := map[string][]float64{}
		for _, s := range samples {
			k := g.key(s.t)
			buckets[k] = append(buckets[k], s.v)
		}
		if len(buckets) < 2 {
			continue
		}
		keys := make([]string, 0, len(buckets))
		for k := range buckets {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lastAvg := mean(buckets[keys[len(keys)-1]])
		prevAvg := mean(buckets[keys[len(keys)-2]])
		change := 0.0
		if prevAvg != 0 {
			change = (lastAvg - prevAvg) / prevAvg * 100
		}
		trends = append(trends, Trend{
			Period:        g.period,
			AverageValue:  lastAvg,
			ChangePercent: change,
		})
	}
	return trends
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string   { return t.Format("2006-01-02") }
func monthKey(t time.Time) string { return t.Format("2006-01") }

// weekKey uses a simplified week-of-year: day-of-year plus the weekday offset
// of January 1st, divided into 7-day blocks. Not ISO 8601 week numbering.
func weekKey(t time.Time) string {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	week := (t.YearDay() + int(jan1.Weekday()) + 6) / 7
	return fmt.Sprintf("%04d-W%02d", t.Year(), week)
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
