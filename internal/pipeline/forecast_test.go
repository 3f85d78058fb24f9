package pipeline

import (
	"testing"
	"time"
)

func TestForecastTooFewPoints(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	points := []Point{
		pointAt(day, 10), pointAt(day, 20),
		pointAt(day.AddDate(0, 0, 1), 30), pointAt(day.AddDate(0, 0, 2), 40),
	}
	got := Forecast(points)
	want := Prediction{NextDayPrediction: 0, NextWeekTrend: TrendStable, Confidence: 0}
	if got != want {
		t.Fatalf("Forecast() = %+v, want %+v", got, want)
	}
}

func TestForecastTooFewDays(t *testing.T) {
	d1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	points := []Point{
		pointAt(d1, 10), pointAt(d1, 20),
		pointAt(d2, 30), pointAt(d2, 40), pointAt(d2, 50),
	}
	got := Forecast(points)
	// Last day averages to 40; regression is skipped below three days.
	want := Prediction{NextDayPrediction: 40, NextWeekTrend: TrendStable, Confidence: 0.3}
	if got != want {
		t.Fatalf("Forecast() = %+v, want %+v", got, want)
	}
}

func TestForecastIncreasing(t *testing.T) {
	d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var points []Point
	for i, v := range []float64{10, 20, 30} {
		day := d.AddDate(0, 0, i)
		points = append(points, pointAt(day, v-5), pointAt(day, v+5))
	}
	got := Forecast(points)
	// Daily averages 10, 20, 30 fit exactly: next is 40, confidence caps.
	if !almostEqual(got.NextDayPrediction, 40, 1e-9) {
		t.Fatalf("NextDayPrediction = %f, want 40", got.NextDayPrediction)
	}
	if got.NextWeekTrend != TrendIncreasing {
		t.Fatalf("NextWeekTrend = %q, want %q", got.NextWeekTrend, TrendIncreasing)
	}
	if got.Confidence != 0.9 {
		t.Fatalf("Confidence = %f, want 0.9", got.Confidence)
	}
}

func TestForecastDecreasing(t *testing.T) {
	d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var points []Point
	for i, v := range []float64{30, 20, 10} {
		day := d.AddDate(0, 0, i)
		points = append(points, pointAt(day, v), pointAt(day, v))
	}
	got := Forecast(points)
	if !almostEqual(got.NextDayPrediction, 0, 1e-9) {
		t.Fatalf("NextDayPrediction = %f, want 0", got.NextDayPrediction)
	}
	if got.NextWeekTrend != TrendDecreasing {
		t.Fatalf("NextWeekTrend = %q, want %q", got.NextWeekTrend, TrendDecreasing)
	}
}

func TestForecastStableSlope(t *testing.T) {
	d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var points []Point
	for i := 0; i < 3; i++ {
		day := d.AddDate(0, 0, i)
		points = append(points, pointAt(day, 50), pointAt(day, 50))
	}
	got := Forecast(points)
	if got.NextWeekTrend != TrendStable {
		t.Fatalf("NextWeekTrend = %q, want %q", got.NextWeekTrend, TrendStable)
	}
	if !almostEqual(got.NextDayPrediction, 50, 1e-9) {
		t.Fatalf("NextDayPrediction = %f, want 50", got.NextDayPrediction)
	}
	if got.Confidence != 0.9 {
		t.Fatalf("Confidence = %f, want 0.9", got.Confidence)
	}
}

func TestForecastZeroMeanFloorsConfidence(t *testing.T) {
	d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var points []Point
	for i := 0; i < 3; i++ {
		day := d.AddDate(0, 0, i)
		points = append(points, pointAt(day, 0), pointAt(day, 0))
	}
	got := Forecast(points)
	if got.Confidence != 0.3 {
		t.Fatalf("Confidence = %f, want 0.3", got.Confidence)
	}
	if got.NextWeekTrend != TrendStable {
		t.Fatalf("NextWeekTrend = %q, want %q", got.NextWeekTrend, TrendStable)
	}
}

func TestForecastNoisyFitLowersConfidence(t *testing.T) {
	d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var points []Point
	for i, v := range []float64{10, 100, 10, 100, 10} {
		day := d.AddDate(0, 0, i)
		points = append(points, pointAt(day, v))
	}
	got := Forecast(points)
	if got.Confidence >= 0.9 {
		t.Fatalf("Confidence = %f, want below cap for a noisy fit", got.Confidence)
	}
	if got.Confidence < 0.3 {
		t.Fatalf("Confidence = %f, below floor", got.Confidence)
	}
}
