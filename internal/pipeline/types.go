// Package pipeline implements the dataset processing core: point extraction,
// zone clustering, route synthesis, trend analysis, correlations, insights and
// forecasting over geotagged pollutant readings. The package is pure: no I/O,
// no shared state, safe for concurrent use on independent inputs.
package pipeline

// Point is a single geotagged pollutant reading extracted from a record.
type Point struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Value     float64 `json:"value"`
	Timestamp string  `json:"timestamp"`
}

// Coordinate is a bare lat/lng pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PollutionZone is a spatial cluster of readings treated as one unit.
// Radius is in meters; Value is a recency-weighted mean reading.
type PollutionZone struct {
	Center     Coordinate `json:"center"`
	Radius     float64    `json:"radius"`
	Value      float64    `json:"value"`
	PointCount int        `json:"points"`
}

// RoutePoint is a waypoint on a synthesized route.
type RoutePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeneratedRoutes holds the direct route, the pollution-avoiding route, and
// the ten highest-value zones for map display.
type GeneratedRoutes struct {
	Standard       []RoutePoint    `json:"standard"`
	Clean          []RoutePoint    `json:"clean"`
	PollutionZones []PollutionZone `json:"pollution_zones"`
}

// Trend is a period-over-period movement of the average reading.
type Trend struct {
	Period        string  `json:"period"`
	AverageValue  float64 `json:"averageValue"`
	ChangePercent float64 `json:"changePercent"`
}

// Correlation links an auxiliary numeric column to the pollutant value.
// Strength is Pearson's r in [-1, 1].
type Correlation struct {
	Factor      string  `json:"factor"`
	Strength    float64 `json:"strength"`
	Description string  `json:"description"`
}

// MLInsight is a qualitative finding derived from the readings.
type MLInsight struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
	Relevance   float64 `json:"relevance"`
}

// Insight type tags.
const (
	InsightHotspot  = "pollution_hotspot"
	InsightSeasonal = "seasonal_pattern"
	InsightAnomaly  = "data_anomaly"
	InsightDaily    = "daily_pattern"
)

// Prediction is the next-day value forecast and next-week trend direction.
type Prediction struct {
	NextDayPrediction float64 `json:"nextDayPrediction"`
	NextWeekTrend     string  `json:"nextWeekTrend"`
	Confidence        float64 `json:"confidence"`
}

// Trend direction labels used by Prediction.
const (
	TrendIncreasing = "increasing"
	TrendStable     = "stable"
	TrendDecreasing = "decreasing"
)

// Summary aggregates headline numbers for one processing run.
type Summary struct {
	TotalPoints  int     `json:"total_points"`
	ZoneCount    int     `json:"pollution_zones"`
	AvgPollution float64 `json:"avg_pollution"`
	MaxPollution float64 `json:"max_pollution"`
	MinPollution float64 `json:"min_pollution"`
}

// ProcessedResult is the sole output of the core: one immutable value per
// invocation, ready for JSON serialization.
type ProcessedResult struct {
	PollutionZones []PollutionZone `json:"pollutionZones"`
	Routes         GeneratedRoutes `json:"routes"`
	Summary        Summary         `json:"summary"`
	Trends         []Trend         `json:"trends"`
	Correlations   []Correlation   `json:"correlations"`
	MLInsights     []MLInsight     `json:"mlInsights"`
	Predictions    Prediction      `json:"predictions"`
	DroppedRows    int             `json:"dropped_rows,omitempty"`
}
