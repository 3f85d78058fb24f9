package pipeline

import (
	"time"

	"github.com/veridata-labs/airlens-cli/internal/dataset"
)

// Column names fixed by the upload data contract.
const (
	latColumn   = "latitude"
	lngColumn   = "longitude"
	valueColumn = "pollutant_value"
	timeColumn  = "timestamp"
)

// ExtractPoints maps records to points. Rows without parseable latitude,
// longitude and pollutant value are dropped without error; the second return
// is the dropped-row count for callers that want to surface it. A missing or
// unparseable timestamp defaults to now.
func ExtractPoints(records dataset.RecordSet, now time.Time) ([]Point, int) {
	points := make([]Point, 0, len(records))
	dropped := 0
	for _, rec := range records {
		p, ok := tryParsePoint(rec, now)
		if !ok {
			dropped++
			continue
		}
		points = append(points, p)
	}
	return points, dropped
}

// tryParsePoint validates one record. Exclusion is signalled by the bool, not
// an error, matching the exclude-and-continue contract of the pipeline.
func tryParsePoint(rec dataset.Record, now time.Time) (Point, bool) {
	lat, ok := dataset.Float(rec[latColumn])
	if !ok {
		return Point{}, false
	}
	lng, ok := dataset.Float(rec[lngColumn])
	if !ok {
		return Point{}, false
	}
	value, ok := dataset.Float(rec[valueColumn])
	if !ok {
		return Point{}, false
	}
	ts := now.UTC().Format(time.RFC3339)
	if raw, ok := dataset.String(rec[timeColumn]); ok && raw != "" {
		if t, ok := parseTimestamp(raw); ok {
			ts = t.UTC().Format(time.RFC3339)
		}
	}
	return Point{Lat: lat, Lng: lng, Value: value, Timestamp: ts}, true
}

// Layouts accepted for dataset timestamps. RFC 3339 is tried first; slash
// layouts are day-first before month-first, so ambiguous dates resolve
// day-first.
var timestampLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
}

// parseTimestamp reads a point timestamp back into a time. The extractor
// normalizes to RFC 3339, but points built by callers may carry anything, so
// the bool must be checked.
func parseTimestamp(ts string) (time.Time, bool) {
	for _, l := range timestampLayouts {
		if t, err := time.Parse(l, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
