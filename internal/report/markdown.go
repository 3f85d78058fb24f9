// Package report renders processing results for humans and for maps: a
// compact text summary, and a GeoJSON document of zones and routes.
package report

import (
	"fmt"
	"strings"

	"github.com/veridata-labs/airlens-cli/internal/pipeline"
)

// Markdown renders a compact plain-text summary of one processing run.
// Sections appear only when they have content.
func Markdown(name string, res *pipeline.ProcessedResult) string {
	var b strings.Builder
	b.WriteString("[PROCESSING SUMMARY]\n")
	if name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", name))
	}
	if res.DroppedRows > 0 {
		b.WriteString(fmt.Sprintf("Points: %d (dropped %d rows)\n", res.Summary.TotalPoints, res.DroppedRows))
	} else {
		b.WriteString(fmt.Sprintf("Points: %d\n", res.Summary.TotalPoints))
	}
	b.WriteString(fmt.Sprintf("Zones: %d\n", res.Summary.ZoneCount))
	if res.Summary.TotalPoints > 0 {
		b.WriteString(fmt.Sprintf("Pollution: mean %.4g, min %.4g, max %.4g\n",
			res.Summary.AvgPollution, res.Summary.MinPollution, res.Summary.MaxPollution))
	}

	if len(res.PollutionZones) > 0 {
		b.WriteString("\n[POLLUTION ZONES]\n")
		for _, z := range res.PollutionZones {
			b.WriteString(fmt.Sprintf("- (%.5f, %.5f): value %.4g over %d points, radius %.0fm\n",
				z.Center.Lat, z.Center.Lng, z.Value, z.PointCount, z.Radius))
		}
	}

	if len(res.Trends) > 0 {
		b.WriteString("\n[TRENDS]\n")
		for _, tr := range res.Trends {
			b.WriteString(fmt.Sprintf("- %s: avg %.4g, change %+.1f%%\n", tr.Period, tr.AverageValue, tr.ChangePercent))
		}
	}

	if len(res.Correlations) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, c := range res.Correlations {
			b.WriteString(fmt.Sprintf("- %s: r=%.3f\n", c.Factor, c.Strength))
		}
	}

	if len(res.MLInsights) > 0 {
		b.WriteString("\n[INSIGHTS]\n")
		for _, in := range res.MLInsights {
			b.WriteString(fmt.Sprintf("- [%s] %s (confidence %.2f)\n", in.Type, in.Description, in.Confidence))
		}
	}

	b.WriteString("\n[FORECAST]\n")
	b.WriteString(fmt.Sprintf("Next day: %.4g\n", res.Predictions.NextDayPrediction))
	b.WriteString(fmt.Sprintf("Next week: %s (confidence %.2f)\n", res.Predictions.NextWeekTrend, res.Predictions.Confidence))

	return b.String()
}
