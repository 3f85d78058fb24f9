package report

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/veridata-labs/airlens-cli/internal/pipeline"
)

// GeoJSON encodes the zones and routes of a result as a FeatureCollection.
// Zones become Point features carrying radius, value and point count; the two
// routes become LineStrings tagged with a "route" property.
func GeoJSON(res *pipeline.ProcessedResult) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	for _, z := range res.PollutionZones {
		f := geojson.NewFeature(orb.Point{z.Center.Lng, z.Center.Lat})
		f.Properties["kind"] = "pollution_zone"
		f.Properties["radius_m"] = z.Radius
		f.Properties["value"] = z.Value
		f.Properties["points"] = z.PointCount
		fc.Append(f)
	}

	if ls := lineString(res.Routes.Standard); len(ls) > 0 {
		f := geojson.NewFeature(ls)
		f.Properties["kind"] = "route"
		f.Properties["route"] = "standard"
		fc.Append(f)
	}
	if ls := lineString(res.Routes.Clean); len(ls) > 0 {
		f := geojson.NewFeature(ls)
		f.Properties["kind"] = "route"
		f.Properties["route"] = "clean"
		fc.Append(f)
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("encode geojson: %w", err)
	}
	return data, nil
}

func lineString(points []pipeline.RoutePoint) orb.LineString {
	ls := make(orb.LineString, 0, len(points))
	for _, p := range points {
		ls = append(ls, orb.Point{p.Lng, p.Lat})
	}
	return ls
}
