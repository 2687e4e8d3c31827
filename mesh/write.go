package mesh

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Marshal encodes the document as indented JSON.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteFile writes the document to path, creating parent directories.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode mesh: %w", err)
	}
	return writeFile(path, data)
}

// ExtentFeatures describes the document footprint as GeoJSON: the lon/lat
// extent as a polygon and the origin as a point.
func (d *Document) ExtentFeatures() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	extent := geojson.NewFeature(d.Extent.ToPolygon())
	extent.Properties["kind"] = "extent"
	extent.Properties["source_files"] = d.Metadata.SourceFiles
	extent.Properties["triangles"] = len(d.Triangles)
	fc.Append(extent)

	origin := geojson.NewFeature(orb.Point{d.Origin.Lon, d.Origin.Lat})
	origin.Properties["kind"] = "origin"
	origin.Properties["lat_scale_m_per_deg"] = d.Metadata.LatScale
	origin.Properties["lon_scale_m_per_deg"] = d.Metadata.LonScale
	fc.Append(origin)

	return fc
}

// WriteExtentGeoJSON writes ExtentFeatures to path.
func (d *Document) WriteExtentGeoJSON(path string) error {
	data, err := json.MarshalIndent(d.ExtentFeatures(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode extent: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
