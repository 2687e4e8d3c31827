package mesh

import (
	"errors"

	"github.com/paulmach/orb"

	"citygml-mesh/citygml"
	"citygml-mesh/geom"
)

// ErrEmptyInput is returned when no file contributed a single triangle.
var ErrEmptyInput = errors.New("no triangles could be extracted from the provided GML files")

// Origin is the geographic anchor of the local frame.
type Origin struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Metadata describes where the mesh came from and how it was scaled.
type Metadata struct {
	SourceFiles []string `json:"source_files"`
	LatScale    float64  `json:"lat_scale_m_per_deg"`
	LonScale    float64  `json:"lon_scale_m_per_deg"`
}

// Document is the converted mesh as written to disk.
type Document struct {
	Origin    Origin           `json:"origin"`
	Triangles [][9]float64     `json:"triangles"`
	Bounds    geom.BoundingBox `json:"bounds"`
	Metadata  Metadata         `json:"metadata"`

	// Extent is the lon/lat bound of every kept vertex.
	Extent orb.Bound `json:"-"`
}

// Assemble merges per-file extractions, in the given order, into one mesh.
// Files without triangles are left out entirely. The origin is the mean
// latitude and longitude over every vertex of the kept files.
func Assemble(files []*citygml.Extraction) (*Document, error) {
	var (
		triangles []geom.GeoTriangle
		samples   orb.MultiPoint
		kept      []string
	)
	for _, file := range files {
		if file == nil || len(file.Triangles) == 0 {
			continue
		}
		for _, tri := range file.Triangles {
			for _, v := range tri {
				samples = append(samples, v.Point())
			}
		}
		triangles = append(triangles, file.Triangles...)
		kept = append(kept, file.Name)
	}

	if len(triangles) == 0 {
		return nil, ErrEmptyInput
	}

	origin := meanPoint(samples)
	local, bounds := geom.Project(triangles, origin)
	latScale, lonScale := geom.Scales(origin.Lat())

	flat := make([][9]float64, len(local))
	for i, tri := range local {
		flat[i] = tri.Flatten()
	}

	return &Document{
		Origin:    Origin{Lat: origin.Lat(), Lon: origin.Lon()},
		Triangles: flat,
		Bounds:    bounds,
		Metadata: Metadata{
			SourceFiles: kept,
			LatScale:    latScale,
			LonScale:    lonScale,
		},
		Extent: samples.Bound(),
	}, nil
}

func meanPoint(points orb.MultiPoint) orb.Point {
	var lon, lat float64
	for _, p := range points {
		lon += p.Lon()
		lat += p.Lat()
	}
	n := float64(len(points))
	return orb.Point{lon / n, lat / n}
}
