package geom

import "github.com/paulmach/orb"

// Projector maps geographic vertices into the local metric frame anchored
// at Origin. Scales are evaluated once, at the origin latitude.
type Projector struct {
	Origin   orb.Point
	LatScale float64
	LonScale float64
}

// NewProjector builds a projector for origin (lon, lat).
func NewProjector(origin orb.Point) Projector {
	latScale, lonScale := Scales(origin.Lat())
	return Projector{
		Origin:   origin,
		LatScale: latScale,
		LonScale: lonScale,
	}
}

// Vertex projects one vertex. Increasing latitude maps to decreasing z.
func (p Projector) Vertex(v GeoVertex) LocalVertex {
	return LocalVertex{
		(v.Lon - p.Origin.Lon()) * p.LonScale,
		v.Height,
		-(v.Lat - p.Origin.Lat()) * p.LatScale,
	}
}

// Project converts every triangle and accumulates the bounding box of the
// projected vertices. Triangle order is preserved.
func Project(triangles []GeoTriangle, origin orb.Point) ([]LocalTriangle, BoundingBox) {
	p := NewProjector(origin)
	bounds := NewBoundingBox()

	local := make([]LocalTriangle, len(triangles))
	for i, tri := range triangles {
		for j, v := range tri {
			local[i][j] = p.Vertex(v)
			bounds.Add(&local[i][j])
		}
	}
	return local, bounds
}
