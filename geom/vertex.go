package geom

import (
	"github.com/paulmach/orb"
	"github.com/ungerik/go3d/float64/vec3"
)

// GeoVertex is a point in geographic space: degrees latitude and longitude,
// height in meters.
type GeoVertex struct {
	Lat    float64
	Lon    float64
	Height float64
}

// Point returns the planar part of the vertex in orb order (lon, lat).
func (v GeoVertex) Point() orb.Point {
	return orb.Point{v.Lon, v.Lat}
}

// LocalVertex is a point in the local metric frame (x east, y up, z south).
type LocalVertex = vec3.T

// Ring is one polygon boundary with the closing duplicate already removed.
type Ring []GeoVertex

// GeoTriangle is a triangle of geographic vertices in fan order.
type GeoTriangle [3]GeoVertex

// LocalTriangle is a projected triangle.
type LocalTriangle [3]LocalVertex

// Flatten returns the triangle as x0,y0,z0,x1,y1,z1,x2,y2,z2.
func (t LocalTriangle) Flatten() [9]float64 {
	var flat [9]float64
	for i, v := range t {
		copy(flat[i*3:], v[:])
	}
	return flat
}
