package geom

// Fan splits a polygon into triangles that all share the first vertex.
//
// Only convex rings, or rings star-shaped from vertex 0, come out right.
// Concave outlines get overlapping triangles; there is no convexity or
// self-intersection check, and the output topology must stay a plain fan.
func Fan(ring Ring) []GeoTriangle {
	if len(ring) < 3 {
		return nil
	}

	anchor := ring[0]
	triangles := make([]GeoTriangle, 0, len(ring)-2)
	for i := 1; i < len(ring)-1; i++ {
		triangles = append(triangles, GeoTriangle{anchor, ring[i], ring[i+1]})
	}
	return triangles
}
