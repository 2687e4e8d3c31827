package citygml

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"citygml-mesh/geom"
)

var (
	errNotFinite  = errors.New("value is not finite")
	errIncomplete = errors.New("coordinate count is not a multiple of 3")
)

// ParseRing reads the vertices of one gml:LinearRing. Coordinates come from
// the ring's gml:posList, or from its gml:pos children when there is no
// posList. A missing node or an empty list gives an empty ring.
//
// If the ring closes on itself the duplicated last vertex is dropped.
func ParseRing(ring *XMLNode, gmlNS string) (geom.Ring, error) {
	if ring == nil {
		return nil, nil
	}

	var text string
	if posList := ring.Child(gmlNS, "posList"); posList != nil {
		text = posList.Content
	} else {
		var parts []string
		for _, pos := range ring.Children(gmlNS, "pos") {
			parts = append(parts, pos.Content)
		}
		text = strings.Join(parts, " ")
	}

	values, err := parseFloats(text)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	if len(values)%3 != 0 {
		return nil, &ParseError{Token: strconv.Itoa(len(values)) + " values", Err: errIncomplete}
	}

	coords := make(geom.Ring, 0, len(values)/3)
	for i := 0; i < len(values); i += 3 {
		coords = append(coords, geom.GeoVertex{Lat: values[i], Lon: values[i+1], Height: values[i+2]})
	}
	if len(coords) > 1 && coords[0] == coords[len(coords)-1] {
		coords = coords[:len(coords)-1]
	}
	return coords, nil
}

func parseFloats(text string) ([]float64, error) {
	fields := strings.Fields(text)
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, &ParseError{Token: field, Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ParseError{Token: field, Err: errNotFinite}
		}
		values = append(values, v)
	}
	return values, nil
}
