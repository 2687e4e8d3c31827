package citygml

import (
	"errors"
	"path/filepath"

	"citygml-mesh/geom"
)

// Default namespaces and target solid for CityGML 2.0 buildings.
const (
	GMLNamespace      = "http://www.opengis.net/gml"
	BuildingNamespace = "http://www.opengis.net/citygml/building/2.0"
	LoD1Solid         = "lod1Solid"
)

// Extractor turns building solids into raw geographic triangles
type Extractor struct {
	GMLNamespace      string
	BuildingNamespace string
	SolidElement      string
}

// Extraction is the outcome for one document.
type Extraction struct {
	Name      string
	Triangles []geom.GeoTriangle
	Rings     int
	Fallback  bool   // the document-wide ring sweep ran
	SRSName   string // srsName of the document envelope, if declared
}

// NewExtractor creates an extractor for LoD1 solids in CityGML 2.0
func NewExtractor() *Extractor {
	return &Extractor{
		GMLNamespace:      GMLNamespace,
		BuildingNamespace: BuildingNamespace,
		SolidElement:      LoD1Solid,
	}
}

// ExtractFile parses the document at path and extracts its triangles.
func (e *Extractor) ExtractFile(path string) (*Extraction, error) {
	root, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return e.Extract(root, filepath.Base(path))
}

// Extract collects the triangles of every linear ring inside the target
// solids of root. When that yields nothing, every linear ring in the
// document is used instead. An empty result is not an error.
func (e *Extractor) Extract(root *XMLNode, name string) (*Extraction, error) {
	result := &Extraction{Name: name, SRSName: e.srsName(root)}

	var rings []*XMLNode
	for _, solid := range root.FindAll(e.BuildingNamespace, e.SolidElement) {
		rings = append(rings, solid.FindAll(e.GMLNamespace, "LinearRing")...)
	}
	if err := e.triangulate(result, rings); err != nil {
		return nil, err
	}

	if len(result.Triangles) == 0 {
		result.Fallback = true
		result.Rings = 0
		if err := e.triangulate(result, root.FindAll(e.GMLNamespace, "LinearRing")); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (e *Extractor) triangulate(result *Extraction, rings []*XMLNode) error {
	for i, node := range rings {
		ring, err := ParseRing(node, e.GMLNamespace)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.File = result.Name
				perr.Ring = i + 1
			}
			return err
		}
		result.Rings++
		result.Triangles = append(result.Triangles, geom.Fan(ring)...)
	}
	return nil
}

// srsName returns the reference system declared on the document's
// gml:boundedBy/gml:Envelope.
func (e *Extractor) srsName(root *XMLNode) string {
	bounded := root.Child(e.GMLNamespace, "boundedBy")
	if bounded == nil {
		return ""
	}
	envelope := bounded.Child(e.GMLNamespace, "Envelope")
	if envelope == nil {
		return ""
	}
	for _, attr := range envelope.Attrs {
		if attr.Name.Local == "srsName" {
			return attr.Value
		}
	}
	return ""
}
