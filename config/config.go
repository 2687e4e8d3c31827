package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"citygml-mesh/citygml"
)

// DefaultLimit is the number of source files converted when no limit is given.
const DefaultLimit = 12

// Namespaces holds the XML namespace URIs of the source documents
type Namespaces struct {
	GML      string `yaml:"gml"`
	Building string `yaml:"building"`
}

// Config holds the conversion settings
type Config struct {
	Input         string     `yaml:"input"`
	Output        string     `yaml:"output"`
	Limit         int        `yaml:"limit"`
	Pattern       string     `yaml:"pattern"`
	Workers       int        `yaml:"workers"`
	SolidElement  string     `yaml:"solid_element"`
	Namespaces    Namespaces `yaml:"namespaces"`
	ExtentGeoJSON string     `yaml:"extent_geojson"`
	Debug         bool       `yaml:"debug"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		Limit:        DefaultLimit,
		Pattern:      "*.gml",
		Workers:      runtime.NumCPU(),
		SolidElement: citygml.LoD1Solid,
		Namespaces: Namespaces{
			GML:      citygml.GMLNamespace,
			Building: citygml.BuildingNamespace,
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the settings can drive a conversion.
func (c Config) Validate() error {
	switch {
	case c.Input == "":
		return errors.New("input directory is required")
	case c.Output == "":
		return errors.New("output path is required")
	case c.Limit < 0:
		return fmt.Errorf("limit must not be negative, got %d", c.Limit)
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.Pattern == "":
		return errors.New("file pattern is required")
	case c.SolidElement == "":
		return errors.New("solid element is required")
	case c.Namespaces.GML == "" || c.Namespaces.Building == "":
		return errors.New("gml and building namespaces are required")
	}
	return nil
}

// Extractor builds a solid extractor from the namespace settings.
func (c Config) Extractor() *citygml.Extractor {
	return &citygml.Extractor{
		GMLNamespace:      c.Namespaces.GML,
		BuildingNamespace: c.Namespaces.Building,
		SolidElement:      c.SolidElement,
	}
}
