package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"citygml-mesh/citygml"
	"citygml-mesh/config"
	"citygml-mesh/mesh"
)

// MeshConverter handles the conversion of CityGML files into a JSON mesh
type MeshConverter struct {
	Config    config.Config
	Extractor *citygml.Extractor
	Log       *log.Logger
}

// Statistics holds processing statistics
type Statistics struct {
	ConsideredFiles int
	KeptFiles       int
	FallbackFiles   int
	Rings           int
	Triangles       int
	Duration        time.Duration
}

// NewMeshConverter creates a new converter writing progress to out
func NewMeshConverter(cfg config.Config, out io.Writer) *MeshConverter {
	return &MeshConverter{
		Config:    cfg,
		Extractor: cfg.Extractor(),
		Log:       log.New(out, "", 0),
	}
}

func (c *MeshConverter) debugf(format string, args ...interface{}) {
	if c.Config.Debug {
		c.Log.Printf(format, args...)
	}
}

// Convert runs the whole pipeline. Nothing is written unless every file
// parsed and at least one triangle was found.
func (c *MeshConverter) Convert(ctx context.Context) (*Statistics, error) {
	start := time.Now()

	filePaths, err := citygml.GetCityGMLFiles(c.Config.Input, c.Config.Pattern, c.Config.Limit)
	if err != nil {
		return nil, err
	}
	c.Log.Printf("Processing %d CityGML files...", len(filePaths))

	extractions, err := c.extractAll(ctx, filePaths)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{ConsideredFiles: len(filePaths)}
	for _, ex := range extractions {
		if ex.Fallback {
			stats.FallbackFiles++
		}
		stats.Rings += ex.Rings
		if len(ex.Triangles) == 0 {
			c.debugf("  Skipping %s: no triangles", ex.Name)
			continue
		}
		stats.KeptFiles++
		stats.Triangles += len(ex.Triangles)
	}

	doc, err := mesh.Assemble(extractions)
	if err != nil {
		return nil, err
	}
	c.debugf("Origin: lat %.8f lon %.8f", doc.Origin.Lat, doc.Origin.Lon)
	c.debugf("Extent: lon [%.8f, %.8f] lat [%.8f, %.8f]",
		doc.Extent.Left(), doc.Extent.Right(), doc.Extent.Bottom(), doc.Extent.Top())
	c.debugf("Bounds: min %v max %v", doc.Bounds.Min, doc.Bounds.Max)

	if err := doc.WriteFile(c.Config.Output); err != nil {
		return nil, err
	}
	if c.Config.ExtentGeoJSON != "" {
		if err := doc.WriteExtentGeoJSON(c.Config.ExtentGeoJSON); err != nil {
			return nil, err
		}
		c.debugf("Extent written to %s", c.Config.ExtentGeoJSON)
	}

	stats.Duration = time.Since(start)
	c.Log.Printf("Successfully converted %d triangles from %d of %d files into %s",
		stats.Triangles, stats.KeptFiles, stats.ConsideredFiles, c.Config.Output)
	return stats, nil
}

// extractAll parses the files on up to Config.Workers goroutines. Results
// keep the order of filePaths.
func (c *MeshConverter) extractAll(ctx context.Context, filePaths []string) ([]*citygml.Extraction, error) {
	results := make([]*citygml.Extraction, len(filePaths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Config.Workers)
	for i, filePath := range filePaths {
		i, filePath := i, filePath
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ex, err := c.Extractor.ExtractFile(filePath)
			if err != nil {
				return err
			}
			results[i] = ex
			c.debugf("Processing file %d/%d: %s (%d rings, %d triangles, fallback=%v, srs=%q)",
				i+1, len(filePaths), filepath.Base(filePath), ex.Rings, len(ex.Triangles), ex.Fallback, ex.SRSName)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	return results, nil
}
