package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"citygml-mesh/citygml"
	"citygml-mesh/config"
	"citygml-mesh/mesh"
)

const Version = "1.0.0"

func usage() {
	fmt.Printf("CityGML to JSON Mesh v%s\n", Version)
	fmt.Println("Converts CityGML building solids into a flat JSON triangle mesh in a local metric frame")
	fmt.Println("\nUsage:")
	fmt.Printf("  %s --input <input_dir> --output <output_file> [options]\n", os.Args[0])
	fmt.Printf("  %s [options] <input_dir> <output_file>\n\n", os.Args[0])
	fmt.Println("Arguments:")
	fmt.Println("  --input      Directory containing CityGML files")
	fmt.Println("  --output     Output path for the JSON mesh")
	fmt.Println("\nOptional arguments:")
	fmt.Printf("  --limit      Maximum number of GML files to include, 0 for all (default: %d)\n", config.DefaultLimit)
	fmt.Println("  --pattern    File name pattern inside the input directory (default: *.gml)")
	fmt.Println("  --workers    Number of files parsed in parallel (default: number of CPUs)")
	fmt.Println("  --solid      Building element holding the target solid (default: lod1Solid)")
	fmt.Println("  --extent     Also write the lon/lat extent and origin as GeoJSON to this path")
	fmt.Println("  --config     YAML file with any of the settings above")
	fmt.Println("  --debug      Enable debug output with detailed processing info")
	fmt.Println("  --help       Show this help message")
	fmt.Println("\nExamples:")
	fmt.Printf("  %s --input ./citygml_files --output ./out/mesh.json\n", os.Args[0])
	fmt.Printf("  %s --limit 0 --extent ./out/extent.geojson ./citygml_files ./out/mesh.json\n", os.Args[0])
	fmt.Println("\nOutput frame:")
	fmt.Println("  x = (lon - lon0) * m/deg lon, y = height, z = -(lat - lat0) * m/deg lat")
	fmt.Println("  origin (lat0, lon0) is the mean of every extracted vertex")
	fmt.Println("\nKnown limitation:")
	fmt.Println("  polygons are fan-triangulated from their first vertex, so only convex or")
	fmt.Println("  star-shaped outlines triangulate correctly")
}

// loadConfig layers defaults, the optional YAML file, explicitly set flags
// and positional arguments, in that order.
func loadConfig(fs *flag.FlagSet, args []string) (config.Config, bool, error) {
	cfg := config.Default()

	var (
		configPath = fs.String("config", "", "YAML config file")
		inputDir   = fs.String("input", "", "Directory containing CityGML files")
		outputFile = fs.String("output", "", "Output path for the JSON mesh")
		limit      = fs.Int("limit", cfg.Limit, "Maximum number of GML files to include (0 for all)")
		pattern    = fs.String("pattern", cfg.Pattern, "File name pattern inside the input directory")
		workers    = fs.Int("workers", cfg.Workers, "Number of files parsed in parallel")
		solid      = fs.String("solid", cfg.SolidElement, "Building element holding the target solid")
		extent     = fs.String("extent", "", "GeoJSON path for the lon/lat extent")
		debug      = fs.Bool("debug", false, "Enable debug output with detailed processing info")
		help       = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return cfg, false, err
	}
	if *help {
		return cfg, true, nil
	}

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return cfg, false, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *inputDir
		case "output":
			cfg.Output = *outputFile
		case "limit":
			cfg.Limit = *limit
		case "pattern":
			cfg.Pattern = *pattern
		case "workers":
			cfg.Workers = *workers
		case "solid":
			cfg.SolidElement = *solid
		case "extent":
			cfg.ExtentGeoJSON = *extent
		case "debug":
			cfg.Debug = *debug
		}
	})

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 2:
		cfg.Input, cfg.Output = rest[0], rest[1]
	default:
		return cfg, false, fmt.Errorf("expected <input_dir> <output_file>, got %d arguments", len(rest))
	}

	return cfg, false, cfg.Validate()
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg, help, err := loadConfig(fs, os.Args[1:])
	if help {
		usage()
		os.Exit(0)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println("Use --help for usage information")
		os.Exit(1)
	}

	// Convert paths to absolute
	absInputDir, err := filepath.Abs(cfg.Input)
	if err != nil {
		fmt.Printf("Error: Invalid input directory '%s': %v\n", cfg.Input, err)
		os.Exit(1)
	}
	absOutputFile, err := filepath.Abs(cfg.Output)
	if err != nil {
		fmt.Printf("Error: Invalid output file '%s': %v\n", cfg.Output, err)
		os.Exit(1)
	}
	cfg.Input, cfg.Output = absInputDir, absOutputFile

	if cfg.Debug {
		fmt.Println("Debug mode enabled")
		fmt.Printf("Input Directory: %s\n", cfg.Input)
		fmt.Printf("Output File: %s\n", cfg.Output)
		fmt.Printf("Limit: %d, Workers: %d, Solid: %s\n", cfg.Limit, cfg.Workers, cfg.SolidElement)
	}

	fmt.Printf("CityGML to JSON Mesh v%s\n", Version)
	fmt.Println("======================")

	converter := NewMeshConverter(cfg, os.Stdout)
	if _, err := converter.Convert(context.Background()); err != nil {
		var perr *citygml.ParseError
		switch {
		case errors.Is(err, mesh.ErrEmptyInput):
			fmt.Printf("Error: %v\n", err)
		case errors.As(err, &perr):
			fmt.Printf("Error: malformed geometry, no output written: %v\n", err)
		default:
			fmt.Printf("Error during conversion: %v\n", err)
		}
		os.Exit(1)
	}
}
