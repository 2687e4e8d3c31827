package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"citygml-mesh/citygml"
	"citygml-mesh/config"
	"citygml-mesh/mesh"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<core:CityModel xmlns:core="http://www.opengis.net/citygml/2.0" xmlns:gml="http://www.opengis.net/gml" xmlns:bldg="http://www.opengis.net/citygml/building/2.0">
`

const square = "0 0 0 0 0.001 0 0.001 0.001 10 0.001 0 10 0 0 0"

func building(posList string) string {
	return `<core:cityObjectMember><bldg:Building><bldg:lod1Solid><gml:Solid><gml:exterior><gml:CompositeSurface>
<gml:surfaceMember><gml:Polygon><gml:exterior><gml:LinearRing><gml:posList>` + posList + `</gml:posList></gml:LinearRing></gml:exterior></gml:Polygon></gml:surfaceMember>
</gml:CompositeSurface></gml:exterior></gml:Solid></bldg:lod1Solid></bldg:Building></core:cityObjectMember>`
}

func writeInput(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		doc := header + body + "\n</core:CityModel>\n"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testConfig(t *testing.T, input string) config.Config {
	cfg := config.Default()
	cfg.Input = input
	cfg.Output = filepath.Join(t.TempDir(), "out", "mesh.json")
	cfg.Debug = true
	return cfg
}

func convert(t *testing.T, cfg config.Config) (*Statistics, error) {
	t.Helper()
	return NewMeshConverter(cfg, io.Discard).Convert(context.Background())
}

func readDocument(t *testing.T, path string) *mesh.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc mesh.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	return &doc
}

func TestConvertSingleSquare(t *testing.T) {
	cfg := testConfig(t, writeInput(t, map[string]string{"a.gml": building(square)}))
	stats, err := convert(t, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Triangles != 2 || stats.KeptFiles != 1 {
		t.Errorf("stats: %+v", stats)
	}

	doc := readDocument(t, cfg.Output)
	if len(doc.Triangles) != 2 {
		t.Fatalf("got %d triangles, want 2", len(doc.Triangles))
	}
	if math.Abs(doc.Origin.Lat-0.0005) > 1e-9 || math.Abs(doc.Origin.Lon-0.0005) > 1e-9 {
		t.Errorf("origin: got %+v", doc.Origin)
	}
	if doc.Bounds.Min[1] != 0 || doc.Bounds.Max[1] != 10 {
		t.Errorf("height range: got [%f, %f]", doc.Bounds.Min[1], doc.Bounds.Max[1])
	}
	if len(doc.Metadata.SourceFiles) != 1 || doc.Metadata.SourceFiles[0] != "a.gml" {
		t.Errorf("source files: got %v", doc.Metadata.SourceFiles)
	}
}

func TestConvertFallback(t *testing.T) {
	body := `<core:cityObjectMember><bldg:Building><bldg:lod1Solid/><bldg:boundedBy><bldg:RoofSurface>
<gml:LinearRing><gml:posList>` + square + `</gml:posList></gml:LinearRing>
</bldg:RoofSurface></bldg:boundedBy></bldg:Building></core:cityObjectMember>`
	cfg := testConfig(t, writeInput(t, map[string]string{"a.gml": body}))
	stats, err := convert(t, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if stats.FallbackFiles != 1 || stats.Triangles != 2 {
		t.Errorf("stats: %+v", stats)
	}
}

func TestConvertEmptyInput(t *testing.T) {
	cfg := testConfig(t, writeInput(t, map[string]string{"a.gml": "", "b.gml": building("")}))
	_, err := convert(t, cfg)
	if !errors.Is(err, mesh.ErrEmptyInput) {
		t.Fatalf("got %v, want ErrEmptyInput", err)
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Errorf("output written after failure: %v", err)
	}
}

func TestConvertParseError(t *testing.T) {
	cfg := testConfig(t, writeInput(t, map[string]string{
		"a.gml": building(square),
		"b.gml": building("0 0 0 NaN 1 1 1 1 1"),
	}))
	_, err := convert(t, cfg)
	var perr *citygml.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want ParseError", err)
	}
	if perr.File != "b.gml" {
		t.Errorf("error names file %q", perr.File)
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Errorf("output written after failure: %v", err)
	}
}

func TestConvertSkipsEmptyFiles(t *testing.T) {
	cfg := testConfig(t, writeInput(t, map[string]string{
		"a.gml": "",
		"b.gml": building(square),
		"c.gml": building("1 1 0 1 1.001 0 1.001 1.001 5 1 1 0"),
	}))
	stats, err := convert(t, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if stats.ConsideredFiles != 3 || stats.KeptFiles != 2 {
		t.Errorf("stats: %+v", stats)
	}
	doc := readDocument(t, cfg.Output)
	if got := strings.Join(doc.Metadata.SourceFiles, ","); got != "b.gml,c.gml" {
		t.Errorf("source files: got %s", got)
	}
}

func TestConvertLimitCountsConsideredFiles(t *testing.T) {
	cfg := testConfig(t, writeInput(t, map[string]string{
		"a.gml": "",
		"b.gml": building(square),
		"c.gml": building(square),
	}))
	cfg.Limit = 2
	stats, err := convert(t, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if stats.ConsideredFiles != 2 || stats.KeptFiles != 1 {
		t.Errorf("stats: %+v", stats)
	}
}

// Output bytes do not depend on the run or on the number of workers.
func TestConvertDeterministic(t *testing.T) {
	files := map[string]string{}
	for i, name := range []string{"a.gml", "b.gml", "c.gml", "d.gml", "e.gml"} {
		shift := float64(i) * 0.002
		ring := strings.Join([]string{
			ftoa(-6.2 + shift), "106.8", "0",
			ftoa(-6.2 + shift), "106.801", "0",
			ftoa(-6.199 + shift), "106.801", "12",
		}, " ")
		files[name] = building(ring)
	}
	input := writeInput(t, files)

	var outputs [][]byte
	for _, workers := range []int{1, 1, 4} {
		cfg := testConfig(t, input)
		cfg.Workers = workers
		if _, err := convert(t, cfg); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(cfg.Output)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}
	for i := 1; i < len(outputs); i++ {
		if !bytes.Equal(outputs[0], outputs[i]) {
			t.Errorf("run %d differs from run 0", i)
		}
	}
}

func TestConvertExtent(t *testing.T) {
	cfg := testConfig(t, writeInput(t, map[string]string{"a.gml": building(square)}))
	cfg.ExtentGeoJSON = filepath.Join(t.TempDir(), "extent.geojson")
	if _, err := convert(t, cfg); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(cfg.ExtentGeoJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"origin"`)) {
		t.Errorf("extent file lacks the origin feature:\n%s", data)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gml2json.yaml")
	if err := os.WriteFile(path, []byte("input: from-file\noutput: from-file.json\nlimit: 3\nworkers: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("gml2json", flag.ContinueOnError)
	cfg, help, err := loadConfig(fs, []string{"--config", path, "--limit", "5", "src", "dest.json"})
	if err != nil || help {
		t.Fatalf("loadConfig: %v, help=%v", err, help)
	}
	if cfg.Input != "src" || cfg.Output != "dest.json" {
		t.Errorf("positional arguments ignored: %+v", cfg)
	}
	if cfg.Limit != 5 || cfg.Workers != 2 {
		t.Errorf("got limit %d workers %d, want 5 and 2", cfg.Limit, cfg.Workers)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"only-input"},
		{"--limit", "-1", "in", "out.json"},
	} {
		fs := flag.NewFlagSet("gml2json", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		if _, _, err := loadConfig(fs, args); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}

	fs := flag.NewFlagSet("gml2json", flag.ContinueOnError)
	if _, help, _ := loadConfig(fs, []string{"--help"}); !help {
		t.Error("--help not reported")
	}
}

func ftoa(f float64) string {
	data, _ := json.Marshal(f)
	return string(data)
}
