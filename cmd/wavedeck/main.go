// Command wavedeck renders solver input files from the command line.
//
// Usage:
//
//	wavedeck -list
//	wavedeck -schema SPECFEM3D_CARTESIAN
//	wavedeck -format SPECFEM3D_CARTESIAN \
//	  -config par.yaml \
//	  -events events.yaml -stations stations.yaml \
//	  -output ./run_0001
//
// Event and station sources may be local files or http(s) URLs and can be
// given more than once. Without -output the rendered files are printed to
// stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geoforge/wavedeck/internal/backend"
	"github.com/geoforge/wavedeck/internal/collector"
	"github.com/geoforge/wavedeck/internal/generator"
	"github.com/geoforge/wavedeck/internal/observability"
	"github.com/geoforge/wavedeck/internal/render"
	"github.com/geoforge/wavedeck/internal/writer"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	list := flag.Bool("list", false, "list the available solver formats")
	schemaFormat := flag.String("schema", "", "print the configuration schema of a format")
	format := flag.String("format", "", "solver format to render")
	configPath := flag.String("config", "", "YAML file with the solver configuration")
	output := flag.String("output", "", "directory to write the input files to, stdout when empty")

	var events, stations, eventFilters, stationFilters multiFlag
	flag.Var(&events, "events", "event records, a file or http(s) URL (repeatable)")
	flag.Var(&stations, "stations", "station records, a file or http(s) URL (repeatable)")
	flag.Var(&eventFilters, "event-id", "only use events with this id (repeatable)")
	flag.Var(&stationFilters, "station", "only use stations whose id matches this glob, e.g. 'HT.*' (repeatable)")
	flag.Parse()

	logger := observability.NewLogger("info", "text")
	metrics := observability.NewMetricsForTesting()

	registry := render.NewRegistry()
	backend.RegisterAll(registry, logger)
	gen := generator.New(registry, logger, metrics)

	switch {
	case *list:
		for _, name := range gen.Formats() {
			fmt.Println(name)
		}
	case *schemaFormat != "":
		if err := printSchema(gen, *schemaFormat); err != nil {
			fatal(err)
		}
	case *format != "":
		if err := run(gen, *format, *configPath, *output, events, stations, eventFilters, stationFilters); err != nil {
			fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func run(gen *generator.Generator, format, configPath, output string, events, stations, eventFilters, stationFilters []string) error {
	raw := map[string]any{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	}

	coll := collector.New()
	ctx := context.Background()
	for _, src := range events {
		if err := addSource(ctx, src, coll.AddEventsFile, coll.AddEventsURL); err != nil {
			return err
		}
	}
	for _, src := range stations {
		if err := addSource(ctx, src, coll.AddStationsFile, coll.AddStationsURL); err != nil {
			return err
		}
	}
	if len(eventFilters) > 0 {
		coll.SetEventFilter(eventFilters)
	}
	if len(stationFilters) > 0 {
		coll.SetStationFilter(stationFilters)
	}

	files, err := gen.Render(format, raw, coll.Events(), coll.Stations())
	if err != nil {
		return err
	}

	if output != "" {
		if err := writer.Write(output, files); err != nil {
			return err
		}
		fmt.Printf("wrote %d files to %s\n", len(files), output)
		return nil
	}

	for _, name := range files.Names() {
		fmt.Printf("=== %s ===\n%s\n", name, files[name])
	}
	return nil
}

func addSource(ctx context.Context, src string, fromFile func(string) error, fromURL func(context.Context, string) error) error {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return fromURL(ctx, src)
	}
	return fromFile(src)
}

func printSchema(gen *generator.Generator, format string) error {
	schema, err := gen.Schema(format)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\nRequired:\n", format)
	for _, key := range schema.RequiredKeys() {
		p := schema.Required[key]
		fmt.Printf("  %-44s %-8s %s\n", key, p.Coerce.Name, p.Doc)
	}
	fmt.Println("\nOptional (with defaults):")
	for _, key := range schema.DefaultKeys() {
		p := schema.Defaults[key]
		fmt.Printf("  %-44s %-8s default=%v\n      %s\n", key, p.Coerce.Name, p.Default, p.Doc)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
