package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"manzily/internal/catalog"
	"manzily/internal/config"
	"manzily/internal/format"
	"manzily/internal/models"
	"manzily/internal/search"
	"os"
	"text/tabwriter"
)

// Command-line access to the same catalog and filter the API serves.
func main() {
	log.SetFlags(0)

	var (
		seedPath = flag.String("seed", "", "seed file (default: config or built-in listings)")
		id       = flag.String("id", "", "show a single listing by id")
		raw      search.RawCriteria
	)
	flag.StringVar(&raw.SearchText, "q", "", "search title or address")
	flag.StringVar(&raw.Availability, "availability", "", "all, for_sale or for_rent")
	flag.StringVar(&raw.PropertyType, "type", "", "all or a property type")
	flag.StringVar(&raw.MinPrice, "min-price", "", "minimum price")
	flag.StringVar(&raw.MaxPrice, "max-price", "", "maximum price")
	flag.StringVar(&raw.MinRooms, "min-rooms", "", "minimum rooms")
	flag.StringVar(&raw.MaxRooms, "max-rooms", "", "maximum rooms")
	flag.StringVar(&raw.SearchType, "tab", "", "home tab preset: buy or rent")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Warning: %v", err)
	}
	appConfig, err := config.LoadConfig(config.GetEnv("CONFIG_PATH", "config/config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seedPath == "" {
		*seedPath = appConfig.Catalog.SeedPath
	}

	cat, err := catalog.LoadSeed(*seedPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	if *id != "" {
		if err := printDetail(os.Stdout, cat, *id); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				fmt.Fprintln(os.Stderr, "Property not found")
				os.Exit(1)
			}
			log.Fatal(err)
		}
		return
	}

	criteria, ignored, err := search.ParseCriteria(raw, cat.Types())
	if err != nil {
		log.Fatalf("Invalid filter: %v", err)
	}
	for _, field := range ignored {
		log.Printf("Warning: ignoring non-numeric %s", field)
	}

	results := search.Apply(cat.All(), criteria)
	if err := printResults(os.Stdout, results); err != nil {
		log.Fatal(err)
	}
}

func printResults(w io.Writer, results []models.Property) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Results (%d)\n", len(results))
	for _, p := range results {
		d := format.For(p)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d rooms\t%s\t%s\n",
			p.ID, p.Title, d.Type, d.Availability, p.Rooms, d.Price, p.Address)
	}
	return tw.Flush()
}

func printDetail(w io.Writer, cat *catalog.Catalog, id string) error {
	p, err := cat.ByID(id)
	if err != nil {
		return err
	}
	d := format.For(p)

	fmt.Fprintf(w, "%s\n%s\n%s  [%s]\n\n", p.Title, p.Address, d.Price, d.Availability)
	fmt.Fprintf(w, "Type: %s\nSize: %s\nRooms: %d\nBathrooms: %d\n", d.Type, d.Size, p.Rooms, p.Bathrooms)
	if p.YearBuilt != nil {
		fmt.Fprintf(w, "Year Built: %d\n", *p.YearBuilt)
	}
	fmt.Fprintf(w, "Property ID: %s\n", p.ID)
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
	for _, f := range p.Features {
		fmt.Fprintf(w, "✓ %s\n", f)
	}
	return nil
}
