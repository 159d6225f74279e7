package search

import (
	"manzily/internal/models"
	"testing"
)

func TestOptions(t *testing.T) {
	opts := Options(wideRecords(), models.DefaultTypes)

	if opts.Count != 6 {
		t.Errorf("Count = %d, want 6", opts.Count)
	}
	if opts.Price == nil || opts.Price.Min != 950 || opts.Price.Max != 900000 {
		t.Errorf("Price = %+v, want 950..900000", opts.Price)
	}
	if opts.Rooms == nil || opts.Rooms.Min != 1 || opts.Rooms.Max != 6 {
		t.Errorf("Rooms = %+v, want 1..6", opts.Rooms)
	}

	if len(opts.Availabilities) != 2 {
		t.Fatalf("Availabilities = %+v", opts.Availabilities)
	}
	if a := opts.Availabilities[0]; a.Value != "for_sale" || a.Label != "For Sale" || a.Count != 3 {
		t.Errorf("Availabilities[0] = %+v", a)
	}
	if a := opts.Availabilities[1]; a.Value != "for_rent" || a.Label != "For Rent" || a.Count != 3 {
		t.Errorf("Availabilities[1] = %+v", a)
	}

	want := map[string]int{"house": 1, "apartment": 2, "condo": 1, "townhouse": 1, "villa": 1}
	if len(opts.Types) != len(want) {
		t.Fatalf("Types = %+v", opts.Types)
	}
	if opts.Types[0].Value != "house" || opts.Types[0].Label != "House" {
		t.Errorf("Types[0] = %+v, want house first", opts.Types[0])
	}
	for _, o := range opts.Types {
		if o.Count != want[o.Value] {
			t.Errorf("Types[%s].Count = %d, want %d", o.Value, o.Count, want[o.Value])
		}
	}
}

func TestOptionsEmpty(t *testing.T) {
	opts := Options(nil, models.NewTypeSet("house"))
	if opts.Price != nil || opts.Rooms != nil {
		t.Errorf("ranges should be nil for no records: %+v", opts)
	}
	if len(opts.Types) != 1 || opts.Types[0].Count != 0 {
		t.Errorf("Types = %+v", opts.Types)
	}
}
