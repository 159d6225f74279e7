package search

import (
	"manzily/internal/format"
	"manzily/internal/models"
)

// Option is one selectable value of a categorical filter.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Range is the observed span of a numeric attribute.
type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// FilterOptions describes what the filter form can offer for a record set.
type FilterOptions struct {
	Availabilities []Option `json:"availabilities"`
	Types          []Option `json:"types"`
	Price          *Range   `json:"price,omitempty"`
	Rooms          *Range   `json:"rooms,omitempty"`
	Count          int      `json:"count"`
}

// Options computes facet counts and numeric ranges. Every availability and
// every type in types is listed, including those with no records, in
// declaration order. Ranges are nil for an empty record set.
func Options(records []models.Property, types models.TypeSet) FilterOptions {
	availabilityCounts := make(map[models.Availability]int)
	typeCounts := make(map[models.PropertyType]int)

	var price, rooms *Range
	for _, p := range records {
		availabilityCounts[p.Availability]++
		typeCounts[p.Type]++
		price = widen(price, p.Price)
		rooms = widen(rooms, int64(p.Rooms))
	}

	opts := FilterOptions{
		Availabilities: make([]Option, 0, len(models.Availabilities)),
		Types:          make([]Option, 0, types.Len()),
		Price:          price,
		Rooms:          rooms,
		Count:          len(records),
	}
	for _, a := range models.Availabilities {
		opts.Availabilities = append(opts.Availabilities, Option{
			Value: string(a),
			Label: format.AvailabilityLabel(a),
			Count: availabilityCounts[a],
		})
	}
	for _, t := range types.List() {
		opts.Types = append(opts.Types, Option{
			Value: string(t),
			Label: format.TypeLabel(t),
			Count: typeCounts[t],
		})
	}
	return opts
}

func widen(r *Range, v int64) *Range {
	if r == nil {
		return &Range{Min: v, Max: v}
	}
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}
