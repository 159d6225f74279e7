package catalog

import (
	"errors"
	"fmt"
	"manzily/internal/models"
)

// ErrNotFound is returned by ByID when no record carries the id.
var ErrNotFound = errors.New("property not found")

// ErrDuplicateID is returned when two seed records share an id.
var ErrDuplicateID = errors.New("duplicate property id")

// Catalog is the read-only set of listings. It is built once and never
// mutated, so it can be shared between goroutines without locking.
type Catalog struct {
	properties []models.Property
	byID       map[string]int
	types      models.TypeSet
}

// New validates every record against types and builds a catalog that keeps
// the given order.
func New(types models.TypeSet, properties []models.Property) (*Catalog, error) {
	c := &Catalog{
		properties: make([]models.Property, 0, len(properties)),
		byID:       make(map[string]int, len(properties)),
		types:      types,
	}

	for i := range properties {
		p := properties[i]
		if err := p.Validate(types); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		c.byID[p.ID] = len(c.properties)
		c.properties = append(c.properties, clone(p))
	}

	return c, nil
}

// All returns every record in seed order. The slice is a copy.
func (c *Catalog) All() []models.Property {
	out := make([]models.Property, len(c.properties))
	for i, p := range c.properties {
		out[i] = clone(p)
	}
	return out
}

// ByID looks a record up by its identifier.
func (c *Catalog) ByID(id string) (models.Property, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Property{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return clone(c.properties[i]), nil
}

// Types returns the closed set of property types this catalog was built with.
func (c *Catalog) Types() models.TypeSet {
	return c.types
}

func (c *Catalog) Len() int {
	return len(c.properties)
}

// Stats summarises the catalog for the admin-style stats endpoint.
type Stats struct {
	Total          int                         `json:"total"`
	ByAvailability map[models.Availability]int `json:"by_availability"`
	ByType         map[models.PropertyType]int `json:"by_type"`
}

// GetStats counts records per availability and per type. Every known
// availability and type is present, with zero when unused.
func (c *Catalog) GetStats() Stats {
	stats := Stats{
		Total:          len(c.properties),
		ByAvailability: make(map[models.Availability]int, len(models.Availabilities)),
		ByType:         make(map[models.PropertyType]int, c.types.Len()),
	}
	for _, a := range models.Availabilities {
		stats.ByAvailability[a] = 0
	}
	for _, t := range c.types.List() {
		stats.ByType[t] = 0
	}
	for _, p := range c.properties {
		stats.ByAvailability[p.Availability]++
		stats.ByType[p.Type]++
	}
	return stats
}

func clone(p models.Property) models.Property {
	if p.Features != nil {
		features := make([]string, len(p.Features))
		copy(features, p.Features)
		p.Features = features
	}
	if p.YearBuilt != nil {
		year := *p.YearBuilt
		p.YearBuilt = &year
	}
	return p
}
