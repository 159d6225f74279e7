package search

import (
	"manzily/internal/models"
	"strings"

	"golang.org/x/text/cases"
)

// Predicate reports whether a single record satisfies one criterion.
type Predicate func(p *models.Property) bool

// Predicates turns the active fields of criteria into predicates. Inactive
// fields contribute nothing, so empty criteria yield no predicates.
// The returned predicates share a case folder and must stay on one goroutine.
func Predicates(criteria models.FilterCriteria) []Predicate {
	var filters []Predicate

	// Text search over title and address
	if criteria.SearchText != "" {
		fold := cases.Fold()
		term := fold.String(criteria.SearchText)
		filters = append(filters, func(p *models.Property) bool {
			return strings.Contains(fold.String(p.Title), term) ||
				strings.Contains(fold.String(p.Address), term)
		})
	}

	// Categorical filters
	if criteria.FiltersAvailability() {
		availability := criteria.Availability
		filters = append(filters, func(p *models.Property) bool {
			return p.Availability == availability
		})
	}
	if criteria.FiltersType() {
		propertyType := criteria.PropertyType
		filters = append(filters, func(p *models.Property) bool {
			return p.Type == propertyType
		})
	}

	// Price range (inclusive, each bound independent)
	if criteria.MinPrice != nil {
		minPrice := *criteria.MinPrice
		filters = append(filters, func(p *models.Property) bool {
			return p.Price >= minPrice
		})
	}
	if criteria.MaxPrice != nil {
		maxPrice := *criteria.MaxPrice
		filters = append(filters, func(p *models.Property) bool {
			return p.Price <= maxPrice
		})
	}

	// Rooms range
	if criteria.MinRooms != nil {
		minRooms := *criteria.MinRooms
		filters = append(filters, func(p *models.Property) bool {
			return p.Rooms >= minRooms
		})
	}
	if criteria.MaxRooms != nil {
		maxRooms := *criteria.MaxRooms
		filters = append(filters, func(p *models.Property) bool {
			return p.Rooms <= maxRooms
		})
	}

	return filters
}

// Apply returns the records matching every active criterion, in their
// input order. It never modifies records.
func Apply(records []models.Property, criteria models.FilterCriteria) []models.Property {
	return Match(records, Predicates(criteria)...)
}

// Match keeps the records that satisfy all predicates.
func Match(records []models.Property, predicates ...Predicate) []models.Property {
	result := make([]models.Property, 0, len(records))
	for i := range records {
		if matchesAll(&records[i], predicates) {
			result = append(result, records[i])
		}
	}
	return result
}

func matchesAll(p *models.Property, predicates []Predicate) bool {
	for _, matches := range predicates {
		if !matches(p) {
			return false
		}
	}
	return true
}
