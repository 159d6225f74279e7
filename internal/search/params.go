package search

import (
	"fmt"
	"manzily/internal/models"
	"strconv"
	"strings"
)

// RawCriteria is the filter form as typed by the user: every field is text.
type RawCriteria struct {
	SearchText   string
	Availability string
	PropertyType string
	MinPrice     string
	MaxPrice     string
	MinRooms     string
	MaxRooms     string
	// SearchType is the home tab the search started from (buy, rent, sell).
	SearchType string
}

// Home tabs that start a search. The sell tab opens the creation form.
const (
	TabBuy  = "buy"
	TabRent = "rent"
)

// PresetForTab returns the criteria a home tab opens the filter with. The
// second value is false for tabs that do not start a search.
func PresetForTab(tab string) (models.FilterCriteria, bool) {
	switch strings.ToLower(strings.TrimSpace(tab)) {
	case TabBuy:
		return models.FilterCriteria{Availability: models.AvailabilityForSale}, true
	case TabRent:
		return models.FilterCriteria{Availability: models.AvailabilityForRent}, true
	}
	return models.FilterCriteria{}, false
}

// ParseCriteria normalises raw input into FilterCriteria. Numeric fields that
// do not parse become absent bounds and their names are returned in ignored.
// Unknown availability or type selectors are rejected.
func ParseCriteria(raw RawCriteria, types models.TypeSet) (criteria models.FilterCriteria, ignored []string, err error) {
	criteria.SearchText = strings.TrimSpace(raw.SearchText)

	if preset, ok := PresetForTab(raw.SearchType); ok {
		criteria.Availability = preset.Availability
	}

	if availability := strings.TrimSpace(raw.Availability); availability != "" && availability != models.All {
		parsed, parseErr := models.ParseAvailability(availability)
		if parseErr != nil {
			return models.FilterCriteria{}, nil, fmt.Errorf("invalid availability filter: %w", parseErr)
		}
		criteria.Availability = parsed
	} else if availability == models.All {
		criteria.Availability = models.All
	}

	if propertyType := strings.TrimSpace(raw.PropertyType); propertyType != "" && propertyType != models.All {
		parsed, parseErr := types.Parse(propertyType)
		if parseErr != nil {
			return models.FilterCriteria{}, nil, fmt.Errorf("invalid property type filter: %w", parseErr)
		}
		criteria.PropertyType = parsed
	}

	// Price range
	if raw.MinPrice != "" {
		if minPrice, parseErr := parseInt64(raw.MinPrice); parseErr == nil {
			criteria.MinPrice = &minPrice
		} else {
			ignored = append(ignored, "min_price")
		}
	}
	if raw.MaxPrice != "" {
		if maxPrice, parseErr := parseInt64(raw.MaxPrice); parseErr == nil {
			criteria.MaxPrice = &maxPrice
		} else {
			ignored = append(ignored, "max_price")
		}
	}

	// Rooms range
	if raw.MinRooms != "" {
		if minRooms, parseErr := strconv.Atoi(strings.TrimSpace(raw.MinRooms)); parseErr == nil {
			criteria.MinRooms = &minRooms
		} else {
			ignored = append(ignored, "min_rooms")
		}
	}
	if raw.MaxRooms != "" {
		if maxRooms, parseErr := strconv.Atoi(strings.TrimSpace(raw.MaxRooms)); parseErr == nil {
			criteria.MaxRooms = &maxRooms
		} else {
			ignored = append(ignored, "max_rooms")
		}
	}

	return criteria, ignored, nil
}

// parseInt64 accepts plain integers and tolerates thousands separators such
// as "350,000".
func parseInt64(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseInt(s, 10, 64)
}
