// Package format renders listing attributes the way the list and detail
// views display them.
package format

import (
	"manzily/internal/models"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Price renders "$350,000" for sale listings and "$2,500/month" for rentals.
func Price(price int64, availability models.Availability) string {
	p := message.NewPrinter(language.English)
	if availability.IsRental() {
		return p.Sprintf("$%d/month", price)
	}
	return p.Sprintf("$%d", price)
}

// AvailabilityLabel is the badge text for an availability.
func AvailabilityLabel(a models.Availability) string {
	if a.IsRental() {
		return "For Rent"
	}
	return "For Sale"
}

// TypeLabel capitalises a property type for display.
func TypeLabel(t models.PropertyType) string {
	return cases.Title(language.English).String(string(t))
}

// Size renders a magnitude with its unit, e.g. "1200 sq ft".
func Size(size float64, unit string) string {
	s := strconv.FormatFloat(size, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// Display is the preformatted text a card or detail view shows.
type Display struct {
	Price        string `json:"price"`
	Availability string `json:"availability"`
	Type         string `json:"type"`
	Size         string `json:"size"`
}

// For formats every display field of p.
func For(p models.Property) Display {
	return Display{
		Price:        Price(p.Price, p.Availability),
		Availability: AvailabilityLabel(p.Availability),
		Type:         TypeLabel(p.Type),
		Size:         Size(p.Size, p.SizeUnit),
	}
}
