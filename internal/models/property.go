package models

import (
	"errors"
	"fmt"
)

type Property struct {
	// 基本情報
	ID    string       `yaml:"id" json:"id"`
	Title string       `yaml:"title" json:"title"`
	Type  PropertyType `yaml:"type" json:"type"`
	Image string       `yaml:"image" json:"image,omitempty"`

	// フィルタ用属性
	Availability Availability `yaml:"availability" json:"availability"`
	Price        int64        `yaml:"price" json:"price"`
	Rooms        int          `yaml:"rooms" json:"rooms"`
	Bathrooms    int          `yaml:"bathrooms" json:"bathrooms"`
	Address      string       `yaml:"address" json:"address"`

	// 詳細
	Size        float64  `yaml:"size" json:"size"`
	SizeUnit    string   `yaml:"size_unit" json:"size_unit"`
	YearBuilt   *int     `yaml:"year_built" json:"year_built,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Features    []string `yaml:"features" json:"features"`
}

// Availability は物件の募集区分
type Availability string

const (
	AvailabilityForSale Availability = "for_sale"
	AvailabilityForRent Availability = "for_rent"
)

// Availabilities lists every availability in display order.
var Availabilities = []Availability{AvailabilityForSale, AvailabilityForRent}

// ParseAvailability accepts only the closed set of availabilities.
func ParseAvailability(s string) (Availability, error) {
	switch Availability(s) {
	case AvailabilityForSale, AvailabilityForRent:
		return Availability(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAvailability, s)
}

// IsRental reports whether the price is a monthly rent rather than a sale price.
func (a Availability) IsRental() bool {
	return a == AvailabilityForRent
}

// PropertyType は物件種別
type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeCondo     PropertyType = "condo"
	PropertyTypeTownhouse PropertyType = "townhouse"
	PropertyTypeVilla     PropertyType = "villa"
)

var (
	ErrUnknownAvailability = errors.New("unknown availability")
	ErrUnknownType         = errors.New("unknown property type")
	ErrInvalidProperty     = errors.New("invalid property")
)

// Validate checks the per-record invariants. Id uniqueness is a catalog concern.
func (p *Property) Validate(types TypeSet) error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProperty)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: %s: negative price %d", ErrInvalidProperty, p.ID, p.Price)
	}
	if p.Rooms < 0 || p.Bathrooms < 0 {
		return fmt.Errorf("%w: %s: negative room count", ErrInvalidProperty, p.ID)
	}
	if _, err := ParseAvailability(string(p.Availability)); err != nil {
		return fmt.Errorf("%s: %w", p.ID, err)
	}
	if !types.Contains(p.Type) {
		return fmt.Errorf("%s: %w: %q", p.ID, ErrUnknownType, p.Type)
	}
	return nil
}
