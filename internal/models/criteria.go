package models

// All is the selector value meaning "this dimension is unconstrained".
const All = "all"

// FilterCriteria is one query session's filter draft. Nil bounds and empty
// strings are no-ops.
type FilterCriteria struct {
	SearchText   string       `json:"search_text,omitempty"`
	Availability Availability `json:"availability,omitempty"`
	PropertyType PropertyType `json:"property_type,omitempty"`
	MinPrice     *int64       `json:"min_price,omitempty"`
	MaxPrice     *int64       `json:"max_price,omitempty"`
	MinRooms     *int         `json:"min_rooms,omitempty"`
	MaxRooms     *int         `json:"max_rooms,omitempty"`
}

// IsEmpty reports whether no criterion is active.
func (c FilterCriteria) IsEmpty() bool {
	return c.SearchText == "" &&
		!c.FiltersAvailability() &&
		!c.FiltersType() &&
		c.MinPrice == nil && c.MaxPrice == nil &&
		c.MinRooms == nil && c.MaxRooms == nil
}

// FiltersAvailability reports whether availability narrows the result.
func (c FilterCriteria) FiltersAvailability() bool {
	return c.Availability != "" && c.Availability != All
}

// FiltersType reports whether property type narrows the result.
func (c FilterCriteria) FiltersType() bool {
	return c.PropertyType != "" && c.PropertyType != All
}
