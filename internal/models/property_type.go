package models

import "fmt"

// TypeSet is the closed, ordered set of property types a catalog accepts.
type TypeSet struct {
	order []PropertyType
	index map[PropertyType]struct{}
}

// DefaultTypes is used when the seed data does not declare its own types.
var DefaultTypes = NewTypeSet(
	PropertyTypeHouse,
	PropertyTypeApartment,
	PropertyTypeCondo,
	PropertyTypeTownhouse,
	PropertyTypeVilla,
)

// NewTypeSet builds a set, dropping empty and repeated entries.
func NewTypeSet(types ...PropertyType) TypeSet {
	ts := TypeSet{index: make(map[PropertyType]struct{}, len(types))}
	for _, t := range types {
		if t == "" {
			continue
		}
		if _, dup := ts.index[t]; dup {
			continue
		}
		ts.index[t] = struct{}{}
		ts.order = append(ts.order, t)
	}
	return ts
}

// Parse returns the type when s names a member of the set.
func (ts TypeSet) Parse(s string) (PropertyType, error) {
	t := PropertyType(s)
	if _, ok := ts.index[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// Contains reports membership.
func (ts TypeSet) Contains(t PropertyType) bool {
	_, ok := ts.index[t]
	return ok
}

// List returns the members in declaration order.
func (ts TypeSet) List() []PropertyType {
	out := make([]PropertyType, len(ts.order))
	copy(out, ts.order)
	return out
}

func (ts TypeSet) Len() int {
	return len(ts.order)
}
