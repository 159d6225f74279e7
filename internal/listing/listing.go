// Package listing validates listings submitted through the creation form.
package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"manzily/internal/models"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Draft is the creation form's local state. All fields are raw text.
type Draft struct {
	Title        FormValue `json:"title"`
	Type         FormValue `json:"type"`
	Size         FormValue `json:"size"`
	SizeUnit     FormValue `json:"size_unit"`
	Address      FormValue `json:"address"`
	Rooms        FormValue `json:"rooms"`
	Bathrooms    FormValue `json:"bathrooms"`
	Price        FormValue `json:"price"`
	Availability FormValue `json:"availability"`
	Description  FormValue `json:"description"`
	// Features is comma separated.
	Features  FormValue `json:"features"`
	YearBuilt FormValue `json:"year_built"`
}

// Draft defaults, matching a freshly opened form.
const (
	DefaultType         = models.PropertyTypeApartment
	DefaultSizeUnit     = "sq ft"
	DefaultAvailability = models.AvailabilityForSale
)

// NewDraft returns an empty draft with form defaults filled in.
func NewDraft() Draft {
	return Draft{
		Type:         FormValue(DefaultType),
		SizeUnit:     DefaultSizeUnit,
		Availability: FormValue(DefaultAvailability),
	}
}

// MissingFieldsMessage is what the form shows when required fields are empty.
const MissingFieldsMessage = "Please fill in all required fields (Title, Address, Price)"

// MissingFieldsError lists the required fields a draft left empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// ErrInvalidDraft wraps value errors found while building a record.
var ErrInvalidDraft = errors.New("invalid listing")

// Validate checks that title, address and price are present. Whitespace-only
// values count as missing. The returned error is a *MissingFieldsError.
func Validate(d Draft) error {
	var missing []string
	if d.Title.Trimmed() == "" {
		missing = append(missing, "title")
	}
	if d.Address.Trimmed() == "" {
		missing = append(missing, "address")
	}
	if d.Price.Trimmed() == "" {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// Build converts a validated draft into a record with a fresh id. Optional
// numeric fields that do not parse are left at zero.
func Build(d Draft, types models.TypeSet) (models.Property, error) {
	if err := Validate(d); err != nil {
		return models.Property{}, err
	}

	price, err := strconv.ParseInt(strings.ReplaceAll(d.Price.Trimmed(), ",", ""), 10, 64)
	if err != nil {
		return models.Property{}, fmt.Errorf("%w: price %q is not a number", ErrInvalidDraft, d.Price)
	}
	if price < 0 {
		return models.Property{}, fmt.Errorf("%w: price must not be negative", ErrInvalidDraft)
	}

	typeName := d.Type.Trimmed()
	if typeName == "" {
		typeName = string(DefaultType)
	}
	propertyType, err := types.Parse(typeName)
	if err != nil {
		return models.Property{}, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	availabilityName := d.Availability.Trimmed()
	if availabilityName == "" {
		availabilityName = string(DefaultAvailability)
	}
	availability, err := models.ParseAvailability(availabilityName)
	if err != nil {
		return models.Property{}, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	sizeUnit := d.SizeUnit.Trimmed()
	if sizeUnit == "" {
		sizeUnit = DefaultSizeUnit
	}

	p := models.Property{
		ID:           uuid.NewString(),
		Title:        d.Title.Trimmed(),
		Type:         propertyType,
		Availability: availability,
		Price:        price,
		Address:      d.Address.Trimmed(),
		Size:         parseFloat(d.Size.Trimmed()),
		SizeUnit:     sizeUnit,
		Rooms:        parseCount(d.Rooms.Trimmed()),
		Bathrooms:    parseCount(d.Bathrooms.Trimmed()),
		Description:  d.Description.Trimmed(),
		Features:     splitFeatures(string(d.Features)),
	}
	if year, err := strconv.Atoi(d.YearBuilt.Trimmed()); err == nil {
		p.YearBuilt = &year
	}

	if err := p.Validate(types); err != nil {
		return models.Property{}, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}
	return p, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseCount(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func splitFeatures(s string) []string {
	features := []string{}
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	return features
}

// Sink receives accepted records and reports whether the record was stored.
// Implementations that persist records must serialise their writes so ids
// stay unique.
type Sink interface {
	Accept(ctx context.Context, p models.Property) (saved bool, err error)
}

// DiscardSink drops every record. Submissions never reach the catalog.
type DiscardSink struct{}

func (DiscardSink) Accept(context.Context, models.Property) (bool, error) { return false, nil }

// Result is what a successful submission reports back to the form.
type Result struct {
	Property models.Property `json:"property"`
	Saved    bool            `json:"saved"`
}

// Submitter runs the validation gate and forwards accepted records to a sink.
type Submitter struct {
	types  models.TypeSet
	sink   Sink
	logger *slog.Logger
}

// NewSubmitter wires a submitter. A nil sink discards.
func NewSubmitter(types models.TypeSet, sink Sink, logger *slog.Logger) *Submitter {
	if sink == nil {
		sink = DiscardSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{types: types, sink: sink, logger: logger}
}

// Submit validates and builds the draft, then hands it to the sink.
func (s *Submitter) Submit(ctx context.Context, d Draft) (Result, error) {
	p, err := Build(d, s.types)
	if err != nil {
		var missing *MissingFieldsError
		if errors.As(err, &missing) {
			s.logger.Info("listing rejected", "missing", missing.Fields)
		} else {
			s.logger.Warn("listing rejected", "error", err)
		}
		return Result{}, err
	}

	saved, err := s.sink.Accept(ctx, p)
	if err != nil {
		return Result{}, fmt.Errorf("failed to accept listing: %w", err)
	}

	s.logger.Info("listing accepted", "id", p.ID, "title", p.Title, "saved", saved)
	return Result{Property: p, Saved: saved}, nil
}
