package handlers

import (
	"errors"
	"log/slog"
	"manzily/internal/catalog"
	"manzily/internal/format"
	"manzily/internal/listing"
	"manzily/internal/models"
	"manzily/internal/search"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SubmittedMessage is shown after a listing passes validation.
const SubmittedMessage = "Property listing has been submitted! In a real app, this would be saved to a database."

// PropertyHandler serves the listing catalog to the app screens
type PropertyHandler struct {
	catalog   *catalog.Catalog
	submitter *listing.Submitter
	logger    *slog.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(cat *catalog.Catalog, submitter *listing.Submitter, logger *slog.Logger) *PropertyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PropertyHandler{
		catalog:   cat,
		submitter: submitter,
		logger:    logger,
	}
}

// PropertyView is a record plus its display strings
type PropertyView struct {
	models.Property
	Display format.Display `json:"display"`
}

func toViews(properties []models.Property) []PropertyView {
	views := make([]PropertyView, len(properties))
	for i, p := range properties {
		views[i] = PropertyView{Property: p, Display: format.For(p)}
	}
	return views
}

// ListProperties returns the whole catalog in seed order (home feed)
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	properties := h.catalog.All()
	c.JSON(http.StatusOK, gin.H{
		"properties": toViews(properties),
		"count":      len(properties),
	})
}

// GetProperty returns one record (detail view)
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id := c.Param("id")
	property, err := h.catalog.ByID(id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property": PropertyView{Property: property, Display: format.For(property)},
	})
}

// FilterProperties runs the filter form against the catalog
func (h *PropertyHandler) FilterProperties(c *gin.Context) {
	raw := search.RawCriteria{
		SearchText:   c.Query("q"),
		Availability: c.Query("availability"),
		PropertyType: c.Query("type"),
		MinPrice:     c.Query("min_price"),
		MaxPrice:     c.Query("max_price"),
		MinRooms:     c.Query("min_rooms"),
		MaxRooms:     c.Query("max_rooms"),
		SearchType:   c.Query("search_type"),
	}
	if raw.SearchText == "" {
		raw.SearchText = c.Query("search")
	}

	criteria, ignored, err := search.ParseCriteria(raw, h.catalog.Types())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(ignored) > 0 {
		h.logger.Debug("ignored unparseable filter bounds", "fields", ignored)
	}

	results := h.catalog.All()
	if !criteria.IsEmpty() {
		results = search.Apply(results, criteria)
	}

	response := gin.H{
		"count":      len(results),
		"criteria":   criteria,
		"properties": toViews(results),
	}
	if len(ignored) > 0 {
		response["ignored"] = ignored
	}
	c.JSON(http.StatusOK, response)
}

// GetFilterOptions returns facet counts and ranges for the filter form
func (h *PropertyHandler) GetFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, search.Options(h.catalog.All(), h.catalog.Types()))
}

// CreateProperty runs a submitted draft through the validation gate
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	draft := listing.NewDraft()
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.submitter.Submit(c.Request.Context(), draft)
	if err != nil {
		var missing *listing.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":          listing.MissingFieldsMessage,
				"missing_fields": missing.Fields,
			})
		case errors.Is(err, listing.ErrInvalidDraft):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":  SubmittedMessage,
		"property": result.Property,
		"saved":    result.Saved,
	})
}

// GetStats returns catalog statistics
func (h *PropertyHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.GetStats())
}
