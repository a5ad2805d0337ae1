package catalog

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"edemy/internal/models"
	"edemy/internal/qerrors"
)

const (
	// AllCategories is the category value that disables the category predicate.
	AllCategories = "all"
	// DefaultMaxPrice is the price ceiling a fresh Session starts with.
	DefaultMaxPrice = 200.0
)

// RatingOptions are the minimum rating thresholds offered to students, highest first.
var RatingOptions = []float64{4.5, 4.0, 3.5, 3.0}

// Filter is a set of predicates over courses. The zero value matches every course.
type Filter struct {
	// SearchText is matched case-insensitively against title, description and category.
	SearchText string `json:"query,omitempty"`
	// Category must match exactly. Empty or AllCategories disables it.
	Category string `json:"category,omitempty"`
	// Levels is the set of accepted levels. Empty disables it.
	Levels []models.Level `json:"levels,omitempty"`
	// MaxPrice is an inclusive price ceiling. Nil disables it.
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	// MinRating is an inclusive rating threshold. Zero disables it.
	MinRating float64 `json:"minRating,omitempty"`
	// Languages is the set of accepted languages. Empty disables it.
	Languages []string `json:"languages,omitempty"`
}

// Matches reports whether the course satisfies every active predicate.
func (f Filter) Matches(c *models.Course) bool {
	if f.SearchText != "" {
		q := strings.ToLower(f.SearchText)
		if !strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) &&
			!strings.Contains(strings.ToLower(c.Category), q) {
			return false
		}
	}

	if f.Category != "" && f.Category != AllCategories && c.Category != f.Category {
		return false
	}

	if len(f.Levels) > 0 && !containsLevel(f.Levels, c.Level) {
		return false
	}

	if f.MaxPrice != nil && c.Price > *f.MaxPrice {
		return false
	}

	if f.MinRating != 0 && c.Rating < f.MinRating {
		return false
	}

	if len(f.Languages) > 0 && !containsString(f.Languages, c.Language) {
		return false
	}

	return true
}

// Apply returns the courses that satisfy every active predicate of the filter, in their original order.
// The input slice is never modified.
func Apply(courses []*models.Course, f Filter) []*models.Course {
	filtered := make([]*models.Course, 0, len(courses))
	for _, c := range courses {
		if c == nil {
			continue
		}
		if f.Matches(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// ParseFilter builds a Filter from query parameters: query, category, level (repeatable), maxPrice,
// minRating and language (repeatable).
func ParseFilter(values url.Values) (Filter, error) {
	f := Filter{
		SearchText: strings.TrimSpace(values.Get("query")),
		Category:   values.Get("category"),
	}

	for _, l := range values["level"] {
		if l == "" {
			continue
		}
		f.Levels = append(f.Levels, models.Level(l))
	}
	for _, l := range values["language"] {
		if l == "" {
			continue
		}
		f.Languages = append(f.Languages, l)
	}

	if v := values.Get("maxPrice"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(maxPrice) || math.IsInf(maxPrice, 0) {
			return Filter{}, fmt.Errorf("maxPrice %q: %w", v, qerrors.InvalidFilterError)
		}
		f.MaxPrice = &maxPrice
	}

	if v := values.Get("minRating"); v != "" {
		minRating, err := strconv.ParseFloat(v, 64)
		// NaN compares false against both bounds.
		if err != nil || math.IsNaN(minRating) || minRating < 0 || minRating > 5 {
			return Filter{}, fmt.Errorf("minRating %q: %w", v, qerrors.InvalidFilterError)
		}
		f.MinRating = minRating
	}

	return f, nil
}

// Facets are the distinct filterable values present in a catalog.
type Facets struct {
	Categories []string       `json:"categories"`
	Levels     []models.Level `json:"levels"`
	Languages  []string       `json:"languages"`
	Ratings    []float64      `json:"ratings"`
	MaxPrice   float64        `json:"maxPrice"`
}

// GetFacets collects the categories, levels and languages of the given courses in first-seen order.
func GetFacets(courses []*models.Course) *Facets {
	facets := &Facets{
		Categories: make([]string, 0),
		Levels:     make([]models.Level, 0),
		Languages:  make([]string, 0),
		Ratings:    RatingOptions,
		MaxPrice:   DefaultMaxPrice,
	}

	for _, c := range courses {
		if c == nil {
			continue
		}
		if c.Category != "" && !containsString(facets.Categories, c.Category) {
			facets.Categories = append(facets.Categories, c.Category)
		}
		if c.Level != "" && !containsLevel(facets.Levels, c.Level) {
			facets.Levels = append(facets.Levels, c.Level)
		}
		if c.Language != "" && !containsString(facets.Languages, c.Language) {
			facets.Languages = append(facets.Languages, c.Language)
		}
		if c.Price > facets.MaxPrice {
			facets.MaxPrice = c.Price
		}
	}

	return facets
}

// Helpers

func containsString(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}
	return false
}

func containsLevel(s []models.Level, l models.Level) bool {
	for _, v := range s {
		if v == l {
			return true
		}
	}
	return false
}
