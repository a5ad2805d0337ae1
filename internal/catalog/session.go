package catalog

import (
	"edemy/internal/models"
)

// Session is one student's browsing state over a catalog. Every setter re-evaluates the results
// synchronously, except StageMaxPrice: a staged price ceiling has no effect until ApplyMaxPrice is called.
//
// A Session is not safe for concurrent use.
type Session struct {
	courses []*models.Course

	filter         Filter
	stagedMaxPrice float64

	results     []*models.Course
	evaluations int
}

// NewSession returns a Session over the given courses with the default filter applied.
func NewSession(courses []*models.Course) *Session {
	s := &Session{courses: courses}
	s.Reset()
	return s
}

// Reset restores the default filter: every category, no levels or languages, no rating threshold, and the
// default price ceiling both staged and applied.
func (s *Session) Reset() {
	maxPrice := DefaultMaxPrice
	s.filter = Filter{
		Category: AllCategories,
		MaxPrice: &maxPrice,
	}
	s.stagedMaxPrice = maxPrice
	s.evaluate()
}

// SetCourses replaces the catalog the session filters over.
func (s *Session) SetCourses(courses []*models.Course) {
	s.courses = courses
	s.evaluate()
}

func (s *Session) SetSearchText(text string) {
	s.filter.SearchText = text
	s.evaluate()
}

func (s *Session) SetCategory(category string) {
	s.filter.Category = category
	s.evaluate()
}

// ToggleLevel adds the level to the accepted set, or removes it if it is already there.
func (s *Session) ToggleLevel(level models.Level) {
	for i, l := range s.filter.Levels {
		if l == level {
			s.filter.Levels = append(s.filter.Levels[:i:i], s.filter.Levels[i+1:]...)
			s.evaluate()
			return
		}
	}
	s.filter.Levels = append(s.filter.Levels, level)
	s.evaluate()
}

// ToggleLanguage adds the language to the accepted set, or removes it if it is already there.
func (s *Session) ToggleLanguage(language string) {
	for i, l := range s.filter.Languages {
		if l == language {
			s.filter.Languages = append(s.filter.Languages[:i:i], s.filter.Languages[i+1:]...)
			s.evaluate()
			return
		}
	}
	s.filter.Languages = append(s.filter.Languages, language)
	s.evaluate()
}

// ToggleRating sets the minimum rating. Selecting the threshold that is already active clears it.
func (s *Session) ToggleRating(rating float64) {
	if s.filter.MinRating == rating {
		s.filter.MinRating = 0
	} else {
		s.filter.MinRating = rating
	}
	s.evaluate()
}

// StageMaxPrice records a price ceiling without applying it. Results are left untouched.
func (s *Session) StageMaxPrice(price float64) {
	s.stagedMaxPrice = price
}

// ApplyMaxPrice commits the staged price ceiling into the active filter.
func (s *Session) ApplyMaxPrice() {
	maxPrice := s.stagedMaxPrice
	s.filter.MaxPrice = &maxPrice
	s.evaluate()
}

func (s *Session) StagedMaxPrice() float64 {
	return s.stagedMaxPrice
}

// Filter returns a copy of the active filter.
func (s *Session) Filter() Filter {
	f := s.filter
	f.Levels = append([]models.Level(nil), s.filter.Levels...)
	f.Languages = append([]string(nil), s.filter.Languages...)
	if s.filter.MaxPrice != nil {
		maxPrice := *s.filter.MaxPrice
		f.MaxPrice = &maxPrice
	}
	return f
}

// Results returns the courses matched by the active filter as of the last evaluation.
func (s *Session) Results() []*models.Course {
	return s.results
}

// Evaluations returns how many times the filter has been evaluated over the catalog.
func (s *Session) Evaluations() int {
	return s.evaluations
}

func (s *Session) evaluate() {
	s.results = Apply(s.courses, s.filter)
	s.evaluations++
}
