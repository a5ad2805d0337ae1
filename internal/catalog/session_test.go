package catalog

import (
	"testing"

	"edemy/internal/models"
	"edemy/internal/seed"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(seed.Courses())

	assert.Len(t, s.Results(), 12)
	assert.Equal(t, 1, s.Evaluations())
	assert.Equal(t, DefaultMaxPrice, s.StagedMaxPrice())
	assert.Equal(t, AllCategories, s.Filter().Category)
}

func TestStagedMaxPriceDoesNotEvaluate(t *testing.T) {
	s := NewSession(seed.Courses())
	evaluations := s.Evaluations()

	// Dragging the slider only stages values.
	s.StageMaxPrice(120)
	s.StageMaxPrice(80)
	s.StageMaxPrice(50)

	assert.Equal(t, evaluations, s.Evaluations())
	assert.Len(t, s.Results(), 12)
	assert.Equal(t, DefaultMaxPrice, *s.Filter().MaxPrice)
	assert.Equal(t, 50.0, s.StagedMaxPrice())

	s.ApplyMaxPrice()

	assert.Equal(t, evaluations+1, s.Evaluations())
	assert.Equal(t, []string{"2", "4", "9", "11"}, ids(s.Results()))
}

func TestSettersEvaluate(t *testing.T) {
	s := NewSession(seed.Courses())

	s.SetCategory("Programming")
	assert.Equal(t, []string{"1", "7"}, ids(s.Results()))

	s.ToggleLevel(models.LevelAdvanced)
	assert.Equal(t, []string{"7"}, ids(s.Results()))

	s.ToggleLevel(models.LevelAdvanced)
	assert.Equal(t, []string{"1", "7"}, ids(s.Results()))

	s.SetSearchText("python")
	assert.Equal(t, []string{"7"}, ids(s.Results()))

	s.ToggleLanguage("French")
	assert.Empty(t, s.Results())

	s.ToggleLanguage("French")
	assert.Equal(t, []string{"7"}, ids(s.Results()))

	assert.Equal(t, 7, s.Evaluations())
}

func TestToggleRating(t *testing.T) {
	s := NewSession(seed.Courses())

	s.ToggleRating(4.5)
	assert.Equal(t, 4.5, s.Filter().MinRating)
	assert.Equal(t, []string{"1", "4", "10"}, ids(s.Results()))

	s.ToggleRating(4.0)
	assert.Equal(t, 4.0, s.Filter().MinRating)
	assert.Len(t, s.Results(), 12)

	// Selecting the active threshold again clears it.
	s.ToggleRating(4.0)
	assert.Equal(t, 0.0, s.Filter().MinRating)
	assert.Len(t, s.Results(), 12)
}

func TestReset(t *testing.T) {
	s := NewSession(seed.Courses())
	s.SetCategory("Music")
	s.ToggleLevel(models.LevelBeginner)
	s.ToggleRating(3.0)
	s.StageMaxPrice(10)
	s.ApplyMaxPrice()
	assert.Empty(t, s.Results())

	s.Reset()

	f := s.Filter()
	assert.Equal(t, AllCategories, f.Category)
	assert.Empty(t, f.Levels)
	assert.Equal(t, 0.0, f.MinRating)
	assert.Equal(t, DefaultMaxPrice, *f.MaxPrice)
	assert.Equal(t, DefaultMaxPrice, s.StagedMaxPrice())
	assert.Len(t, s.Results(), 12)
}

func TestFilterReturnsCopy(t *testing.T) {
	s := NewSession(seed.Courses())
	s.ToggleLevel(models.LevelBeginner)

	f := s.Filter()
	f.Levels[0] = models.LevelAdvanced
	*f.MaxPrice = 1

	assert.Equal(t, []models.Level{models.LevelBeginner}, s.Filter().Levels)
	assert.Equal(t, DefaultMaxPrice, *s.Filter().MaxPrice)
}

func TestSetCourses(t *testing.T) {
	s := NewSession(nil)
	assert.Empty(t, s.Results())

	s.SetCourses(seed.Courses())
	assert.Len(t, s.Results(), 12)
}
