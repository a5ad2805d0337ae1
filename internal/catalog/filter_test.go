package catalog

import (
	"net/url"
	"testing"

	"edemy/internal/models"
	"edemy/internal/qerrors"
	"edemy/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(courses []*models.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.ID)
	}
	return out
}

func price(p float64) *float64 {
	return &p
}

func TestApplyPriceAndRating(t *testing.T) {
	courses := seed.Courses()

	filtered := Apply(courses, Filter{MaxPrice: price(50), MinRating: 4.0})

	assert.Equal(t, []string{"2", "4", "9", "11"}, ids(filtered))
	for _, c := range filtered {
		assert.LessOrEqual(t, c.Price, 50.0)
		assert.GreaterOrEqual(t, c.Rating, 4.0)
	}
}

func TestApplyPredicates(t *testing.T) {
	courses := seed.Courses()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no predicates", Filter{}, ids(courses)},
		{"all categories", Filter{Category: AllCategories}, ids(courses)},
		{"category", Filter{Category: "Design"}, []string{"2"}},
		{"search matches category case-insensitively", Filter{SearchText: "PROGRAMMING"}, []string{"1", "7"}},
		{"search matches title", Filter{SearchText: "guitar"}, []string{"6"}},
		{"search matches description", Filter{SearchText: "figma"}, []string{"2"}},
		{"levels", Filter{Levels: []models.Level{models.LevelBeginner, models.LevelAdvanced}}, []string{"2", "4", "6", "7", "9", "12"}},
		{"rating boundary is inclusive", Filter{MinRating: 4.5}, []string{"1", "4", "10"}},
		{"price boundary is inclusive", Filter{MaxPrice: price(29.99)}, []string{"4"}},
		{"unknown language", Filter{Languages: []string{"French"}}, []string{}},
		{"language", Filter{Languages: []string{"English"}}, ids(courses)},
		{"combined", Filter{Category: "Programming", Levels: []models.Level{models.LevelAdvanced}, MinRating: 4.0}, []string{"7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(courses, tt.filter)))
		})
	}
}

func TestApplyIsSubsetAndIdempotent(t *testing.T) {
	courses := seed.Courses()
	filters := []Filter{
		{},
		{SearchText: "learn"},
		{Category: "Programming"},
		{Levels: []models.Level{models.LevelAllLevels}},
		{MaxPrice: price(80), MinRating: 4.3},
		{Languages: []string{"English"}, MinRating: 4.4},
		{SearchText: "the", MaxPrice: price(100), Levels: []models.Level{models.LevelBeginner, models.LevelAllLevels}},
	}

	all := make(map[*models.Course]bool)
	for _, c := range courses {
		all[c] = true
	}

	for _, f := range filters {
		once := Apply(courses, f)
		for _, c := range once {
			assert.True(t, all[c], "filter %+v introduced course %s", f, c.ID)
		}
		assert.Equal(t, once, Apply(once, f))
	}
}

func TestApplyEmpty(t *testing.T) {
	assert.Empty(t, Apply(nil, Filter{MinRating: 4}))
	assert.Empty(t, Apply([]*models.Course{}, Filter{}))
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	courses := seed.Courses()
	before := ids(courses)

	_ = Apply(courses, Filter{Category: "Music"})

	assert.Equal(t, before, ids(courses))
}

func TestParseFilter(t *testing.T) {
	values := url.Values{
		"query":     {" design "},
		"category":  {"Design"},
		"level":     {"Beginner", "Intermediate"},
		"language":  {"English"},
		"maxPrice":  {"50"},
		"minRating": {"4"},
	}

	f, err := ParseFilter(values)
	require.NoError(t, err)

	assert.Equal(t, "design", f.SearchText)
	assert.Equal(t, "Design", f.Category)
	assert.Equal(t, []models.Level{models.LevelBeginner, models.LevelIntermediate}, f.Levels)
	assert.Equal(t, []string{"English"}, f.Languages)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 50.0, *f.MaxPrice)
	assert.Equal(t, 4.0, f.MinRating)
}

func TestParseFilterEmpty(t *testing.T) {
	f, err := ParseFilter(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, f.MaxPrice)
	assert.Equal(t, seed.Courses()[0].ID, Apply(seed.Courses(), f)[0].ID)
}

func TestParseFilterInvalid(t *testing.T) {
	for _, values := range []url.Values{
		{"maxPrice": {"cheap"}},
		{"minRating": {"five"}},
		{"minRating": {"6"}},
		{"minRating": {"-1"}},
		{"maxPrice": {"NaN"}},
		{"maxPrice": {"Inf"}},
		{"maxPrice": {"-inf"}},
		{"minRating": {"NaN"}},
		{"minRating": {"+Inf"}},
	} {
		_, err := ParseFilter(values)
		assert.ErrorIs(t, err, qerrors.InvalidFilterError)
		assert.Equal(t, qerrors.KindValidation, qerrors.KindOf(err))
	}
}

func TestGetFacets(t *testing.T) {
	facets := GetFacets(seed.Courses())

	assert.Equal(t, []string{
		"Programming", "Design", "Business", "Personal Development", "Photography", "Music",
		"Lifestyle", "Art", "Writing", "Health", "Finance",
	}, facets.Categories)
	assert.Equal(t, []models.Level{
		models.LevelAllLevels, models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced,
	}, facets.Levels)
	assert.Equal(t, []string{"English"}, facets.Languages)
	assert.Equal(t, RatingOptions, facets.Ratings)
	assert.Equal(t, DefaultMaxPrice, facets.MaxPrice)
}

func TestGetFacetsEmpty(t *testing.T) {
	facets := GetFacets(nil)
	assert.Empty(t, facets.Categories)
	assert.Empty(t, facets.Levels)
	assert.Empty(t, facets.Languages)
}
