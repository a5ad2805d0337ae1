package repository

import (
	"fmt"
	"net/url"
	"strings"

	"edemy/internal/models"
	"edemy/internal/qerrors"
)

const (
	minTitleLength        = 5
	minDescriptionLength  = 20
	minSummaryLength      = 10
	minSectionTitleLength = 3
	minLessonTitleLength  = 3
)

// validateCourseContent checks the instructor-editable fields of a course.
func validateCourseContent(title, description, summary string, level models.Level, price float64, curriculum []models.Section) error {
	if len(strings.TrimSpace(title)) < minTitleLength {
		return fmt.Errorf("title must be at least %d characters: %w", minTitleLength, qerrors.InvalidCourseError)
	}
	if len(strings.TrimSpace(description)) < minDescriptionLength {
		return fmt.Errorf("description must be at least %d characters: %w", minDescriptionLength, qerrors.InvalidCourseError)
	}
	if len(strings.TrimSpace(summary)) < minSummaryLength {
		return fmt.Errorf("summary must be at least %d characters: %w", minSummaryLength, qerrors.InvalidCourseError)
	}
	if !level.Valid() {
		return qerrors.InvalidLevelError
	}
	if price < 0 {
		return qerrors.InvalidPriceError
	}
	return validateCurriculum(curriculum)
}

func validateCurriculum(curriculum []models.Section) error {
	if len(curriculum) == 0 {
		return qerrors.EmptyCurriculumError
	}
	for i, section := range curriculum {
		if len(strings.TrimSpace(section.Title)) < minSectionTitleLength {
			return fmt.Errorf("section %d title must be at least %d characters: %w", i+1, minSectionTitleLength, qerrors.InvalidCourseError)
		}
		if len(section.Lessons) == 0 {
			return fmt.Errorf("section %d has no lessons: %w", i+1, qerrors.EmptyCurriculumError)
		}
		for j, lesson := range section.Lessons {
			if len(strings.TrimSpace(lesson.Title)) < minLessonTitleLength {
				return fmt.Errorf("lesson %d.%d title must be at least %d characters: %w", i+1, j+1, minLessonTitleLength, qerrors.InvalidCourseError)
			}
			if !isYouTubeURL(lesson.VideoURL) {
				return fmt.Errorf("lesson %d.%d must have a YouTube video URL: %w", i+1, j+1, qerrors.InvalidCourseError)
			}
		}
	}
	return nil
}

func isYouTubeURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		return u.Query().Get("v") != ""
	case "youtu.be":
		return strings.Trim(u.Path, "/") != ""
	}
	return false
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("id must be a non-empty string")
	}
	if len(id) > 128 {
		return fmt.Errorf("id string must not be longer than 128 characters")
	}
	if strings.Contains(id, "/") {
		return fmt.Errorf("id must not contain '/'")
	}
	return nil
}

func displayNameOrDefault(u *models.User) string {
	if u != nil && u.Profile != nil && u.DisplayName != "" {
		return u.DisplayName
	}
	return "Anonymous Instructor"
}

func photoURL(u *models.User) string {
	if u != nil && u.Profile != nil {
		return u.PhotoURL
	}
	return ""
}

// newCourse builds the course document for a validated create request. Aggregates always start at zero.
func newCourse(req *models.CreateCourseRequest) *models.Course {
	language := req.Language
	if language == "" {
		language = "English"
	}
	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = "https://picsum.photos/seed/placeholder/600/400"
	}

	return &models.Course{
		Title:            strings.TrimSpace(req.Title),
		Description:      strings.TrimSpace(req.Description),
		Summary:          strings.TrimSpace(req.Summary),
		Category:         req.Category,
		Level:            req.Level,
		Price:            req.Price,
		Rating:           0,
		ReviewCount:      0,
		ImageURL:         imageURL,
		ImageHint:        "course image",
		Language:         language,
		Duration:         req.Duration,
		Curriculum:       req.Curriculum,
		EnrolledStudents: 0,
		InstructorID:     req.CreatedBy.ID,
		InstructorName:   displayNameOrDefault(req.CreatedBy),
		InstructorAvatar: photoURL(req.CreatedBy),
	}
}
