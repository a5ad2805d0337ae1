package models

import (
	"net/url"
	"strings"
	"time"
)

var (
	FirestoreCoursesCollection = "courses"
)

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelAllLevels    Level = "All Levels"
)

// Levels lists every level a course may be published at, in display order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAllLevels}

func (l Level) Valid() bool {
	for _, v := range Levels {
		if v == l {
			return true
		}
	}
	return false
}

type Lesson struct {
	Title    string `json:"title" mapstructure:"title"`
	Duration string `json:"duration,omitempty" mapstructure:"duration"`
	VideoURL string `json:"videoUrl" mapstructure:"videoUrl"`
}

type Section struct {
	Title   string   `json:"title" mapstructure:"title"`
	Lessons []Lesson `json:"lessons" mapstructure:"lessons"`
}

// Course is a catalog entry. Rating is the mean of exactly ReviewCount individual ratings, and the two
// fields are only ever written together.
//
// InstructorName and InstructorAvatar are a snapshot of the instructor's profile taken when the course was
// created. They are not kept in sync with the profile.
type Course struct {
	ID               string    `json:"id" mapstructure:"id"`
	Title            string    `json:"title" mapstructure:"title"`
	Description      string    `json:"description" mapstructure:"description"`
	Summary          string    `json:"summary" mapstructure:"summary"`
	Category         string    `json:"category" mapstructure:"category"`
	Level            Level     `json:"level" mapstructure:"level"`
	Price            float64   `json:"price" mapstructure:"price"`
	Rating           float64   `json:"rating" mapstructure:"rating"`
	ReviewCount      int       `json:"reviewCount" mapstructure:"reviewCount"`
	ImageURL         string    `json:"imageUrl" mapstructure:"imageUrl"`
	ImageHint        string    `json:"imageHint" mapstructure:"imageHint"`
	Language         string    `json:"language" mapstructure:"language"`
	Duration         string    `json:"duration" mapstructure:"duration"`
	Curriculum       []Section `json:"curriculum" mapstructure:"curriculum"`
	EnrolledStudents int       `json:"enrolledStudents" mapstructure:"enrolledStudents"`
	InstructorID     string    `json:"instructorId" mapstructure:"instructorId"`
	InstructorName   string    `json:"instructorName" mapstructure:"instructorName"`
	InstructorAvatar string    `json:"instructorAvatar" mapstructure:"instructorAvatar"`
	CreatedAt        time.Time `json:"createdAt" mapstructure:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" mapstructure:"updatedAt"`
}

// CoursePath returns the document path of the course with the given ID.
func CoursePath(courseID string) string {
	return FirestoreCoursesCollection + "/" + courseID
}

// TotalLessons returns the number of distinct lesson titles in the curriculum. Watched lessons are tracked
// by title, so two lessons sharing a title count once.
func (c *Course) TotalLessons() int {
	return len(c.LessonTitles())
}

// LessonTitles returns the distinct lesson titles in curriculum order.
func (c *Course) LessonTitles() []string {
	seen := make(map[string]bool)
	titles := make([]string, 0)
	for _, section := range c.Curriculum {
		for _, lesson := range section.Lessons {
			if seen[lesson.Title] {
				continue
			}
			seen[lesson.Title] = true
			titles = append(titles, lesson.Title)
		}
	}
	return titles
}

// FindLesson returns the lesson with the given title along with the index of its section.
func (c *Course) FindLesson(title string) (*Lesson, int, bool) {
	for i, section := range c.Curriculum {
		for j := range section.Lessons {
			if section.Lessons[j].Title == title {
				return &section.Lessons[j], i, true
			}
		}
	}
	return nil, -1, false
}

// IsPreviewable reports whether lessons in the given section can be played by a student who is not enrolled.
// Only the first section is open for preview.
func (c *Course) IsPreviewable(sectionIndex int) bool {
	return sectionIndex == 0
}

// EmbedURL converts a YouTube or Vimeo watch URL into its embeddable form. Other URLs are returned as is.
// Returns false if the URL cannot be parsed or names no video.
func (l Lesson) EmbedURL() (string, bool) {
	if l.VideoURL == "" {
		return "", false
	}
	u, err := url.Parse(l.VideoURL)
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "youtu.be":
		id := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")[0]
		if id == "" {
			return "", false
		}
		return "https://www.youtube.com/embed/" + id, true
	case strings.Contains(host, "youtube.com"):
		id := u.Query().Get("v")
		if id == "" {
			return "", false
		}
		return "https://www.youtube.com/embed/" + id, true
	case strings.Contains(host, "vimeo.com"):
		id := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")[0]
		if id == "" {
			return "", false
		}
		return "https://player.vimeo.com/video/" + id, true
	}

	return l.VideoURL, true
}

type GetCourseRequest struct {
	CourseID string `json:"courseID"`
}

// CreateCourseRequest is the parameter struct for the CreateCourse function.
type CreateCourseRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Summary     string    `json:"summary"`
	Category    string    `json:"category"`
	Level       Level     `json:"level"`
	Price       float64   `json:"price"`
	Language    string    `json:"language"`
	Duration    string    `json:"duration"`
	ImageURL    string    `json:"imageUrl"`
	Curriculum  []Section `json:"curriculum"`
	// Will be set from context
	CreatedBy *User `json:"-"`
}

// EditCourseRequest is the parameter struct for the EditCourse function. Aggregate fields (rating,
// reviewCount, enrolledStudents) cannot be edited.
type EditCourseRequest struct {
	CourseID    string    `json:"courseID,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Summary     string    `json:"summary"`
	Category    string    `json:"category"`
	Level       Level     `json:"level"`
	Price       float64   `json:"price"`
	Language    string    `json:"language"`
	Curriculum  []Section `json:"curriculum"`
}

type DeleteCourseRequest struct {
	CourseID string `json:"courseID"`
}

// GenerateDescriptionRequest is the parameter struct for AI-assisted course copy.
type GenerateDescriptionRequest struct {
	Topic    string `json:"topic"`
	Keywords string `json:"keywords"`
}

type GeneratedDescription struct {
	Description string `json:"description"`
	Summary     string `json:"summary"`
}
