package models

import (
	"testing"
)

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://www.youtube.com/watch?v=pQN-pnXPaVg", "https://www.youtube.com/embed/pQN-pnXPaVg", true},
		{"https://youtu.be/pQN-pnXPaVg", "https://www.youtube.com/embed/pQN-pnXPaVg", true},
		{"https://m.youtube.com/watch?v=abc&t=10", "https://www.youtube.com/embed/abc", true},
		{"https://vimeo.com/76979871", "https://player.vimeo.com/video/76979871", true},
		{"https://cdn.example.com/video.mp4", "https://cdn.example.com/video.mp4", true},
		{"https://www.youtube.com/watch", "", false},
		{"not a url", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Lesson{VideoURL: tt.url}.EmbedURL()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("EmbedURL(%q) = (%q, %v), want (%q, %v)", tt.url, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTotalLessons(t *testing.T) {
	c := &Course{Curriculum: []Section{
		{Title: "One", Lessons: []Lesson{{Title: "Intro"}, {Title: "Setup"}}},
		{Title: "Two", Lessons: []Lesson{{Title: "Intro"}, {Title: "Wrap up"}}},
	}}

	if got := c.TotalLessons(); got != 3 {
		t.Errorf("TotalLessons() = %d, want 3", got)
	}

	_, section, ok := c.FindLesson("Wrap up")
	if !ok || section != 1 {
		t.Errorf("FindLesson(%q) = (%d, %v), want (1, true)", "Wrap up", section, ok)
	}
	if _, _, ok := c.FindLesson("Missing"); ok {
		t.Errorf("FindLesson(%q) found a lesson", "Missing")
	}

	if !c.IsPreviewable(0) || c.IsPreviewable(1) {
		t.Errorf("only the first section should be previewable")
	}
}

func TestLevelValid(t *testing.T) {
	for _, l := range Levels {
		if !l.Valid() {
			t.Errorf("%q should be valid", l)
		}
	}
	if Level("Expert").Valid() {
		t.Errorf("%q should not be valid", "Expert")
	}
}

func TestEnrolledCourse(t *testing.T) {
	e := &EnrolledCourse{CourseID: "1", Progress: 100, WatchedLessons: []string{"Intro"}}
	if !e.IsComplete() {
		t.Errorf("progress 100 should be complete")
	}
	if !e.HasWatched("Intro") || e.HasWatched("Setup") {
		t.Errorf("HasWatched mismatch for %v", e.WatchedLessons)
	}
	if got := EnrollmentPath("u1", "1"); got != "users/u1/enrolledCourses/1" {
		t.Errorf("EnrollmentPath = %q", got)
	}
	if got := CoursePath("1"); got != "courses/1" {
		t.Errorf("CoursePath = %q", got)
	}
}
