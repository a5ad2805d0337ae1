package models

import "time"

const (
	FirestoreUsersCollection           = "users"
	FirestoreEnrolledCoursesCollection = "enrolledCourses"
)

// EnrolledCourse is a student's enrollment in a single course, keyed by course ID under the student's
// document. Progress and WatchedLessons only ever grow.
type EnrolledCourse struct {
	CourseID       string    `json:"courseId" mapstructure:"courseId"`
	EnrolledAt     time.Time `json:"enrolledAt" mapstructure:"enrolledAt"`
	Progress       int       `json:"progress" mapstructure:"progress"`
	Completed      bool      `json:"completed" mapstructure:"completed"`
	WatchedLessons []string  `json:"watchedLessons" mapstructure:"watchedLessons"`
	// Rated is nil until the student submits a rating.
	Rated *int `json:"rated,omitempty" mapstructure:"rated"`
}

// EnrollmentPath returns the document path of a student's enrollment in a course.
func EnrollmentPath(userID string, courseID string) string {
	return FirestoreUsersCollection + "/" + userID + "/" + FirestoreEnrolledCoursesCollection + "/" + courseID
}

// IsComplete reports whether every lesson has been watched. This is what unlocks rating and the certificate.
func (e *EnrolledCourse) IsComplete() bool {
	return e.Completed || e.Progress >= 100
}

// HasWatched reports whether the lesson with the given title has already been watched.
func (e *EnrolledCourse) HasWatched(lessonTitle string) bool {
	for _, t := range e.WatchedLessons {
		if t == lessonTitle {
			return true
		}
	}
	return false
}

// EnrollmentDetails is an enrollment joined with the course it refers to, as shown on the student dashboard.
type EnrollmentDetails struct {
	*EnrolledCourse
	Course *Course `json:"details"`
	// CertificateEarned mirrors IsComplete for clients.
	CertificateEarned bool `json:"certificateEarned"`
	// CanRate is true once the course is complete and has not been rated yet.
	CanRate bool `json:"canRate"`
}

// CheckoutResult reports what a checkout did with each course in the cart.
type CheckoutResult struct {
	Enrolled        []string `json:"enrolled"`
	AlreadyEnrolled []string `json:"alreadyEnrolled"`
}

// WatchLessonRequest is the parameter struct for the WatchLesson function.
type WatchLessonRequest struct {
	LessonTitle string `json:"lessonTitle"`
}

// SubmitRatingRequest is the parameter struct for the SubmitRating function.
type SubmitRatingRequest struct {
	Rating int `json:"rating"`
}
