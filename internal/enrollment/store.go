package enrollment

import (
	"context"

	"edemy/internal/models"
)

// Store is the document store the engine reads from and commits batches to.
//
// GetCourse returns qerrors.CourseNotFoundError for a missing course and GetEnrollment returns
// qerrors.EnrollmentNotFoundError for a missing enrollment.
type Store interface {
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	GetEnrollment(ctx context.Context, userID string, courseID string) (*models.EnrolledCourse, error)
	ListEnrollments(ctx context.Context, userID string) ([]*models.EnrolledCourse, error)
	// UpdateWatchProgress reads the enrollment and writes back the watchedLessons, progress and completed
	// of the record fn returns, in one transaction. fn may run more than once and must not have side
	// effects. If fn returns nil nothing is written and the current record is returned.
	UpdateWatchProgress(ctx context.Context, userID string, courseID string, fn func(current *models.EnrolledCourse) *models.EnrolledCourse) (*models.EnrolledCourse, error)
	NewBatch() Batch
}

// Batch accumulates writes that are applied all together by Commit, or not at all.
type Batch interface {
	// IncrementEnrolledStudents atomically adds one to the course's enrolledStudents. The current value is
	// never read.
	IncrementEnrolledStudents(courseID string)
	// CreateEnrollment creates the enrollment record. The commit fails if the record already exists.
	CreateEnrollment(userID string, e *models.EnrolledCourse)
	// UpdateCourseRating overwrites the course's rating and reviewCount together.
	UpdateCourseRating(courseID string, rating float64, reviewCount int)
	// SetEnrollmentRated records the student's rating on their enrollment.
	SetEnrollmentRated(userID string, courseID string, rating int)
	Commit(ctx context.Context) error
}
