package enrollment

import (
	"context"

	"edemy/internal/models"
	"edemy/internal/qerrors"
)

// plan wraps a Batch and remembers every document it touches, so a failed commit can be reported with
// the full set of paths and the data that was attempted.
type plan struct {
	batch   Batch
	paths   []string
	payload map[string]interface{}
}

func newPlan(b Batch) *plan {
	return &plan{
		batch:   b,
		paths:   make([]string, 0),
		payload: make(map[string]interface{}),
	}
}

func (p *plan) record(path string, fields map[string]interface{}) {
	existing, ok := p.payload[path].(map[string]interface{})
	if !ok {
		p.paths = append(p.paths, path)
		p.payload[path] = fields
		return
	}
	for k, v := range fields {
		existing[k] = v
	}
}

func (p *plan) incrementEnrolledStudents(courseID string) {
	p.batch.IncrementEnrolledStudents(courseID)
	p.record(models.CoursePath(courseID), map[string]interface{}{
		"enrolledStudents": "increment(1)",
	})
}

func (p *plan) createEnrollment(userID string, e *models.EnrolledCourse) {
	p.batch.CreateEnrollment(userID, e)
	p.record(models.EnrollmentPath(userID, e.CourseID), map[string]interface{}{
		"courseId":       e.CourseID,
		"enrolledAt":     e.EnrolledAt,
		"progress":       e.Progress,
		"completed":      e.Completed,
		"watchedLessons": e.WatchedLessons,
	})
}

func (p *plan) updateCourseRating(courseID string, rating float64, reviewCount int) {
	p.batch.UpdateCourseRating(courseID, rating, reviewCount)
	p.record(models.CoursePath(courseID), map[string]interface{}{
		"rating":      rating,
		"reviewCount": reviewCount,
	})
}

func (p *plan) setEnrollmentRated(userID string, courseID string, rating int) {
	p.batch.SetEnrollmentRated(userID, courseID, rating)
	p.record(models.EnrollmentPath(userID, courseID), map[string]interface{}{
		"rated": rating,
	})
}

// commit applies the batch. On failure nothing was written and the returned error is a
// *qerrors.ConsistencyWriteError describing the whole batch.
func (p *plan) commit(ctx context.Context, op string, userID string) error {
	err := p.batch.Commit(ctx)
	if err == nil {
		return nil
	}
	return &qerrors.ConsistencyWriteError{
		Op:      op,
		UserID:  userID,
		Paths:   p.paths,
		Payload: p.payload,
		Err:     err,
	}
}
