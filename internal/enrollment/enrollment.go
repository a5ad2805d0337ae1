package enrollment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edemy/internal/diagnostics"
	"edemy/internal/models"
	"edemy/internal/qerrors"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

const (
	OpCheckout     = "checkout"
	OpWatchLesson  = "watchLesson"
	OpSubmitRating = "submitRating"
)

// Service keeps course aggregates (enrolledStudents, rating, reviewCount) consistent with students'
// enrollment records. Every mutation is a single batch or transaction against the Store.
type Service struct {
	store   Store
	emitter diagnostics.Emitter
	now     func() time.Time
}

// NewService creates a Service. A nil emitter discards diagnostics.
func NewService(store Store, emitter diagnostics.Emitter) *Service {
	if emitter == nil {
		emitter = diagnostics.Discard{}
	}
	return &Service{
		store:   store,
		emitter: emitter,
		now:     time.Now,
	}
}

// Checkout enrolls the student in every course in courseIDs they do not already own. Courses they own are
// reported in AlreadyEnrolled and left untouched. If there is nothing to enroll in, no writes are made.
//
// Every course to enroll in must exist; otherwise nothing is written. The enrollment records are created
// with a must-not-exist precondition, so two concurrent checkouts of the same course cannot both commit.
func (s *Service) Checkout(ctx context.Context, student *models.User, courseIDs []string) (*models.CheckoutResult, error) {
	if student == nil || student.ID == "" {
		return nil, qerrors.NotAuthenticatedError
	}

	existing, err := s.store.ListEnrollments(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments for %s: %w", student.ID, err)
	}
	enrolled := make(map[string]bool)
	for _, e := range existing {
		enrolled[e.CourseID] = true
	}

	alreadyEnrolled, toEnroll := Partition(courseIDs, enrolled)
	result := &models.CheckoutResult{
		Enrolled:        toEnroll,
		AlreadyEnrolled: alreadyEnrolled,
	}
	if len(toEnroll) == 0 {
		return result, nil
	}

	for _, courseID := range toEnroll {
		if _, err := s.store.GetCourse(ctx, courseID); err != nil {
			return nil, fmt.Errorf("error getting course %s: %w", courseID, err)
		}
	}

	now := s.now()
	p := newPlan(s.store.NewBatch())
	for _, courseID := range toEnroll {
		p.incrementEnrolledStudents(courseID)
		p.createEnrollment(student.ID, &models.EnrolledCourse{
			CourseID:       courseID,
			EnrolledAt:     now,
			Progress:       0,
			Completed:      false,
			WatchedLessons: []string{},
		})
	}

	if err := p.commit(ctx, OpCheckout, student.ID); err != nil {
		return nil, s.report(ctx, err)
	}

	glog.Infof("enrolled user %s in %v (already enrolled in %v)\n", student.ID, toEnroll, alreadyEnrolled)
	return result, nil
}

// WatchLesson marks a lesson as watched and recomputes progress. The enrollment is read and written in
// one transaction, so concurrent watches by the same student all count. Watching a lesson that was already
// watched makes no writes unless the stored progress is behind the watched lessons. The returned record
// reflects the state after the call.
func (s *Service) WatchLesson(ctx context.Context, userID string, courseID string, lessonTitle string) (*models.EnrolledCourse, error) {
	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if _, _, ok := course.FindLesson(lessonTitle); !ok {
		return nil, qerrors.LessonNotFoundError
	}

	var attempted *models.EnrolledCourse
	updated, err := s.store.UpdateWatchProgress(ctx, userID, courseID, func(current *models.EnrolledCourse) *models.EnrolledCourse {
		attempted = nextWatchState(course, current, lessonTitle)
		return attempted
	})
	if errors.Is(err, qerrors.EnrollmentNotFoundError) {
		return nil, err
	}
	if err != nil {
		path := models.EnrollmentPath(userID, courseID)
		cwe := &qerrors.ConsistencyWriteError{
			Op:      OpWatchLesson,
			UserID:  userID,
			Paths:   []string{path},
			Payload: map[string]interface{}{},
			Err:     err,
		}
		if attempted != nil {
			cwe.Payload[path] = map[string]interface{}{
				"watchedLessons": attempted.WatchedLessons,
				"progress":       attempted.Progress,
				"completed":      attempted.Completed,
			}
		}
		return nil, s.report(ctx, cwe)
	}

	return updated, nil
}

// nextWatchState returns the record after watching lessonTitle, or nil if current needs no write.
func nextWatchState(course *models.Course, current *models.EnrolledCourse, lessonTitle string) *models.EnrolledCourse {
	watched := current.WatchedLessons
	if !current.HasWatched(lessonTitle) {
		watched = append(append(make([]string, 0, len(watched)+1), watched...), lessonTitle)
	}

	progress := ComputeProgress(countWatched(course, watched), course.TotalLessons())
	// Progress never goes backwards, even if lessons were added to the course since the last watch.
	if progress < current.Progress {
		progress = current.Progress
	}

	if len(watched) == len(current.WatchedLessons) && progress == current.Progress && current.Completed == (progress == 100) {
		return nil
	}

	updated := *current
	updated.WatchedLessons = watched
	updated.Progress = progress
	updated.Completed = progress == 100
	return &updated
}

// SubmitRating folds the student's rating into the course's running mean and records it on their
// enrollment, in one batch. The course must be complete and not yet rated by this student.
//
// The course's rating and reviewCount are read and then overwritten, so two students rating the same
// course at the same time can lose one of the ratings.
func (s *Service) SubmitRating(ctx context.Context, userID string, courseID string, value int) (*models.Course, error) {
	if err := ValidateRating(value); err != nil {
		return nil, err
	}

	enrollment, err := s.store.GetEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrollment.IsComplete() {
		return nil, qerrors.CourseNotCompletedError
	}
	if enrollment.Rated != nil {
		return nil, qerrors.AlreadyRatedError
	}

	course, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	rating, reviewCount := RunningMean(course.Rating, course.ReviewCount, value)

	p := newPlan(s.store.NewBatch())
	p.updateCourseRating(courseID, rating, reviewCount)
	p.setEnrollmentRated(userID, courseID, value)
	if err := p.commit(ctx, OpSubmitRating, userID); err != nil {
		return nil, s.report(ctx, err)
	}

	updated := *course
	updated.Rating = rating
	updated.ReviewCount = reviewCount
	return &updated, nil
}

// ListEnrollments returns the student's enrollments joined with their courses. Enrollments whose course
// no longer exists are dropped.
func (s *Service) ListEnrollments(ctx context.Context, userID string) ([]*models.EnrollmentDetails, error) {
	enrollments, err := s.store.ListEnrollments(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]*models.EnrollmentDetails, len(enrollments))
	wg, wgCtx := errgroup.WithContext(ctx)
	for i, e := range enrollments {
		i, e := i, e
		wg.Go(func() error {
			course, err := s.store.GetCourse(wgCtx, e.CourseID)
			if errors.Is(err, qerrors.CourseNotFoundError) {
				glog.Warningf("user %s is enrolled in missing course %s\n", userID, e.CourseID)
				return nil
			}
			if err != nil {
				return err
			}
			details[i] = &models.EnrollmentDetails{
				EnrolledCourse:    e,
				Course:            course,
				CertificateEarned: e.IsComplete(),
				CanRate:           e.IsComplete() && e.Rated == nil,
			}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}

	found := make([]*models.EnrollmentDetails, 0, len(details))
	for _, d := range details {
		if d != nil {
			found = append(found, d)
		}
	}
	return found, nil
}

// report sends a failed commit to the diagnostics channel and returns it.
func (s *Service) report(ctx context.Context, err error) error {
	var cwe *qerrors.ConsistencyWriteError
	if errors.As(err, &cwe) {
		s.emitter.Emit(ctx, cwe)
	}
	return err
}

// countWatched counts the course's distinct lessons that appear in watched.
func countWatched(course *models.Course, watched []string) int {
	set := make(map[string]bool, len(watched))
	for _, t := range watched {
		set[t] = true
	}

	n := 0
	for _, t := range course.LessonTitles() {
		if set[t] {
			n++
		}
	}
	return n
}
