package repository

import (
	"context"
	"fmt"

	"edemy/internal/enrollment"
	"edemy/internal/models"
	"edemy/internal/qerrors"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"
)

func (fr *FirebaseRepository) enrollmentsCollection(userID string) *firestore.CollectionRef {
	return fr.firestoreClient.Collection(models.FirestoreUsersCollection).Doc(userID).Collection(models.FirestoreEnrolledCoursesCollection)
}

func (fr *FirebaseRepository) GetEnrollment(ctx context.Context, userID string, courseID string) (*models.EnrolledCourse, error) {
	if validateID(userID) != nil || validateID(courseID) != nil {
		return nil, qerrors.EnrollmentNotFoundError
	}

	doc, err := fr.enrollmentsCollection(userID).Doc(courseID).Get(ctx)
	if isNotFound(err) {
		return nil, qerrors.EnrollmentNotFoundError
	}
	if err != nil {
		return nil, fmt.Errorf("error getting enrollment %s: %w", models.EnrollmentPath(userID, courseID), err)
	}

	return decodeEnrollment(doc)
}

func (fr *FirebaseRepository) ListEnrollments(ctx context.Context, userID string) ([]*models.EnrolledCourse, error) {
	if err := validateID(userID); err != nil {
		return nil, err
	}

	docs, err := fr.enrollmentsCollection(userID).OrderBy("enrolledAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments for %s: %w", userID, err)
	}

	enrollments := make([]*models.EnrolledCourse, 0, len(docs))
	for _, doc := range docs {
		e, err := decodeEnrollment(doc)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, nil
}

func (fr *FirebaseRepository) UpdateWatchProgress(ctx context.Context, userID string, courseID string, fn func(current *models.EnrolledCourse) *models.EnrolledCourse) (*models.EnrolledCourse, error) {
	if validateID(userID) != nil || validateID(courseID) != nil {
		return nil, qerrors.EnrollmentNotFoundError
	}

	ref := fr.enrollmentsCollection(userID).Doc(courseID)
	var result *models.EnrolledCourse
	err := fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if isNotFound(err) {
			return qerrors.EnrollmentNotFoundError
		}
		if err != nil {
			return err
		}

		current, err := decodeEnrollment(doc)
		if err != nil {
			return err
		}

		updated := fn(current)
		if updated == nil {
			result = current
			return nil
		}

		result = updated
		return tx.Update(ref, []firestore.Update{
			{Path: "watchedLessons", Value: updated.WatchedLessons},
			{Path: "progress", Value: updated.Progress},
			{Path: "completed", Value: updated.Completed},
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (fr *FirebaseRepository) NewBatch() enrollment.Batch {
	return &firestoreBatch{
		client: fr.firestoreClient,
		wb:     fr.firestoreClient.Batch(),
	}
}

// firestoreBatch maps the engine's writes onto a Firestore WriteBatch. Counters use server-side transforms,
// so their current values are never read.
type firestoreBatch struct {
	client *firestore.Client
	wb     *firestore.WriteBatch
}

func (b *firestoreBatch) course(courseID string) *firestore.DocumentRef {
	return b.client.Collection(models.FirestoreCoursesCollection).Doc(courseID)
}

func (b *firestoreBatch) enrollment(userID string, courseID string) *firestore.DocumentRef {
	return b.client.Collection(models.FirestoreUsersCollection).Doc(userID).Collection(models.FirestoreEnrolledCoursesCollection).Doc(courseID)
}

func (b *firestoreBatch) IncrementEnrolledStudents(courseID string) {
	b.wb.Update(b.course(courseID), []firestore.Update{
		{Path: "enrolledStudents", Value: firestore.Increment(1)},
	})
}

func (b *firestoreBatch) CreateEnrollment(userID string, e *models.EnrolledCourse) {
	watched := e.WatchedLessons
	if watched == nil {
		watched = []string{}
	}
	b.wb.Create(b.enrollment(userID, e.CourseID), map[string]interface{}{
		"courseId":       e.CourseID,
		"enrolledAt":     e.EnrolledAt,
		"progress":       e.Progress,
		"completed":      e.Completed,
		"watchedLessons": watched,
	})
}

func (b *firestoreBatch) UpdateCourseRating(courseID string, rating float64, reviewCount int) {
	b.wb.Update(b.course(courseID), []firestore.Update{
		{Path: "rating", Value: rating},
		{Path: "reviewCount", Value: reviewCount},
	})
}

func (b *firestoreBatch) SetEnrollmentRated(userID string, courseID string, rating int) {
	b.wb.Update(b.enrollment(userID, courseID), []firestore.Update{
		{Path: "rated", Value: rating},
	})
}

func (b *firestoreBatch) Commit(ctx context.Context) error {
	_, err := b.wb.Commit(ctx)
	return err
}

// Helpers

func decodeEnrollment(doc *firestore.DocumentSnapshot) (*models.EnrolledCourse, error) {
	var e models.EnrolledCourse
	err := mapstructure.Decode(doc.Data(), &e)
	if err != nil {
		return nil, fmt.Errorf("error destructuring enrollment %s: %w", doc.Ref.Path, err)
	}
	if e.CourseID == "" {
		e.CourseID = doc.Ref.ID
	}
	if e.WatchedLessons == nil {
		e.WatchedLessons = []string{}
	}
	return &e, nil
}
