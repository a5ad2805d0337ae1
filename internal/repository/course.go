package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"edemy/internal/models"
	"edemy/internal/qerrors"

	"cloud.google.com/go/firestore"
	"github.com/mitchellh/mapstructure"
)

func (fr *FirebaseRepository) initializeCoursesListener() error {
	handleDocs := func(docs []*firestore.DocumentSnapshot) error {
		newCourses := make(map[string]*models.Course)
		for _, doc := range docs {
			if !doc.Exists() {
				continue
			}

			c, err := decodeCourse(doc)
			if err != nil {
				// Skip malformed documents.
				log.Printf("Error destructuring course %v: %v\n", doc.Ref.ID, err)
				continue
			}
			newCourses[c.ID] = c
		}

		fr.coursesLock.Lock()
		defer fr.coursesLock.Unlock()
		fr.courses = newCourses

		return nil
	}

	ready := make(chan error, 1)
	go func() {
		err := fr.createCollectionInitializer(fr.firestoreClient.Collection(models.FirestoreCoursesCollection).Query, ready, handleDocs)
		if err != nil {
			log.Printf("%v collection listener error: %v\n", models.FirestoreCoursesCollection, err)
		}
	}()
	return <-ready
}

// ListCourses returns every course in the catalog, as of the latest snapshot.
func (fr *FirebaseRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	fr.coursesLock.RLock()
	defer fr.coursesLock.RUnlock()

	courses := make([]*models.Course, 0, len(fr.courses))
	for _, c := range fr.courses {
		courses = append(courses, copyCourse(c))
	}
	sortCourses(courses)
	return courses, nil
}

func (fr *FirebaseRepository) ListCoursesByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error) {
	all, err := fr.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	return filterByInstructor(all, instructorID), nil
}

// GetCourse reads the course document directly, bypassing the catalog snapshot.
func (fr *FirebaseRepository) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	if err := validateID(courseID); err != nil {
		return nil, qerrors.CourseNotFoundError
	}

	doc, err := fr.firestoreClient.Collection(models.FirestoreCoursesCollection).Doc(courseID).Get(ctx)
	if isNotFound(err) {
		return nil, qerrors.CourseNotFoundError
	}
	if err != nil {
		return nil, fmt.Errorf("error getting course %s: %w", courseID, err)
	}

	return decodeCourse(doc)
}

func (fr *FirebaseRepository) CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error) {
	if req.CreatedBy == nil {
		return nil, qerrors.NotAuthenticatedError
	}
	if err := validateCourseContent(req.Title, req.Description, req.Summary, req.Level, req.Price, req.Curriculum); err != nil {
		return nil, err
	}

	course := newCourse(req)
	data := courseToData(course)
	data["createdAt"] = firestore.ServerTimestamp
	data["updatedAt"] = firestore.ServerTimestamp

	ref, _, err := fr.firestoreClient.Collection(models.FirestoreCoursesCollection).Add(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("error creating course: %v\n", err)
	}
	course.ID = ref.ID
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt

	return course, nil
}

// EditCourse overwrites the instructor-editable fields. Aggregates are never touched.
func (fr *FirebaseRepository) EditCourse(ctx context.Context, req *models.EditCourseRequest) error {
	if err := validateCourseContent(req.Title, req.Description, req.Summary, req.Level, req.Price, req.Curriculum); err != nil {
		return err
	}
	if err := validateID(req.CourseID); err != nil {
		return qerrors.CourseNotFoundError
	}

	updates := []firestore.Update{
		{Path: "title", Value: req.Title},
		{Path: "description", Value: req.Description},
		{Path: "summary", Value: req.Summary},
		{Path: "category", Value: req.Category},
		{Path: "level", Value: string(req.Level)},
		{Path: "price", Value: req.Price},
		{Path: "curriculum", Value: curriculumToData(req.Curriculum)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if req.Language != "" {
		updates = append(updates, firestore.Update{Path: "language", Value: req.Language})
	}

	_, err := fr.firestoreClient.Collection(models.FirestoreCoursesCollection).Doc(req.CourseID).Update(ctx, updates)
	if isNotFound(err) {
		return qerrors.CourseNotFoundError
	}
	return err
}

// DeleteCourse deletes the course document. Enrollments in the course are left in place.
func (fr *FirebaseRepository) DeleteCourse(ctx context.Context, req *models.DeleteCourseRequest) error {
	if err := validateID(req.CourseID); err != nil {
		return qerrors.CourseNotFoundError
	}

	_, err := fr.firestoreClient.Collection(models.FirestoreCoursesCollection).Doc(req.CourseID).Delete(ctx, firestore.Exists)
	if isNotFound(err) {
		return qerrors.CourseNotFoundError
	}
	return err
}

// SeedCourses writes the courses under their own IDs in a single batch, replacing existing documents.
func (fr *FirebaseRepository) SeedCourses(ctx context.Context, courses []*models.Course) error {
	batch := fr.firestoreClient.Batch()
	for _, c := range courses {
		data := courseToData(c)
		data["rating"] = c.Rating
		data["reviewCount"] = c.ReviewCount
		data["enrolledStudents"] = c.EnrolledStudents
		data["createdAt"] = firestore.ServerTimestamp
		data["updatedAt"] = firestore.ServerTimestamp
		batch.Set(fr.firestoreClient.Collection(models.FirestoreCoursesCollection).Doc(c.ID), data)
	}

	_, err := batch.Commit(ctx)
	if err != nil {
		return fmt.Errorf("error seeding %d courses: %w", len(courses), err)
	}
	return nil
}

// Helpers

func decodeCourse(doc *firestore.DocumentSnapshot) (*models.Course, error) {
	var c models.Course
	err := mapstructure.Decode(doc.Data(), &c)
	if err != nil {
		return nil, fmt.Errorf("error destructuring course %s: %w", doc.Ref.ID, err)
	}
	c.ID = doc.Ref.ID
	return &c, nil
}

// courseToData maps a course to its document fields. Aggregates start at zero.
func courseToData(c *models.Course) map[string]interface{} {
	return map[string]interface{}{
		"title":            c.Title,
		"description":      c.Description,
		"summary":          c.Summary,
		"category":         c.Category,
		"level":            string(c.Level),
		"price":            c.Price,
		"rating":           0.0,
		"reviewCount":      0,
		"imageUrl":         c.ImageURL,
		"imageHint":        c.ImageHint,
		"language":         c.Language,
		"duration":         c.Duration,
		"curriculum":       curriculumToData(c.Curriculum),
		"enrolledStudents": 0,
		"instructorId":     c.InstructorID,
		"instructorName":   c.InstructorName,
		"instructorAvatar": c.InstructorAvatar,
	}
}

func curriculumToData(curriculum []models.Section) []interface{} {
	sections := make([]interface{}, 0, len(curriculum))
	for _, s := range curriculum {
		lessons := make([]interface{}, 0, len(s.Lessons))
		for _, l := range s.Lessons {
			lessons = append(lessons, map[string]interface{}{
				"title":    l.Title,
				"duration": l.Duration,
				"videoUrl": l.VideoURL,
			})
		}
		sections = append(sections, map[string]interface{}{
			"title":   s.Title,
			"lessons": lessons,
		})
	}
	return sections
}
