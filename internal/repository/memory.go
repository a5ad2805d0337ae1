package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"edemy/internal/enrollment"
	"edemy/internal/models"
	"edemy/internal/qerrors"

	"github.com/google/uuid"
)

// MemoryRepository is an in-process stand-in for Firestore and Firebase Auth, used for local development
// and tests. Batches are applied atomically under a single lock and follow Firestore's semantics: updates
// of missing documents and creates of existing documents fail the whole batch.
//
// Session cookies are simply user IDs.
type MemoryRepository struct {
	lock sync.RWMutex

	courses     map[string]*models.Course
	enrollments map[string]map[string]*models.EnrolledCourse
	users       map[string]*models.User
	admins      map[string]bool

	// commitErr, if set, makes every commit fail with it.
	commitErr error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		courses:     make(map[string]*models.Course),
		enrollments: make(map[string]map[string]*models.EnrolledCourse),
		users:       make(map[string]*models.User),
		admins:      make(map[string]bool),
	}
}

// FailCommitsWith makes every following commit fail with err. Pass nil to restore normal behaviour.
func (mr *MemoryRepository) FailCommitsWith(err error) {
	mr.lock.Lock()
	defer mr.lock.Unlock()
	mr.commitErr = err
}

// AddUser registers a user. The returned session cookie value authenticates as them.
func (mr *MemoryRepository) AddUser(u *models.User) string {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	if u.Profile == nil {
		u.Profile = &models.Profile{}
	}
	if u.CreationTimestamp == 0 {
		u.CreationTimestamp = time.Now().UnixMilli()
	}
	mr.users[u.ID] = u
	return u.ID
}

// PutCourse stores a course as is, aggregates included.
func (mr *MemoryRepository) PutCourse(c *models.Course) {
	mr.lock.Lock()
	defer mr.lock.Unlock()
	mr.courses[c.ID] = copyCourse(c)
}

// Courses

func (mr *MemoryRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	courses := make([]*models.Course, 0, len(mr.courses))
	for _, c := range mr.courses {
		courses = append(courses, copyCourse(c))
	}
	sortCourses(courses)
	return courses, nil
}

func (mr *MemoryRepository) ListCoursesByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error) {
	all, err := mr.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	return filterByInstructor(all, instructorID), nil
}

func (mr *MemoryRepository) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	c, ok := mr.courses[courseID]
	if !ok {
		return nil, qerrors.CourseNotFoundError
	}
	return copyCourse(c), nil
}

func (mr *MemoryRepository) CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error) {
	if req.CreatedBy == nil {
		return nil, qerrors.NotAuthenticatedError
	}
	if err := validateCourseContent(req.Title, req.Description, req.Summary, req.Level, req.Price, req.Curriculum); err != nil {
		return nil, err
	}

	course := newCourse(req)
	course.ID = uuid.NewString()
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt

	mr.lock.Lock()
	defer mr.lock.Unlock()
	mr.courses[course.ID] = copyCourse(course)

	return course, nil
}

func (mr *MemoryRepository) EditCourse(ctx context.Context, req *models.EditCourseRequest) error {
	if err := validateCourseContent(req.Title, req.Description, req.Summary, req.Level, req.Price, req.Curriculum); err != nil {
		return err
	}

	mr.lock.Lock()
	defer mr.lock.Unlock()

	c, ok := mr.courses[req.CourseID]
	if !ok {
		return qerrors.CourseNotFoundError
	}
	c.Title = req.Title
	c.Description = req.Description
	c.Summary = req.Summary
	c.Category = req.Category
	c.Level = req.Level
	c.Price = req.Price
	if req.Language != "" {
		c.Language = req.Language
	}
	c.Curriculum = copyCurriculum(req.Curriculum)
	c.UpdatedAt = time.Now()
	return nil
}

func (mr *MemoryRepository) DeleteCourse(ctx context.Context, req *models.DeleteCourseRequest) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	if _, ok := mr.courses[req.CourseID]; !ok {
		return qerrors.CourseNotFoundError
	}
	delete(mr.courses, req.CourseID)
	return nil
}

// SeedCourses writes the courses under their own IDs, replacing any existing course with the same ID.
func (mr *MemoryRepository) SeedCourses(ctx context.Context, courses []*models.Course) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	now := time.Now()
	for _, c := range courses {
		cc := copyCourse(c)
		cc.CreatedAt = now
		cc.UpdatedAt = now
		mr.courses[c.ID] = cc
	}
	return nil
}

// Enrollments

func (mr *MemoryRepository) GetEnrollment(ctx context.Context, userID string, courseID string) (*models.EnrolledCourse, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	e, ok := mr.enrollments[userID][courseID]
	if !ok {
		return nil, qerrors.EnrollmentNotFoundError
	}
	return copyEnrollment(e), nil
}

func (mr *MemoryRepository) ListEnrollments(ctx context.Context, userID string) ([]*models.EnrolledCourse, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	enrollments := make([]*models.EnrolledCourse, 0, len(mr.enrollments[userID]))
	for _, e := range mr.enrollments[userID] {
		enrollments = append(enrollments, copyEnrollment(e))
	}
	sort.Slice(enrollments, func(i, j int) bool {
		if enrollments[i].EnrolledAt.Equal(enrollments[j].EnrolledAt) {
			return enrollments[i].CourseID < enrollments[j].CourseID
		}
		return enrollments[i].EnrolledAt.Before(enrollments[j].EnrolledAt)
	})
	return enrollments, nil
}

func (mr *MemoryRepository) UpdateWatchProgress(ctx context.Context, userID string, courseID string, fn func(current *models.EnrolledCourse) *models.EnrolledCourse) (*models.EnrolledCourse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mr.lock.Lock()
	defer mr.lock.Unlock()

	e, ok := mr.enrollments[userID][courseID]
	if !ok {
		return nil, qerrors.EnrollmentNotFoundError
	}

	updated := fn(copyEnrollment(e))
	if updated == nil {
		return copyEnrollment(e), nil
	}
	if mr.commitErr != nil {
		return nil, mr.commitErr
	}

	e.WatchedLessons = append([]string{}, updated.WatchedLessons...)
	e.Progress = updated.Progress
	e.Completed = updated.Completed
	return copyEnrollment(e), nil
}

func (mr *MemoryRepository) NewBatch() enrollment.Batch {
	return &memoryBatch{repo: mr}
}

// memoryWrite is one write in a batch. check runs against the state before any write in the batch is
// applied; created holds the enrollment paths created earlier in the same batch.
type memoryWrite struct {
	check func(created map[string]bool) error
	apply func()
}

type memoryBatch struct {
	repo   *MemoryRepository
	writes []memoryWrite
}

func (b *memoryBatch) courseMustExist(courseID string) func(map[string]bool) error {
	return func(map[string]bool) error {
		if _, ok := b.repo.courses[courseID]; !ok {
			return fmt.Errorf("no document to update: %s", models.CoursePath(courseID))
		}
		return nil
	}
}

func (b *memoryBatch) enrollmentMustExist(userID, courseID string) func(map[string]bool) error {
	return func(created map[string]bool) error {
		if _, ok := b.repo.enrollments[userID][courseID]; !ok && !created[models.EnrollmentPath(userID, courseID)] {
			return fmt.Errorf("no document to update: %s", models.EnrollmentPath(userID, courseID))
		}
		return nil
	}
}

func (b *memoryBatch) IncrementEnrolledStudents(courseID string) {
	b.writes = append(b.writes, memoryWrite{
		check: b.courseMustExist(courseID),
		apply: func() { b.repo.courses[courseID].EnrolledStudents++ },
	})
}

func (b *memoryBatch) CreateEnrollment(userID string, e *models.EnrolledCourse) {
	path := models.EnrollmentPath(userID, e.CourseID)
	record := copyEnrollment(e)
	b.writes = append(b.writes, memoryWrite{
		check: func(created map[string]bool) error {
			if _, ok := b.repo.enrollments[userID][e.CourseID]; ok || created[path] {
				return fmt.Errorf("document already exists: %s", path)
			}
			created[path] = true
			return nil
		},
		apply: func() {
			if b.repo.enrollments[userID] == nil {
				b.repo.enrollments[userID] = make(map[string]*models.EnrolledCourse)
			}
			b.repo.enrollments[userID][record.CourseID] = record
		},
	})
}

func (b *memoryBatch) UpdateCourseRating(courseID string, rating float64, reviewCount int) {
	b.writes = append(b.writes, memoryWrite{
		check: b.courseMustExist(courseID),
		apply: func() {
			c := b.repo.courses[courseID]
			c.Rating = rating
			c.ReviewCount = reviewCount
		},
	})
}

func (b *memoryBatch) SetEnrollmentRated(userID string, courseID string, rating int) {
	b.writes = append(b.writes, memoryWrite{
		check: b.enrollmentMustExist(userID, courseID),
		apply: func() {
			r := rating
			b.repo.enrollments[userID][courseID].Rated = &r
		},
	})
}

func (b *memoryBatch) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.repo.lock.Lock()
	defer b.repo.lock.Unlock()

	if b.repo.commitErr != nil {
		return b.repo.commitErr
	}

	created := make(map[string]bool)
	for _, w := range b.writes {
		if err := w.check(created); err != nil {
			return err
		}
	}
	for _, w := range b.writes {
		w.apply()
	}
	return nil
}

// Users

// VerifySessionCookie returns the user whose ID is the cookie value.
func (mr *MemoryRepository) VerifySessionCookie(ctx context.Context, cookie string) (*models.User, error) {
	return mr.GetUserByID(ctx, cookie)
}

// CreateSessionCookie accepts a user ID as the ID token and returns it as the session cookie.
func (mr *MemoryRepository) CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	if _, err := mr.GetUserByID(ctx, idToken); err != nil {
		return "", err
	}
	return idToken, nil
}

func (mr *MemoryRepository) RevokeSessions(ctx context.Context, userID string) error {
	return nil
}

func (mr *MemoryRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	u, ok := mr.users[userID]
	if !ok || u.Disabled {
		return nil, qerrors.UserNotFoundError
	}
	return mr.userWithRole(u), nil
}

func (mr *MemoryRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	mr.lock.RLock()
	defer mr.lock.RUnlock()

	users := make([]*models.User, 0, len(mr.users))
	for _, u := range mr.users {
		users = append(users, mr.userWithRole(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// ClaimAdmin grants the admin role to the user. Only the first admin can be claimed this way; after that
// only an existing admin may claim it again.
func (mr *MemoryRepository) ClaimAdmin(ctx context.Context, userID string) error {
	mr.lock.Lock()
	defer mr.lock.Unlock()

	if _, ok := mr.users[userID]; !ok {
		return qerrors.UserNotFoundError
	}
	if len(mr.admins) > 0 && !mr.admins[userID] {
		return qerrors.NotAdminError
	}
	mr.admins[userID] = true
	return nil
}

// userWithRole copies the user with IsAdmin taken from the admin roles. Callers must hold the lock.
func (mr *MemoryRepository) userWithRole(u *models.User) *models.User {
	profile := *u.Profile
	profile.IsAdmin = mr.admins[u.ID]
	user := *u
	user.Profile = &profile
	return &user
}

// Helpers

func copyCurriculum(curriculum []models.Section) []models.Section {
	if curriculum == nil {
		return nil
	}
	out := make([]models.Section, len(curriculum))
	for i, s := range curriculum {
		out[i] = models.Section{
			Title:   s.Title,
			Lessons: append([]models.Lesson(nil), s.Lessons...),
		}
	}
	return out
}

func copyCourse(c *models.Course) *models.Course {
	cc := *c
	cc.Curriculum = copyCurriculum(c.Curriculum)
	return &cc
}

func copyEnrollment(e *models.EnrolledCourse) *models.EnrolledCourse {
	ec := *e
	ec.WatchedLessons = append(make([]string, 0, len(e.WatchedLessons)), e.WatchedLessons...)
	if e.Rated != nil {
		r := *e.Rated
		ec.Rated = &r
	}
	return &ec
}

// sortCourses orders courses by creation time, then ID.
func sortCourses(courses []*models.Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].CreatedAt.Equal(courses[j].CreatedAt) {
			return lessID(courses[i].ID, courses[j].ID)
		}
		return courses[i].CreatedAt.Before(courses[j].CreatedAt)
	})
}

// lessID orders numeric IDs numerically so seeded courses list as 1, 2, ..., 12.
func lessID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func filterByInstructor(courses []*models.Course, instructorID string) []*models.Course {
	out := make([]*models.Course, 0)
	for _, c := range courses {
		if c.InstructorID == instructorID {
			out = append(out, c)
		}
	}
	return out
}
