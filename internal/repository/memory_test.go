package repository

import (
	"context"
	"errors"
	"testing"

	"edemy/internal/models"
	"edemy/internal/qerrors"
	"edemy/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instructor() *models.User {
	return &models.User{ID: "inst-9", Profile: &models.Profile{DisplayName: "Grace Hopper", PhotoURL: "https://example.com/grace.png"}}
}

func createRequest() *models.CreateCourseRequest {
	return &models.CreateCourseRequest{
		Title:       "Compilers from Scratch",
		Description: "Write a compiler for a small language, end to end.",
		Summary:     "Build your own compiler.",
		Category:    "Programming",
		Level:       models.LevelAdvanced,
		Price:       19.99,
		Curriculum:  seed.SampleCurriculum(),
		CreatedBy:   instructor(),
	}
}

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	c, err := repo.CreateCourse(ctx, createRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Grace Hopper", c.InstructorName)
	assert.Equal(t, "https://example.com/grace.png", c.InstructorAvatar)
	assert.Equal(t, "English", c.Language)
	assert.Zero(t, c.Rating)
	assert.Zero(t, c.ReviewCount)
	assert.Zero(t, c.EnrolledStudents)

	mine, err := repo.ListCoursesByInstructor(ctx, "inst-9")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, c.ID, mine[0].ID)
}

func TestCreateCourseValidation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	tests := map[string]func(req *models.CreateCourseRequest){
		"short title":       func(req *models.CreateCourseRequest) { req.Title = "Go" },
		"short description": func(req *models.CreateCourseRequest) { req.Description = "Too short" },
		"short summary":     func(req *models.CreateCourseRequest) { req.Summary = "Short" },
		"bad level":         func(req *models.CreateCourseRequest) { req.Level = "Expert" },
		"negative price":    func(req *models.CreateCourseRequest) { req.Price = -1 },
		"no sections":       func(req *models.CreateCourseRequest) { req.Curriculum = nil },
		"empty section": func(req *models.CreateCourseRequest) {
			req.Curriculum = []models.Section{{Title: "Intro"}}
		},
		"vimeo lesson": func(req *models.CreateCourseRequest) {
			req.Curriculum[0].Lessons[0].VideoURL = "https://vimeo.com/76979871"
		},
		"short lesson title": func(req *models.CreateCourseRequest) {
			req.Curriculum[0].Lessons[0].Title = "Hi"
		},
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := createRequest()
			mutate(req)
			_, err := repo.CreateCourse(ctx, req)
			assert.Equal(t, qerrors.KindValidation, qerrors.KindOf(err), "%v", err)
		})
	}

	all, err := repo.ListCourses(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEditCourseKeepsAggregates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.SeedCourses(ctx, seed.Courses()))

	before, err := repo.GetCourse(ctx, "1")
	require.NoError(t, err)

	err = repo.EditCourse(ctx, &models.EditCourseRequest{
		CourseID:    "1",
		Title:       "The Complete 2025 Web Development Bootcamp",
		Description: before.Description,
		Summary:     before.Summary,
		Category:    before.Category,
		Level:       before.Level,
		Price:       9.99,
		Curriculum:  before.Curriculum,
	})
	require.NoError(t, err)

	after, err := repo.GetCourse(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 9.99, after.Price)
	assert.Equal(t, before.Rating, after.Rating)
	assert.Equal(t, before.ReviewCount, after.ReviewCount)
	assert.Equal(t, before.EnrolledStudents, after.EnrolledStudents)

	err = repo.EditCourse(ctx, &models.EditCourseRequest{
		CourseID: "404", Title: after.Title, Description: after.Description, Summary: after.Summary,
		Level: after.Level, Curriculum: after.Curriculum,
	})
	assert.ErrorIs(t, err, qerrors.CourseNotFoundError)
}

func TestDeleteCourse(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.SeedCourses(ctx, seed.Courses()))

	require.NoError(t, repo.DeleteCourse(ctx, &models.DeleteCourseRequest{CourseID: "12"}))
	assert.ErrorIs(t, repo.DeleteCourse(ctx, &models.DeleteCourseRequest{CourseID: "12"}), qerrors.CourseNotFoundError)

	all, err := repo.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 11)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "11", all[10].ID)
}

func TestBatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.SeedCourses(ctx, seed.Courses()))

	// The second write targets a course that does not exist, so the first must not be applied.
	batch := repo.NewBatch()
	batch.IncrementEnrolledStudents("1")
	batch.IncrementEnrolledStudents("404")
	assert.Error(t, batch.Commit(ctx))

	c, err := repo.GetCourse(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 2500, c.EnrolledStudents)
}

func TestBatchCreateEnrollmentPrecondition(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.SeedCourses(ctx, seed.Courses()))

	batch := repo.NewBatch()
	batch.IncrementEnrolledStudents("1")
	batch.CreateEnrollment("u1", &models.EnrolledCourse{CourseID: "1", WatchedLessons: []string{}})
	require.NoError(t, batch.Commit(ctx))

	batch = repo.NewBatch()
	batch.IncrementEnrolledStudents("1")
	batch.CreateEnrollment("u1", &models.EnrolledCourse{CourseID: "1", WatchedLessons: []string{}})
	assert.Error(t, batch.Commit(ctx))

	c, err := repo.GetCourse(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 2501, c.EnrolledStudents)

	// Updates in the same batch may target an enrollment created earlier in it.
	batch = repo.NewBatch()
	batch.CreateEnrollment("u1", &models.EnrolledCourse{CourseID: "2", WatchedLessons: []string{}})
	batch.SetEnrollmentRated("u1", "2", 4)
	require.NoError(t, batch.Commit(ctx))

	e, err := repo.GetEnrollment(ctx, "u1", "2")
	require.NoError(t, err)
	require.NotNil(t, e.Rated)
	assert.Equal(t, 4, *e.Rated)
}

func TestUpdateWatchProgress(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.SeedCourses(ctx, seed.Courses()))

	_, err := repo.UpdateWatchProgress(ctx, "u1", "1", func(current *models.EnrolledCourse) *models.EnrolledCourse {
		t.Fatal("called without an enrollment")
		return nil
	})
	assert.ErrorIs(t, err, qerrors.EnrollmentNotFoundError)

	batch := repo.NewBatch()
	batch.CreateEnrollment("u1", &models.EnrolledCourse{CourseID: "1", WatchedLessons: []string{"Welcome to the Course"}, Progress: 20})
	require.NoError(t, batch.Commit(ctx))

	// Returning nil writes nothing, even when commits are failing.
	repo.FailCommitsWith(errors.New("unavailable"))
	e, err := repo.UpdateWatchProgress(ctx, "u1", "1", func(current *models.EnrolledCourse) *models.EnrolledCourse {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 20, e.Progress)

	_, err = repo.UpdateWatchProgress(ctx, "u1", "1", func(current *models.EnrolledCourse) *models.EnrolledCourse {
		current.Progress = 40
		return current
	})
	assert.Error(t, err)
	repo.FailCommitsWith(nil)

	e, err = repo.UpdateWatchProgress(ctx, "u1", "1", func(current *models.EnrolledCourse) *models.EnrolledCourse {
		current.WatchedLessons = append(current.WatchedLessons, "Setup")
		current.Progress = 40
		return current
	})
	require.NoError(t, err)
	assert.Equal(t, 40, e.Progress)

	stored, err := repo.GetEnrollment(ctx, "u1", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Welcome to the Course", "Setup"}, stored.WatchedLessons)
	assert.Equal(t, 40, stored.Progress)
	assert.False(t, stored.Completed)
}

func TestClaimAdmin(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	repo.AddUser(&models.User{ID: "a"})
	repo.AddUser(&models.User{ID: "b"})

	assert.ErrorIs(t, repo.ClaimAdmin(ctx, "nobody"), qerrors.UserNotFoundError)
	require.NoError(t, repo.ClaimAdmin(ctx, "a"))
	require.NoError(t, repo.ClaimAdmin(ctx, "a"))
	assert.ErrorIs(t, repo.ClaimAdmin(ctx, "b"), qerrors.NotAdminError)

	a, err := repo.GetUserByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, a.IsAdmin)

	b, err := repo.VerifySessionCookie(ctx, "b")
	require.NoError(t, err)
	assert.False(t, b.IsAdmin)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, validateID("course-1"))
	assert.Error(t, validateID(""))
	assert.Error(t, validateID("a/b"))
	assert.Error(t, validateID(string(make([]byte, 129))))
}
