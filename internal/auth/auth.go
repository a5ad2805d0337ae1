package auth

import (
	"context"
	"time"

	"edemy/internal/models"
)

// Provider verifies and issues session cookies. It is implemented by the Firebase repository and by the
// in-memory repository.
type Provider interface {
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*models.User, error)
	CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	RevokeSessions(ctx context.Context, userID string) error
}

// CanManageCourse reports whether the user may edit or delete the course: its instructor, or an admin.
func CanManageCourse(user *models.User, course *models.Course) bool {
	if user == nil || course == nil {
		return false
	}
	if user.Profile != nil && user.IsAdmin {
		return true
	}
	return course.InstructorID != "" && course.InstructorID == user.ID
}
