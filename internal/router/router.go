package router

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"edemy/internal/auth"
	"edemy/internal/cart"
	"edemy/internal/enrollment"
	"edemy/internal/models"
	"edemy/internal/qerrors"
	"edemy/internal/textgen"

	"github.com/golang/glog"
)

// CourseStore is the catalog and authoring side of the document store.
type CourseStore interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	ListCoursesByInstructor(ctx context.Context, instructorID string) ([]*models.Course, error)
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error)
	EditCourse(ctx context.Context, req *models.EditCourseRequest) error
	DeleteCourse(ctx context.Context, req *models.DeleteCourseRequest) error
	SeedCourses(ctx context.Context, courses []*models.Course) error
}

// UserStore is the admin side of the auth provider.
type UserStore interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	ClaimAdmin(ctx context.Context, userID string) error
}

// Router holds the dependencies of the HTTP handlers.
type Router struct {
	courses     CourseStore
	users       UserStore
	sessions    auth.Provider
	enrollments *enrollment.Service
	carts       cart.Store
	textGen     textgen.Client

	checkouts *inFlight
}

func New(courses CourseStore, users UserStore, sessions auth.Provider, enrollments *enrollment.Service, carts cart.Store, textGen textgen.Client) *Router {
	return &Router{
		courses:     courses,
		users:       users,
		sessions:    sessions,
		enrollments: enrollments,
		carts:       carts,
		textGen:     textGen,
		checkouts:   newInFlight(),
	}
}

// inFlight tracks the students with a checkout in progress.
type inFlight struct {
	lock sync.Mutex
	ids  map[string]bool
}

func newInFlight() *inFlight {
	return &inFlight{ids: make(map[string]bool)}
}

func (f *inFlight) acquire(userID string) bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.ids[userID] {
		return false
	}
	f.ids[userID] = true
	return true
}

func (f *inFlight) release(userID string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	delete(f.ids, userID)
}

// statusFor maps an error to the HTTP status it is reported with.
func statusFor(err error) int {
	switch qerrors.KindOf(err) {
	case qerrors.KindValidation:
		return http.StatusBadRequest
	case qerrors.KindPermission:
		if errors.Is(err, qerrors.NotAuthenticatedError) {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	case qerrors.KindNotFound:
		return http.StatusNotFound
	case qerrors.KindConflict:
		return http.StatusConflict
	case qerrors.KindConfiguration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is the client-facing message for an error. Store failures are logged but not echoed.
func errorMessage(err error) string {
	switch qerrors.KindOf(err) {
	case qerrors.KindConsistencyWrite:
		return "Your changes could not be saved. Nothing was changed, please try again."
	case qerrors.KindUnknown:
		glog.Errorf("unexpected error: %v\n", err)
		return "An unexpected error occurred"
	default:
		return err.Error()
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, errorMessage(err), statusFor(err))
}

func writeOK(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte(msg))
	if err != nil {
		glog.Warningf("failed to write response: %v\n", err)
	}
}
