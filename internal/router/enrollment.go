package router

import (
	"encoding/json"
	"net/http"

	"edemy/internal/auth"
	"edemy/internal/middleware"
	"edemy/internal/models"
	"edemy/internal/qerrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func (rt *Router) EnrollmentRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.RequireAuth(rt.sessions, false))

	// Student dashboard
	router.Get("/", rt.listEnrollmentsHandler)

	router.Route("/{courseID}", func(r chi.Router) {
		r.Use(middleware.CourseCtx())

		r.Post("/watch", rt.watchLessonHandler)
		r.Post("/rate", rt.submitRatingHandler)
	})

	return router
}

// GET: /
func (rt *Router) listEnrollmentsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	enrollments, err := rt.enrollments.ListEnrollments(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, enrollments)
}

// POST: /{courseID}/watch
func (rt *Router) watchLessonHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.WatchLessonRequest

	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil {
		writeError(w, qerrors.InvalidBody)
		return
	}

	e, err := rt.enrollments.WatchLesson(r.Context(), user.ID, middleware.GetCourseID(r), req.LessonTitle)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, e)
}

// POST: /{courseID}/rate
func (rt *Router) submitRatingHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.SubmitRatingRequest

	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil {
		writeError(w, qerrors.InvalidBody)
		return
	}

	course, err := rt.enrollments.SubmitRating(r.Context(), user.ID, middleware.GetCourseID(r), req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, course)
}
