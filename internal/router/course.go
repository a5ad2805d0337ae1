package router

import (
	"encoding/json"
	"net/http"

	"edemy/internal/analytics"
	"edemy/internal/auth"
	"edemy/internal/catalog"
	"edemy/internal/middleware"
	"edemy/internal/models"
	"edemy/internal/qerrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

func (rt *Router) CourseRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Catalog browsing. No auth required.
	router.Get("/", rt.listCoursesHandler)
	router.Get("/facets", rt.getFacetsHandler)

	// Instructor dashboard
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(rt.sessions, false))

		r.Get("/instructor/me", rt.listInstructorCoursesHandler)
		r.Get("/instructor/analytics", rt.getInstructorAnalyticsHandler)

		// Modifying courses themselves
		r.Post("/create", rt.createCourseHandler)
		r.Post("/generate", rt.generateDescriptionHandler)
		r.With(middleware.CourseCtx()).Post("/edit/{courseID}", rt.editCourseHandler)
		r.With(middleware.CourseCtx()).Post("/delete/{courseID}", rt.deleteCourseHandler)
	})

	// Get metadata about a course
	router.With(middleware.CourseCtx()).Get("/{courseID}", rt.getCourseHandler)

	return router
}

// listCatalog returns the full course list. Failures are logged and read as an empty catalog.
func (rt *Router) listCatalog(r *http.Request) []*models.Course {
	courses, err := rt.courses.ListCourses(r.Context())
	if err != nil {
		glog.Warningf("error listing courses, serving an empty catalog: %v\n", err)
		return []*models.Course{}
	}
	return courses
}

// GET: /
func (rt *Router) listCoursesHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := catalog.ParseFilter(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, catalog.Apply(rt.listCatalog(r), filter))
}

// GET: /facets
func (rt *Router) getFacetsHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, catalog.GetFacets(rt.listCatalog(r)))
}

// GET: /{courseID}
func (rt *Router) getCourseHandler(w http.ResponseWriter, r *http.Request) {
	course, err := rt.courses.GetCourse(r.Context(), middleware.GetCourseID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, newCourseDetails(course))
}

type lessonPlayback struct {
	Section     int    `json:"section"`
	Title       string `json:"title"`
	EmbedURL    string `json:"embedUrl,omitempty"`
	Previewable bool   `json:"previewable"`
}

type courseDetails struct {
	*models.Course
	Playback []lessonPlayback `json:"playback"`
}

func newCourseDetails(course *models.Course) *courseDetails {
	details := &courseDetails{Course: course, Playback: make([]lessonPlayback, 0, course.TotalLessons())}
	for i, section := range course.Curriculum {
		for _, lesson := range section.Lessons {
			embed, _ := lesson.EmbedURL()
			details.Playback = append(details.Playback, lessonPlayback{
				Section:     i,
				Title:       lesson.Title,
				EmbedURL:    embed,
				Previewable: course.IsPreviewable(i),
			})
		}
	}
	return details
}

// GET: /instructor/me
func (rt *Router) listInstructorCoursesHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	courses, err := rt.courses.ListCoursesByInstructor(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, courses)
}

// GET: /instructor/analytics
func (rt *Router) getInstructorAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	courses, err := rt.courses.ListCoursesByInstructor(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, analytics.GenerateInstructorAnalytics(courses))
}

// POST: /create
func (rt *Router) createCourseHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.CreateCourseRequest

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
	req.CreatedBy = user

	c, err := rt.courses.CreateCourse(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, c)
}

// POST: /edit/{courseID}
func (rt *Router) editCourseHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.EditCourseRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil {
		writeError(w, qerrors.InvalidBody)
		return
	}
	req.CourseID = middleware.GetCourseID(r)

	if err := rt.requireCourseManager(r, req.CourseID); err != nil {
		writeError(w, err)
		return
	}

	err = rt.courses.EditCourse(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, "Successfully edited course "+req.CourseID)
}

// POST: /delete/{courseID}
func (rt *Router) deleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	courseID := middleware.GetCourseID(r)

	if err := rt.requireCourseManager(r, courseID); err != nil {
		writeError(w, err)
		return
	}

	err := rt.courses.DeleteCourse(r.Context(), &models.DeleteCourseRequest{CourseID: courseID})
	if err != nil {
		writeError(w, err)
		return
	}

	writeOK(w, "Successfully deleted course "+courseID)
}

type generateDescriptionResponse struct {
	Data  *models.GeneratedDescription `json:"data"`
	Error string                       `json:"error,omitempty"`
}

// POST: /generate
func (rt *Router) generateDescriptionHandler(w http.ResponseWriter, r *http.Request) {
	var req *models.GenerateDescriptionRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req == nil {
		writeError(w, qerrors.InvalidBody)
		return
	}

	generated, err := rt.textGen.GenerateCourseDescription(r.Context(), req.Topic, req.Keywords)
	if err != nil {
		render.Status(r, statusFor(err))
		render.JSON(w, r, generateDescriptionResponse{Error: errorMessage(err)})
		return
	}

	render.JSON(w, r, generateDescriptionResponse{Data: generated})
}

// requireCourseManager checks that the current user is the course's instructor or an admin.
func (rt *Router) requireCourseManager(r *http.Request, courseID string) error {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		return err
	}

	course, err := rt.courses.GetCourse(r.Context(), courseID)
	if err != nil {
		return err
	}

	if !auth.CanManageCourse(user, course) {
		return qerrors.NotCourseOwnerError
	}
	return nil
}
