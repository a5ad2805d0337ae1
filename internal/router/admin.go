package router

import (
	"net/http"

	"edemy/internal/auth"
	"edemy/internal/seed"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

func (rt *Router) AdminRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Any signed-in user may try; only the first admin is granted without already being one.
	router.With(auth.RequireAuth(rt.sessions, false)).Post("/claim", rt.claimAdminHandler)

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(rt.sessions, true))

		r.Get("/users", rt.listUsersHandler)
		r.Post("/seed", rt.seedCoursesHandler)
	})

	return router
}

// POST: /claim
func (rt *Router) claimAdminHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	err = rt.users.ClaimAdmin(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	glog.Infof("%s is now an admin\n", user.ID)
	writeOK(w, "Successfully claimed admin for "+user.ID)
}

// GET: /users
func (rt *Router) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := rt.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, users)
}

// POST: /seed
func (rt *Router) seedCoursesHandler(w http.ResponseWriter, r *http.Request) {
	courses := seed.Courses()

	err := rt.courses.SeedCourses(r.Context(), courses)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, map[string]int{"seeded": len(courses)})
}
