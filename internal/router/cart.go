package router

import (
	"net/http"

	"edemy/internal/auth"
	"edemy/internal/middleware"
	"edemy/internal/models"
	"edemy/internal/qerrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

func (rt *Router) CartRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.RequireAuth(rt.sessions, false))

	router.Get("/", rt.getCartHandler)
	router.Post("/checkout", rt.checkoutHandler)
	router.With(middleware.CourseCtx()).Post("/{courseID}", rt.addToCartHandler)
	router.With(middleware.CourseCtx()).Delete("/{courseID}", rt.removeFromCartHandler)

	return router
}

// CartResponse is a cart resolved against the catalog. Course IDs that no longer exist are left out of
// Courses and Total but kept in CourseIDs until the student removes them. While such an ID is in the cart,
// checkout fails with a not-found error and the cart is kept, unless the student is already enrolled in
// that course.
type CartResponse struct {
	CourseIDs []string         `json:"courseIds"`
	Courses   []*models.Course `json:"courses"`
	Total     float64          `json:"total"`
}

func (rt *Router) cartResponse(r *http.Request, ids []string) *CartResponse {
	resp := &CartResponse{CourseIDs: ids, Courses: make([]*models.Course, 0, len(ids))}
	for _, id := range ids {
		course, err := rt.courses.GetCourse(r.Context(), id)
		if err != nil {
			glog.V(1).Infof("cart course %s could not be loaded: %v\n", id, err)
			continue
		}
		resp.Courses = append(resp.Courses, course)
		resp.Total += course.Price
	}
	return resp
}

// GET: /
func (rt *Router) getCartHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ids, err := rt.carts.Get(r.Context(), user.ID)
	if err != nil {
		glog.Warningf("error reading cart of %s, serving an empty cart: %v\n", user.ID, err)
		ids = []string{}
	}

	render.JSON(w, r, rt.cartResponse(r, ids))
}

// POST: /{courseID}
func (rt *Router) addToCartHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	courseID := middleware.GetCourseID(r)
	if _, err := rt.courses.GetCourse(r.Context(), courseID); err != nil {
		writeError(w, err)
		return
	}

	ids, err := rt.carts.Add(r.Context(), user.ID, courseID)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, rt.cartResponse(r, ids))
}

// DELETE: /{courseID}
func (rt *Router) removeFromCartHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ids, err := rt.carts.Remove(r.Context(), user.ID, middleware.GetCourseID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, rt.cartResponse(r, ids))
}

// POST: /checkout
//
// Enrolls the student in every course in their cart they are not enrolled in yet, then clears the cart.
// The cart is only cleared once the enrollments have been committed.
func (rt *Router) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if !rt.checkouts.acquire(user.ID) {
		writeError(w, qerrors.CheckoutInProgressError)
		return
	}
	defer rt.checkouts.release(user.ID)

	ids, err := rt.carts.Get(r.Context(), user.ID)
	if err != nil {
		glog.Warningf("error reading cart of %s, checking out an empty cart: %v\n", user.ID, err)
		ids = []string{}
	}

	result, err := rt.enrollments.Checkout(r.Context(), user, ids)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := rt.carts.Clear(r.Context(), user.ID); err != nil {
		glog.Warningf("error clearing cart of %s after checkout: %v\n", user.ID, err)
	}

	render.JSON(w, r, result)
}
