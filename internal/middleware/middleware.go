package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ctxKey string

const courseIDKey ctxKey = "courseID"

// CourseCtx stores the {courseID} URL parameter in the request context.
func CourseCtx() func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			courseID := chi.URLParam(r, "courseID")

			ctx := context.WithValue(r.Context(), courseIDKey, courseID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCourseID returns the course ID stored by CourseCtx, or "" outside of it.
func GetCourseID(r *http.Request) string {
	courseID, _ := r.Context().Value(courseIDKey).(string)
	return courseID
}
