package auth

import (
	"context"
	"net/http"

	"edemy/internal/config"
	"edemy/internal/models"
	"edemy/internal/qerrors"

	"github.com/golang/glog"
)

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// RequireAuth is a middleware that rejects requests without a valid session cookie. The User associated with the
// request is added to the request context, and can be accessed via GetUserFromRequest.
func RequireAuth(provider Provider, adminOnly bool) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenCookie, err := r.Cookie(config.Config.SessionCookieName)
			if err != nil {
				// Missing session cookie.
				rejectUnauthorizedRequest(w)
				return
			}

			// Verify the session cookie. In this case an additional check is added to detect
			// if the user's Firebase session was revoked, user deleted/disabled, etc.
			user, err := provider.VerifySessionCookie(r.Context(), tokenCookie.Value)
			if err != nil {
				glog.V(1).Infof("rejecting session cookie: %v\n", err)
				rejectUnauthorizedRequest(w)
				return
			}

			if adminOnly && (user.Profile == nil || !user.IsAdmin) {
				rejectForbiddenRequest(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// GetUserFromRequest returns a User if it exists within the request context. Only works with routes that implement the
// RequireAuth middleware.
func GetUserFromRequest(r *http.Request) (*models.User, error) {
	user, ok := r.Context().Value(currentUserKey).(*models.User)
	if ok && user != nil {
		return user, nil
	}

	return nil, qerrors.NotAuthenticatedError
}

// Helpers

func rejectUnauthorizedRequest(w http.ResponseWriter) {
	http.Error(w, "You must be authenticated to access this resource", http.StatusUnauthorized)
}

func rejectForbiddenRequest(w http.ResponseWriter) {
	http.Error(w, "You do not have permission to access this resource", http.StatusForbidden)
}
