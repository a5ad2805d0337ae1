package router

import (
	"encoding/json"
	"net/http"

	"edemy/internal/auth"
	"edemy/internal/config"
	"edemy/internal/models"
	"edemy/internal/qerrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

func (rt *Router) AuthRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Information about the current user
	router.With(auth.RequireAuth(rt.sessions, false)).Get("/me", rt.getMeHandler)

	// Alter the current session. No auth middlewares required.
	router.Post("/session", rt.createSessionHandler)
	router.Post("/signout", rt.signOutHandler)

	return router
}

// GET: /me
func (rt *Router) getMeHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, r, struct {
		*models.Profile
		ID string `json:"id"`
	}{user.Profile, user.ID})
}

// POST: /session
func (rt *Router) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.Token == "" {
		writeError(w, qerrors.InvalidBody)
		return
	}

	expiresIn := config.Config.SessionCookieExpiration

	// Create the session cookie. This will also verify the ID token in the process.
	// The session cookie will have the same claims as the ID token.
	cookie, err := rt.sessions.CreateSessionCookie(r.Context(), req.Token, expiresIn)
	if err != nil {
		glog.V(1).Infof("rejecting ID token: %v\n", err)
		http.Error(w, "Invalid ID token", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, sessionCookie(cookie, int(expiresIn.Seconds())))
	writeOK(w, "success")
}

// POST: /signout
//
// Clears the session cookie. If the cookie is still valid, the user's sessions are revoked as well.
func (rt *Router) signOutHandler(w http.ResponseWriter, r *http.Request) {
	if tokenCookie, err := r.Cookie(config.Config.SessionCookieName); err == nil {
		if user, err := rt.sessions.VerifySessionCookie(r.Context(), tokenCookie.Value); err == nil {
			if err := rt.sessions.RevokeSessions(r.Context(), user.ID); err != nil {
				glog.Warningf("error revoking sessions of %s: %v\n", user.ID, err)
			}
		}
	}

	http.SetCookie(w, sessionCookie("", -1))
	writeOK(w, "success")
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	var sameSite http.SameSite
	if config.Config.IsHTTPS {
		sameSite = http.SameSiteNoneMode
	} else {
		sameSite = http.SameSiteLaxMode
	}

	return &http.Cookie{
		Name:     config.Config.SessionCookieName,
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   config.Config.IsHTTPS,
		Path:     "/",
	}
}
