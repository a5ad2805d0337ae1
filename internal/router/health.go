package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func HealthRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Get("/health", healthHandler)
	return router
}

// GET: /health
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeOK(w, "OK")
}
