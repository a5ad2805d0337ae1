package server

import (
	"fmt"
	"log"
	"net/http"

	"edemy/internal/config"
	rtr "edemy/internal/router"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func Routes(rt *rtr.Router) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.Logger, // Log API Request Calls
		middleware.Recoverer,
	)

	router.Route("/", func(r chi.Router) {
		r.Mount("/", rtr.HealthRoutes())
	})

	router.Route("/v1", func(r chi.Router) {
		r.Mount("/users", rt.AuthRoutes())
		r.Mount("/courses", rt.CourseRoutes())
		r.Mount("/cart", rt.CartRoutes())
		r.Mount("/enrollments", rt.EnrollmentRoutes())
		r.Mount("/admin", rt.AdminRoutes())
	})

	return router
}

// Handler wraps the routes in the CORS policy from the configuration.
func Handler(rt *rtr.Router) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   config.Config.AllowedOrigins,
		AllowedHeaders:   []string{"Cookie", "Content-Type"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PATCH"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
	})

	return c.Handler(Routes(rt))
}

func Start(rt *rtr.Router) {
	if config.Config == nil {
		log.Panic("❌ Missing or invalid configuration!")
	}

	handler := Handler(rt)
	log.Printf("Server is listening on port %v\n", config.Config.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", config.Config.Port), handler))
}
