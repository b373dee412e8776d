package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/movie-api/internal/auth"
	"github.com/redmonkez12/movie-api/internal/config"
	"github.com/redmonkez12/movie-api/internal/httputil"
	"github.com/redmonkez12/movie-api/internal/logging"
	"github.com/redmonkez12/movie-api/internal/movie"
	"github.com/redmonkez12/movie-api/internal/user"
)

// NewRouter creates and configures the HTTP router. Registration and login
// are the only public endpoints besides health; everything else sits behind
// the token gate, and mutations on a user record additionally require the
// token identity to match the path username.
func NewRouter(
	cfg *config.Config,
	authHandler *auth.Handler,
	authMiddleware *auth.Middleware,
	userHandler *user.Handler,
	movieHandler *movie.Handler,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	// Public routes
	r.Get("/", handleWelcome)
	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		log.Println("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Post("/users", userHandler.Register)
	r.Post("/login", authHandler.Login)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/users", userHandler.List)
		r.Get("/users/{username}", userHandler.Get)

		r.Get("/movies", movieHandler.List)
		r.Get("/movies/{title}", movieHandler.GetByTitle)
		r.Get("/genres/{name}", movieHandler.GetGenre)
		r.Get("/directors/{name}", movieHandler.GetDirector)

		// Mutations are limited to the account named in the path.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireSelf("username"))

			r.Put("/users/{username}", userHandler.UpdateProfile)
			r.Put("/users/{username}/password", userHandler.UpdatePassword)
			r.Delete("/users/{username}", userHandler.Delete)
			r.Post("/users/{username}/movies/{movieID}", userHandler.AddFavorite)
			r.Delete("/users/{username}/movies/{movieID}", userHandler.RemoveFavorite)
		})
	})

	return r
}

// handleWelcome greets API visitors
// @Summary      Welcome
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func handleWelcome(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"message": "Welcome to the movie API"}, http.StatusOK)
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
