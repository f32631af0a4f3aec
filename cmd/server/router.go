package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kaabil/contentgen-api/internal/api"
	apiMiddleware "github.com/kaabil/contentgen-api/internal/api/middleware"
)

// setupRouter registers every route and middleware on a chi router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(app.metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{apiMiddleware.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	generationHandler := api.NewGenerationHandler(app.generationService)
	healthHandler := api.NewHealthHandler(app.gateway)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userService)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.RefreshToken)
		r.With(authMiddleware.Authenticate).Get("/me", authHandler.Me)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/generate", generationHandler.Generate)
		r.Get("/history", generationHandler.ListHistory)
		r.Get("/history/{id}", generationHandler.GetHistory)
		r.Delete("/history/{id}", generationHandler.DeleteHistory)
	})

	return r
}
