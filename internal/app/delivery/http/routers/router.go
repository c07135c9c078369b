package routers

import (
	"fmt"
	"neohearts-service/internal/app/config"
	"neohearts-service/internal/app/delivery/http/controllers"
	"neohearts-service/internal/app/delivery/http/middlewares"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	newbornController *controllers.NewbornController,
	organizationController *controllers.OrganizationController,
	healthController *controllers.HealthController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.EndpointPrefix, "/"))
	versionPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.Version, "/"))

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Get("/health", healthController.Health)

			r.Group(func(r chi.Router) {
				r.Use(middlewares.Authenticate)

				r.Route("/newborns", func(r chi.Router) {
					attachNewbornRoutes(r, middlewares, newbornController)
				})

				r.Route("/organizations", func(r chi.Router) {
					attachOrganizationRoutes(r, middlewares, organizationController)
				})
			})
		})
	})
}
