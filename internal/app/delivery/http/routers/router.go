package routers

import (
	"fmt"
	"meetcue-service/internal/app/config"
	"meetcue-service/internal/app/delivery/http/middlewares"
	"meetcue-service/internal/app/services/core/groups"
	"meetcue-service/internal/app/services/core/selections"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	selectionController *selections.SelectionController,
	groupController *groups.GroupController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/selections", func(r chi.Router) {
				attachSelectionRoutes(r, middlewares, selectionController)
			})

			r.Route("/groups", func(r chi.Router) {
				attachGroupRoutes(r, middlewares, groupController)
			})

			r.Get("/timezones/offset", selectionController.GetTimezoneOffset)
		})
	})
}
