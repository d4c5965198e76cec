package routers

import (
	"meetcue-service/internal/app/delivery/http/middlewares"
	"meetcue-service/internal/app/services/core/selections"

	"github.com/go-chi/chi/v5"
)

func attachSelectionRoutes(router chi.Router, middlewares *middlewares.Middlewares, selectionController *selections.SelectionController) {
	router.With(middlewares.Authenticate).Post("/", selectionController.CreateSelection)
	router.With(middlewares.Authenticate).Get("/", selectionController.ListSelections)
	router.With(middlewares.Authenticate).Get("/{selectionID}", selectionController.GetSelection)
	router.With(middlewares.Authenticate).Put("/{selectionID}", selectionController.UpdateSelection)
	router.With(middlewares.Authenticate).Delete("/{selectionID}", selectionController.DeleteSelection)
}
