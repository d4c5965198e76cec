package routers

import (
	"meetcue-service/internal/app/delivery/http/middlewares"
	"meetcue-service/internal/app/services/core/groups"

	"github.com/go-chi/chi/v5"
)

func attachGroupRoutes(router chi.Router, middlewares *middlewares.Middlewares, groupController *groups.GroupController) {
	router.With(middlewares.Authenticate).Post("/", groupController.CreateGroup)
	router.With(middlewares.Authenticate).Get("/", groupController.ListGroups)
	router.With(middlewares.Authenticate).Get("/{groupID}", groupController.GetGroup)
	router.With(middlewares.Authenticate).Get("/code/{code}", groupController.GetGroupByCode)
	router.With(middlewares.Authenticate).Post("/join", groupController.JoinGroup)
	router.With(middlewares.Authenticate).Put("/{groupID}/availability", groupController.ChangeAvailability)
	router.With(middlewares.Authenticate).Post("/{groupID}/leave", groupController.LeaveGroup)
	router.With(middlewares.Authenticate).Delete("/{groupID}", groupController.DeleteGroup)
	router.With(middlewares.Authenticate).Get("/{groupID}/week-view", groupController.GetWeekView)
	router.With(middlewares.Authenticate).Post("/{groupID}/export", groupController.ExportGroup)
	router.With(middlewares.Authenticate).Post("/{groupID}/recompute", groupController.RecomputeGroup)
}
