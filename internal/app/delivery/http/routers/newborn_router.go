package routers

import (
	"neohearts-service/internal/app/delivery/http/controllers"
	"neohearts-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachNewbornRoutes(router chi.Router, m *middlewares.Middlewares, c *controllers.NewbornController) {
	router.Post("/", c.CreateNewborn)
	router.Get("/", c.ListNewborns)
	router.Post("/bundle:build", c.BuildBundle)
	router.Get("/{id}", c.GetNewborn)
	router.Put("/{id}", c.UpdateNewborn)
	router.Delete("/{id}", c.DeleteNewborn)
}
