package routers

import (
	"neohearts-service/internal/app/delivery/http/controllers"
	"neohearts-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachOrganizationRoutes(router chi.Router, m *middlewares.Middlewares, c *controllers.OrganizationController) {
	router.Post("/", c.CreateOrganization)
	router.Get("/", c.ListOrganizations)
	router.Get("/{id}", c.GetOrganization)
	router.Put("/{id}", c.UpdateOrganization)
	router.Delete("/{id}", c.DeleteOrganization)
}
