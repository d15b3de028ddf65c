package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lbastos/worklane/internal/http/delivery"
	"github.com/lbastos/worklane/internal/http/export"
	"github.com/lbastos/worklane/internal/http/importcsv"
	"github.com/lbastos/worklane/internal/http/milestone"
	"github.com/lbastos/worklane/internal/http/phase"
	"github.com/lbastos/worklane/internal/http/project"
)

func New(
	projectsV1 *project.Handler,
	milestonesV1 *milestone.Handler,
	phasesV1 *phase.Handler,
	deliveriesV1 *delivery.Handler,
	exportV1 *export.Handler,
	importV1 *importcsv.Handler,
	authSecret string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		if authSecret != "" {
			r.Use(BearerAuth(authSecret))
		}

		r.Route("/projects", projectsV1.Routes)

		r.Route("/milestones", func(r chi.Router) {
			milestonesV1.Routes(r)
			phasesV1.MilestoneRoutes(r)
			deliveriesV1.MilestoneRoutes(r)
			exportV1.MilestoneRoutes(r)
		})

		r.Route("/phases", phasesV1.Routes)
		r.Route("/deliverables", phasesV1.DeliverableRoutes)
		r.Route("/deliveries", deliveriesV1.Routes)
		r.Route("/import", importV1.Routes)
	})

	return router
}
