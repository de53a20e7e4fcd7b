package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dentix/clinic-server/internal/api/http/handler"
	"github.com/dentix/clinic-server/internal/api/http/middleware"
	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
)

// Router assembles the HTTP route tree from handlers and middleware.
type Router struct {
	auth         *handler.Auth
	accounts     *handler.Account
	specialists  *handler.Specialist
	odontograms  *handler.Odontogram
	authenticate *middleware.Authenticate
	requireRole  *middleware.RequireRole
	logging      *middleware.Logging
	logger       *logger.Logger
}

// New creates a new Router.
func New(
	auth *handler.Auth,
	accounts *handler.Account,
	specialists *handler.Specialist,
	odontograms *handler.Odontogram,
	authenticate *middleware.Authenticate,
	requireRole *middleware.RequireRole,
	logging *middleware.Logging,
	logger *logger.Logger,
) *Router {
	return &Router{
		auth:         auth,
		accounts:     accounts,
		specialists:  specialists,
		odontograms:  odontograms,
		authenticate: authenticate,
		requireRole:  requireRole,
		logging:      logging,
		logger:       logger,
	}
}

// Register mounts all routes on the app.
func (r *Router) Register(app *fiber.App) {
	app.Use(r.logging.Handle)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", r.auth.Register)
	auth.Get("/confirm/:token", r.auth.Confirm)
	auth.Post("/login", r.auth.Login)
	auth.Post("/refresh", r.auth.Refresh)
	auth.Post("/logout", r.auth.Logout)

	admin := api.Group("", r.authenticate.Handle, r.requireRole.Handle(model.RoleAdmin))

	accounts := admin.Group("/accounts")
	accounts.Get("", r.accounts.List)
	accounts.Post("", r.accounts.Create)
	accounts.Get("/:id", r.accounts.Get)
	accounts.Put("/:id", r.accounts.Update)

	specialists := admin.Group("/specialists")
	specialists.Get("", r.specialists.List)
	specialists.Post("", r.specialists.Create)
	specialists.Put("/:id", r.specialists.Update)
	specialists.Delete("/:id", r.specialists.Deactivate)

	patients := admin.Group("/patients")
	patients.Get("", r.odontograms.ListPatients)
	patients.Post("", r.odontograms.CreatePatient)
	patients.Get("/:id", r.odontograms.GetPatient)
	patients.Get("/:id/odontograms", r.odontograms.ListCharts)
	patients.Post("/:id/odontograms", r.odontograms.CreateChart)

	charts := admin.Group("/odontograms")
	charts.Get("/:id/teeth", r.odontograms.ListTeeth)
	charts.Post("/:id/teeth", r.odontograms.RecordTooth)
	charts.Get("/:id/xrays", r.odontograms.ListXrays)
	charts.Post("/:id/xrays", r.odontograms.AttachXray)

	admin.Get("/xrays/:id", r.odontograms.DownloadXray)
}
