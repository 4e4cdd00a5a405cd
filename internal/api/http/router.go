package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportstack/helpdesk/internal/api/http/handlers"
	"github.com/supportstack/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Agent          *handlers.AgentHandler
	KB             *handlers.KBHandler
	Config         *handlers.ConfigHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	authed := cfg.AuthMiddleware.Handle

	tickets := app.Group("/tickets", authed)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Get("/:id/audit", cfg.Tickets.ListAuditLogs)
	tickets.Post("/:id/reply", auth.RequireAgent(), cfg.Tickets.Reply)

	agent := app.Group("/agent", authed, auth.RequireAgent())
	agent.Get("/suggestion/:ticketId", cfg.Agent.GetSuggestion)
	agent.Post("/triage/:ticketId", cfg.Agent.TriggerTriage)

	kb := app.Group("/kb")
	kb.Get("/", cfg.KB.ListArticles)
	kb.Post("/", authed, auth.RequireAdmin(), cfg.KB.CreateArticle)
	kb.Put("/:id", authed, auth.RequireAdmin(), cfg.KB.UpdateArticle)
	kb.Delete("/:id", authed, auth.RequireAdmin(), cfg.KB.DeleteArticle)

	configGroup := app.Group("/config")
	configGroup.Get("/", cfg.Config.GetConfig)
	configGroup.Put("/", authed, auth.RequireAdmin(), cfg.Config.UpdateConfig)
}
