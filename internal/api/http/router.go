package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refcatalog-service/internal/api/http/handlers"
	"github.com/spec-kit/refcatalog-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Catalogs       *handlers.CatalogsHandler
	Files          *handlers.FilesHandler
	Favorites      *handlers.FavoritesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/session", cfg.Auth.Session)

	app.Get("/catalogs", cfg.Catalogs.List)
	app.Get("/catalogs/:id", cfg.Catalogs.Get)
	app.Get("/catalogs/:id/files", cfg.Catalogs.ListFiles)

	app.Get("/files", cfg.Files.List)
	app.Get("/files/:id", cfg.Files.Get)

	favorites := app.Group("/favorites", cfg.AuthMiddleware.Handle)
	favorites.Get("", cfg.Favorites.List)
	favorites.Post("", cfg.Favorites.Add)
	favorites.Delete("/:fileID", cfg.Favorites.Remove)
}
