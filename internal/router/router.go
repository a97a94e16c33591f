// Package router maps the public URL surface onto the handlers.  All
// API routes live under the /magicaltsutsunlist/v1 prefix; /role and
// /healthz sit at the root, which is what the existing frontend calls.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tsutsun/magicaltsutsunlist/internal/handler"
	"github.com/tsutsun/magicaltsutsunlist/internal/middleware"
)

const basePath = "/magicaltsutsunlist/v1"

// RegisterRoutes registers the unauthenticated service endpoints.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the catalog-facing routes that require no
// session: the seasonal-anime proxy (cached, since the upstream feed
// changes slowly and Jikan rate-limits aggressively) and the two
// catalog-to-reference sync triggers.
func RegisterPublic(e *echo.Echo, seasonal *handler.SeasonalHandler, animes, mangas *handler.ListHandler, cache echo.MiddlewareFunc) {
	g := e.Group(basePath)
	g.GET("/seasonal-anime", seasonal.Seasonal, cache)
	g.GET("/sync-and-insert-anime", animes.Sync)
	g.GET("/sync-and-insert-manga", mangas.Sync)
}

// RegisterUser registers account endpoints.  The unauthenticated ones are
// rate limited; credential endpoints are the obvious brute-force target.
func RegisterUser(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc, jwtSecret string) {
	g := e.Group(basePath+"/user", limit)
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.POST("/update-pass", a.UpdatePass)
	g.POST("/confirm-pass/:token", a.ConfirmPass)

	// role echo lives at the root, outside the versioned prefix
	e.GET("/role", a.Role, middleware.JWTAuth(jwtSecret))
}

// RegisterTracking registers the per-user list routes.  Every route needs
// a valid access token; the user id comes from the JWT, never the body.
func RegisterTracking(e *echo.Echo, animes, mangas *handler.ListHandler, jwtSecret string) {
	g := e.Group(basePath+"/user", middleware.JWTAuth(jwtSecret))

	g.POST("/anime-status/add", animes.Add)
	g.GET("/anime-status/list", animes.List)
	g.DELETE("/anime-status/remove/:id", animes.Remove)

	g.POST("/manga-status/add", mangas.Add)
	g.GET("/manga-status/list", mangas.List)
	g.DELETE("/manga-status/remove/:id", mangas.Remove)
}

// RegisterCatalog registers the collection dumps (any authenticated user)
// and the admin-only insert and image-upload endpoints.
func RegisterCatalog(e *echo.Echo, animes, mangas *handler.CatalogHandler, jwtSecret string) {
	auth := e.Group(basePath+"/collections", middleware.JWTAuth(jwtSecret))
	auth.GET("/animes", animes.All)
	auth.GET("/mangas", mangas.All)

	admin := e.Group(
		basePath+"/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin"),
	)
	admin.POST("/new-anime/upload", animes.AddItem)
	admin.POST("/anime-image/upload", animes.UploadImage)
	admin.POST("/new-manga/upload", mangas.AddItem)
	admin.POST("/manga-image/upload", mangas.UploadImage)
}
