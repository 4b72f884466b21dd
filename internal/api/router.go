package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/gamevault/catalog-api/docs"
	"github.com/gamevault/catalog-api/internal/api/handler"
	"github.com/gamevault/catalog-api/internal/api/middleware"
	"github.com/gamevault/catalog-api/internal/core/domain"
	"github.com/gamevault/catalog-api/internal/core/ports"
)

// BasePath is the prefix every business route lives under; the auth cookie
// path defaults to it.
const BasePath = "/api/v1"

// Dependencies carries everything the server needs behind interfaces, so
// tests can assemble a full server against in-memory stubs.
type Dependencies struct {
	Auth   ports.AuthService
	Games  ports.GameService
	Tokens ports.TokenService
	Cookie handler.CookieSettings
	// Readiness is optional; without it only the liveness probe is served.
	Readiness *handler.HealthDependenciesHandler
}

// NewServer builds the Echo instance: global middleware, the authentication
// gate, the authorization policy, and all routes.
func NewServer(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("gamevault"))

	// The gate runs before the policy: authentication first, then
	// authorization, then handlers.
	e.Use(middleware.Auth(middleware.AuthConfig{
		Tokens:     deps.Tokens,
		CookieName: deps.Cookie.Name,
		Skipper:    bypassAuth,
		Logger:     log,
	}))
	e.Use(accessPolicy().Middleware(log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie)
	gameHandler := handler.NewGameHandler(deps.Games)

	auth := e.Group(BasePath + "/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.PUT("/edit", authHandler.Edit)
	auth.DELETE("/delete", authHandler.Delete)

	games := e.Group(BasePath + "/games")
	games.GET("", gameHandler.List)
	games.GET("/:id", gameHandler.Get)
	games.POST("", gameHandler.Create)
	games.PUT("/:id", gameHandler.Update)
	games.DELETE("/:id", gameHandler.Delete)
	games.DELETE("", gameHandler.DeleteAll)

	// --- Probes, metrics, docs (all bypass the gate) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoswagger.WrapHandler)

	return e
}

// bypassAuth lists the paths that skip the authentication gate: API docs,
// the swagger UI, the probes and metrics endpoints, and the login endpoint.
func bypassAuth(c echo.Context) bool {
	path := c.Request().URL.Path
	return strings.HasPrefix(path, "/docs") ||
		strings.Contains(path, "swagger") ||
		strings.HasPrefix(path, "/health") ||
		path == "/metrics" ||
		(path == BasePath+"/auth/login" && c.Request().Method == http.MethodPost)
}

// accessPolicy is the route → required-role table. First match wins, so the
// public login rule and the logout rule precede the blanket admin rule on
// /auth/*, and GET rules on the catalog precede its blanket admin rule.
// Anything the table does not name is denied.
func accessPolicy() *middleware.Policy {
	return middleware.NewPolicy(
		middleware.Rule{Method: http.MethodPost, Pattern: BasePath + "/auth/login"},
		middleware.Rule{Method: http.MethodPost, Pattern: BasePath + "/auth/logout", Role: domain.RoleUser},
		middleware.Rule{Method: "*", Pattern: BasePath + "/auth/*", Role: domain.RoleAdmin},
		middleware.Rule{Method: http.MethodGet, Pattern: BasePath + "/games", Role: domain.RoleUser},
		middleware.Rule{Method: http.MethodGet, Pattern: BasePath + "/games/*", Role: domain.RoleUser},
		middleware.Rule{Method: "*", Pattern: BasePath + "/games", Role: domain.RoleAdmin},
		middleware.Rule{Method: "*", Pattern: BasePath + "/games/*", Role: domain.RoleAdmin},
		middleware.Rule{Method: http.MethodGet, Pattern: "/health*"},
		middleware.Rule{Method: http.MethodGet, Pattern: "/metrics"},
		middleware.Rule{Method: http.MethodGet, Pattern: "/docs*"},
	)
}
