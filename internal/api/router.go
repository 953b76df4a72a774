package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/royalsilk/storefront/internal/api/handler"
	"github.com/royalsilk/storefront/internal/api/middleware"
	"github.com/royalsilk/storefront/internal/core/service"
	"github.com/royalsilk/storefront/internal/infrastructure/config"
	mongodb "github.com/royalsilk/storefront/internal/infrastructure/db/mongo"
	mysqldb "github.com/royalsilk/storefront/internal/infrastructure/db/mysql"
	redisdb "github.com/royalsilk/storefront/internal/infrastructure/db/redis"
	"github.com/royalsilk/storefront/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The storefront is a front controller: every page is dispatched from "/" on
// the route request parameter.
func NewRouter(cfg *config.Config, db *gorm.DB, mdb *mongo.Database, rdb *redis.Client, audit *queue.Dispatcher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	userRepo := mysqldb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(mdb)
	sessionStore := redisdb.NewSessionStore(rdb, cfg.SessionTTL)

	sessionManager := middleware.NewSessionManager(sessionStore, middleware.SessionConfig{
		Secret:           []byte(cfg.SessionSecret),
		RotationInterval: cfg.SessionRotation,
		Secure:           cfg.Env != "development",
	}, log)

	authService := service.NewAuthService(userRepo, sessionStore, cfg.BcryptCost, log)
	cartService := service.NewCartService(sessionStore, log)
	catalogService := service.NewCatalogService(productRepo, log)

	authHandler := handler.NewAuthHandler(authService, userRepo, sessionManager, audit, log)
	cartHandler := handler.NewCartHandler(cartService, catalogService, audit, log)
	catalogHandler := handler.NewCatalogHandler(catalogService, log)
	usersHandler := handler.NewUsersHandler(userRepo, sessionStore, log)

	// --- Front controller ---
	dispatcher := NewDispatcher(map[Route]echo.HandlerFunc{
		RouteIndex:          catalogHandler.Index,
		RouteSearch:         catalogHandler.Search,
		RouteProducts:       catalogHandler.Products,
		RouteProduct:        catalogHandler.Product,
		RouteCart:           cartHandler.Cart,
		RouteUserRegister:   authHandler.RegisterForm,
		RouteProcessNewUser: authHandler.ProcessRegister,
		RouteUserLogin:      authHandler.LoginForm,
		RouteProcessLogin:   authHandler.ProcessLogin,
		RouteUserLogout:     authHandler.Logout,
		RouteListUsers:      usersHandler.ListUsers,
	}, log)

	e.Any("/", dispatcher.Dispatch, sessionManager.Middleware())

	// --- Health probes and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, mdb, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
