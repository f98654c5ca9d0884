package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shopgrid/catalog-api/internal/cache"
	"github.com/shopgrid/catalog-api/internal/config"
	"github.com/shopgrid/catalog-api/internal/database"
	"github.com/shopgrid/catalog-api/internal/handler"
	"github.com/shopgrid/catalog-api/internal/middleware"
	"github.com/shopgrid/catalog-api/internal/repository"
	"github.com/shopgrid/catalog-api/internal/service"
	"github.com/shopgrid/catalog-api/internal/utils"
	"github.com/shopgrid/catalog-api/internal/worker"
	"github.com/shopgrid/catalog-api/pkg/keycloak"
)

// main is the application entrypoint for the catalog API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting catalog api")

	// 3. Configure JWT validation
	utils.ConfigureJWT(utils.JWTParams{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
	})

	// 4. Connect MongoDB
	client, db, err := database.Connect(&cfg.Mongo)
	if err != nil {
		log.Error().Err(err).Msg("mongodb connection failed")
		fmt.Fprintf(os.Stderr, "mongodb connection failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	// 4a. Create indexes
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		indexCancel()
		log.Error().Err(err).Msg("index creation failed")
		fmt.Fprintf(os.Stderr, "index creation failed: %v\n", err)
		os.Exit(1)
	}
	indexCancel()
	log.Info().Msg("indexes ensured successfully")

	// 4b. Connect to Redis (optional; stats cache only)
	var statsCache *cache.StatsCache
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		statsCache = cache.NewStatsCache(redisClient)
		log.Info().Msg("redis connected successfully")
	} else {
		log.Warn().Msg("redis not configured - stats cache disabled")
	}

	// 5. Initialize unit of work and repositories
	uow := repository.NewUnitOfWork(client, db)

	// 6. Initialize Keycloak client
	kc := keycloak.NewClient(keycloak.Config{
		BaseURL:      cfg.Keycloak.BaseURL,
		Realm:        cfg.Keycloak.Realm,
		ClientID:     cfg.Keycloak.ClientID,
		ClientSecret: cfg.Keycloak.ClientSecret,
	})

	// 7. Initialize services
	var invalidator service.StatsInvalidator
	if statsCache != nil {
		invalidator = statsCache
	}
	productSvc := service.NewProductService(uow.Products(), uow.Categories(), invalidator)
	categorySvc := service.NewCategoryService(uow.Categories(), uow, uow, invalidator)
	tagSvc := service.NewTagService(uow.Tags())
	userSvc := service.NewUserService(uow.Users(), uow.Roles())
	roleSvc := service.NewRoleService(uow.Roles(), uow.Users(), uow)
	statsSvc := newStatsService(uow, statsCache)
	authSvc := service.NewAuthService(kc)

	// 7a. Start background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if statsCache != nil {
		refresher := worker.NewStatsRefreshWorker(statsSvc, 45*time.Second)
		go refresher.Start(workerCtx)
	}

	// 8. Initialize handlers
	handler.SetVerboseErrors(cfg.Env != "production")
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(mongoPinger{client: client}),
		Auth:     handler.NewAuthHandler(authSvc),
		Product:  handler.NewProductHandler(productSvc),
		Category: handler.NewCategoryHandler(categorySvc),
		Tag:      handler.NewTagHandler(tagSvc),
		User:     handler.NewUserHandler(userSvc),
		Role:     handler.NewRoleHandler(roleSvc),
		Stats:    handler.NewStatsHandler(statsSvc),
	}

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, middleware.NewJWTMiddleware())

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	stopWorkers()

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Tag      *handler.TagHandler
	User     *handler.UserHandler
	Role     *handler.RoleHandler
	Stats    *handler.StatsHandler
}

// setupRoutes registers all routes. Everything under /api except the login
// and refresh endpoints requires a bearer token.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/health", handlers.Health.GetHealth)

	auth := router.Group("/api/auth")
	auth.POST("/login", handlers.Auth.Login)
	auth.POST("/refresh-token", handlers.Auth.Refresh)
	auth.POST("/logout", jwtMiddleware.Handle(), handlers.Auth.Logout)

	api := router.Group("/api")
	api.Use(jwtMiddleware.Handle())
	{
		// Products
		api.GET("/products", handlers.Product.List)
		api.POST("/products", handlers.Product.Create)
		api.GET("/products/:id", handlers.Product.Get)
		api.PUT("/products/:id", handlers.Product.Update)
		api.DELETE("/products/:id", handlers.Product.Delete)

		// Categories
		api.GET("/categories", handlers.Category.List)
		api.GET("/categories/tree", handlers.Category.Tree)
		api.GET("/categories/slug/:slug", handlers.Category.GetBySlug)
		api.POST("/categories", handlers.Category.Create)
		api.GET("/categories/:id", handlers.Category.Get)
		api.PUT("/categories/:id", handlers.Category.Update)
		api.DELETE("/categories/:id", handlers.Category.Delete)

		// Tags
		api.GET("/tags", handlers.Tag.List)
		api.POST("/tags", handlers.Tag.Create)
		api.GET("/tags/:id", handlers.Tag.Get)
		api.PUT("/tags/:id", handlers.Tag.Update)
		api.DELETE("/tags/:id", handlers.Tag.Delete)

		// Users & role membership
		api.GET("/users", handlers.User.List)
		api.POST("/users", handlers.User.Create)
		api.GET("/users/:id", handlers.User.Get)
		api.PUT("/users/:id", handlers.User.Update)
		api.DELETE("/users/:id", handlers.User.Delete)
		api.POST("/users/:id/roles/:roleId", handlers.User.AssignRole)
		api.DELETE("/users/:id/roles/:roleId", handlers.User.RemoveRole)

		// Roles
		api.GET("/roles", handlers.Role.List)
		api.POST("/roles", handlers.Role.Create)
		api.GET("/roles/:id", handlers.Role.Get)
		api.PUT("/roles/:id", handlers.Role.Update)
		api.DELETE("/roles/:id", handlers.Role.Delete)

		// Dashboard stats
		api.GET("/stats", handlers.Stats.Get)
	}
}

// mongoPinger adapts the driver client to the health handler probe.
type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

// newStatsService wires the stats service with or without the cache.
func newStatsService(uow *repository.UnitOfWork, c *cache.StatsCache) *service.StatsService {
	if c == nil {
		return service.NewStatsService(uow, uow.Products(), nil)
	}
	return service.NewStatsService(uow, uow.Products(), c)
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
