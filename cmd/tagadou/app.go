package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tagadou/backend/internal/auth"
	"github.com/tagadou/backend/internal/config"
	"github.com/tagadou/backend/internal/handlers"
	"github.com/tagadou/backend/internal/mail"
	"github.com/tagadou/backend/internal/migrations"
	"github.com/tagadou/backend/internal/payment"
	"github.com/tagadou/backend/internal/secure"
	"github.com/tagadou/backend/internal/services"
	"github.com/tagadou/backend/internal/storage"
	"go.uber.org/zap"
)

// App wires the application and its dependencies.
type App struct {
	cfg    *config.Config
	logger *zap.SugaredLogger
	dbPool *pgxpool.Pool
	echo   *echo.Echo

	// Handlers
	authHandler      *handlers.AuthHandler
	orderHandler     *handlers.OrderHandler
	adminHandler     *handlers.AdminHandler
	dashboardHandler *handlers.DashboardHandler
	contactHandler   *handlers.ContactHandler
	photoHandler     *handlers.PhotoHandler
	discountHandler  *handlers.DiscountHandler
	shippingHandler  *handlers.ShippingHandler
}

// NewApp creates and initializes the application.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app.initDependencies()
	app.initServer()

	return app, nil
}

// initDatabase connects to the database and applies migrations.
func (app *App) initDatabase(ctx context.Context) error {
	if app.cfg.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI is required")
	}

	app.logger.Info("Running database migrations...")
	sqlDB, err := sql.Open("pgx", app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to open database connection: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Run(sqlDB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Info("Migrations completed successfully")

	dbPool, err := pgxpool.New(ctx, app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		return fmt.Errorf("unable to ping database: %w", err)
	}

	app.dbPool = dbPool
	app.logger.Info("Successfully connected to database")

	return nil
}

// initDependencies builds the storage, service and handler layers.
func (app *App) initDependencies() {
	// Storage layer
	userStorage := storage.NewPostgresUserStorage(app.dbPool)
	orderStorage := storage.NewPostgresOrderStorage(app.dbPool)
	photoStorage := storage.NewPostgresPhotoStorage(app.dbPool)
	discountStorage := storage.NewPostgresDiscountStorage(app.dbPool)
	shippingStore := storage.NewFileShippingStore(app.cfg.ShippingSettingsFile)

	// External clients
	mailer := mail.NewResendClient(app.cfg.ResendAPIKey, app.cfg.MailFrom, 10*time.Second)
	paypal := payment.NewClient(app.cfg.PayPalBaseURL, app.cfg.PayPalClientID, app.cfg.PayPalSecret, 15*time.Second)
	signer := secure.NewSigner(app.cfg.UploadSecret)

	// Service layer
	userService := services.NewUserService(userStorage, orderStorage, app.cfg.JWTSecret, app.cfg.TokenExpiration, app.logger)
	discountService := services.NewDiscountService(discountStorage)
	orderService := services.NewOrderService(orderStorage, discountService, shippingStore, paypal, mailer, app.logger)
	dashboardService := services.NewDashboardService(orderStorage, app.logger)
	contactService := services.NewContactService(mailer, app.cfg.ContactRecipient)
	photoService := services.NewPhotoService(photoStorage, signer, app.cfg.UploadDir, app.logger)

	// Handler layer
	app.authHandler = handlers.NewAuthHandler(userService, app.logger)
	app.orderHandler = handlers.NewOrderHandler(orderService, app.logger)
	app.adminHandler = handlers.NewAdminHandler(orderService, app.logger)
	app.dashboardHandler = handlers.NewDashboardHandler(dashboardService, app.logger)
	app.contactHandler = handlers.NewContactHandler(contactService, app.logger)
	app.photoHandler = handlers.NewPhotoHandler(photoService, app.logger)
	app.discountHandler = handlers.NewDiscountHandler(discountService, app.logger)
	app.shippingHandler = handlers.NewShippingHandler(shippingStore, app.logger)
}

// initServer configures the HTTP server and the routes.
func (app *App) initServer() {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			app.logger.Infow("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	// Public routes
	e.POST("/auth/login", app.authHandler.Login)
	e.POST("/auth/reset-password", app.authHandler.ResetPassword)
	e.POST("/contact", app.contactHandler.Send)
	e.GET("/dashboard/orders", app.dashboardHandler.GetOrders)
	e.POST("/orders", app.orderHandler.Checkout)
	e.POST("/orders/capture", app.orderHandler.Capture)
	e.GET("/orders/:orderNumber", app.orderHandler.GetByNumber)
	e.GET("/photos", app.photoHandler.List)
	e.DELETE("/photos", app.photoHandler.Delete)
	e.GET("/photos/:filename", app.photoHandler.Serve)
	e.POST("/secure-photo-url", app.photoHandler.SecureURL)
	e.POST("/upload", app.photoHandler.Upload)
	e.POST("/validate-discount", app.discountHandler.Validate)
	e.PUT("/validate-discount", app.discountHandler.Redeem)
	e.GET("/shipping/settings", app.shippingHandler.Get)

	// Admin routes
	admin := e.Group("/admin")
	admin.Use(auth.JWTMiddleware(app.cfg.JWTSecret), auth.RequireAdmin)
	admin.GET("/orders", app.adminHandler.ListOrders)
	admin.PATCH("/orders/:orderId/status", app.adminHandler.UpdateOrderStatus)
	admin.PUT("/shipping/settings", app.shippingHandler.Update)
	admin.POST("/discount-codes", app.discountHandler.Create)
	admin.GET("/discount-codes", app.discountHandler.List)
	admin.PATCH("/discount-codes/:id", app.discountHandler.SetActive)

	app.echo = e
}

// Start runs the HTTP server.
func (app *App) Start() error {
	app.logger.Infof("Starting server on %s", app.cfg.RunAddress)
	if err := app.echo.Start(app.cfg.RunAddress); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

// Shutdown stops the application gracefully.
func (app *App) Shutdown(ctx context.Context) error {
	app.logger.Info("Shutting down server...")

	if err := app.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if app.dbPool != nil {
		app.dbPool.Close()
	}

	app.logger.Info("Server gracefully stopped")
	return nil
}
