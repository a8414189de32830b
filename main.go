// main.go - Entry point for the catalog backend server

package main // Declares the package name

import ( // Import required packages
	"context"   // Startup and shutdown deadlines
	"errors"    // http.ErrServerClosed
	"net/http"  // HTTP server
	"os"        // Exit codes and signals
	"os/signal" // Graceful shutdown
	"syscall"   // SIGTERM

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/joho/godotenv" // Optional .env file

	"go-catalog-backend/auth"       // Login and tokens
	"go-catalog-backend/catalog"    // Category and product rules
	"go-catalog-backend/config"     // Project config management
	"go-catalog-backend/database"   // Database connection and setup
	"go-catalog-backend/handlers"   // HTTP handlers for API endpoints
	"go-catalog-backend/logger"     // Structured logging
	"go-catalog-backend/middleware" // Rate limiting and metrics
	"go-catalog-backend/mqtt"       // Catalog event publishing
)

func main() { // Main function, program entry point
	if err := run(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// STEP 1: Load configuration and establish connections
	_ = godotenv.Load() // A missing .env is fine; real env vars win
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	gin.SetMode(gin.ReleaseMode)

	db, err := database.Connect(cfg) // Connect to the database and migrate
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	users := database.NewUsersRepository(db)
	ctx := context.Background()
	if err := database.SeedStaff(ctx, users, database.StaffAccounts(cfg)); err != nil {
		return err
	}

	authSvc := auth.NewService(users, auth.Config{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	})

	opts := []catalog.Option{catalog.WithStrictCategories(cfg.StrictCategories)}
	if cfg.MQTTBroker != "" { // Events are optional
		pub, client, err := mqtt.Connect(mqtt.Options{
			Broker:      cfg.MQTTBroker,
			ClientID:    cfg.MQTTClientID,
			TopicPrefix: cfg.MQTTTopicPrefix,
		})
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		opts = append(opts, catalog.WithPublisher(pub), catalog.WithPublishTimeout(cfg.MQTTPublishTimeout))
	} else {
		logger.Info("MQTT_BROKER not set, catalog events disabled")
	}
	catalogSvc := catalog.NewService(database.NewCatalogRepository(db), opts...)

	limiter, err := middleware.RateLimit(cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	// STEP 2: Create Gin router and configure routes
	router := handlers.NewRouter(handlers.Deps{
		Catalog:      catalogSvc,
		Auth:         authSvc,
		Metrics:      middleware.NewMetrics(),
		LoginLimiter: limiter,
		DB:           sqlDB,
		CORSOrigins:  cfg.CORSOrigins,
	})

	// STEP 3: Start the web server and wait for a signal
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "db", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case sig := <-sigc:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
