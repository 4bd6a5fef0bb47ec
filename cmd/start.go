package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"are-we-consistent-yet/core/backend"
	"are-we-consistent-yet/core/config"
	"are-we-consistent-yet/core/loader"
	"are-we-consistent-yet/core/logger"
	"are-we-consistent-yet/core/middleware/auth"
	"are-we-consistent-yet/core/middleware/rayid"
	"are-we-consistent-yet/feature/runs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "are-we-consistent-yet/docs/swagger"
)

// @title are-we-consistent-yet API
// @version 1.0
// @description API for running object storage eventual consistency probes.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the consistency API server",
	Long:  `Starts the HTTP server that runs consistency probes on request and serves the run history.`,
	Run: func(cmd *cobra.Command, args []string) {
		properties, _ := cmd.Flags().GetString("properties")

		// 1. Load Configuration
		cfg, err := config.LoadConfig(".", properties)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Open run history (optional)
		var store *runs.Store
		if cfg.Database.Enabled {
			if s, err := openHistory(cfg); err != nil {
				logg.Warn("Run history unavailable", zap.Error(err))
			} else {
				store = s
				logg.Info("Connected to run history database", zap.String("driver", cfg.Database.Driver))
			}
		}

		// 4. Open storage
		b, err := backend.Open(cfg.Storage, cfg.Probe, logg)
		if err != nil {
			logg.Fatal("Failed to open storage", zap.Error(err))
		}
		defer b.Close()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 5. Register features
		mgr := loader.NewManager(logg)
		svc := runs.NewService(b, store, runs.Options{Defaults: cfg.Probe, Limits: cfg.Server}, logg)
		mgr.Register(runs.NewFeature(svc))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger is public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	startCmd.Flags().String("properties", "", "configuration file")
	RootCmd.AddCommand(startCmd)
}
