package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-api/config"
	"hotel-api/controllers"
	"hotel-api/models"
	"hotel-api/routes"
	"hotel-api/services"
)

type stores struct {
	users    services.Collection[models.User]
	rooms    services.Collection[models.Room]
	bookings services.Collection[models.Booking]
	menu     services.Collection[models.MenuItem]
	orders   services.Collection[models.Order]
	events   services.Collection[models.Event]
	close    func()
}

func openStores(cfg *config.Config) (*stores, error) {
	if cfg.InMemory() {
		return memoryStores()
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return &stores{
		users:    services.NewGormCollection[models.User](db),
		rooms:    services.NewGormCollection[models.Room](db),
		bookings: services.NewGormCollection[models.Booking](db),
		menu:     services.NewGormCollection[models.MenuItem](db),
		orders:   services.NewGormCollection[models.Order](db),
		events:   services.NewGormCollection[models.Event](db),
		close: func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		},
	}, nil
}

func memoryStores() (*stores, error) {
	st := &stores{close: func() {}}
	var err error
	if st.users, err = services.NewMemoryCollection[models.User](); err != nil {
		return nil, err
	}
	if st.rooms, err = services.NewMemoryCollection[models.Room](); err != nil {
		return nil, err
	}
	if st.bookings, err = services.NewMemoryCollection[models.Booking](); err != nil {
		return nil, err
	}
	if st.menu, err = services.NewMemoryCollection[models.MenuItem](); err != nil {
		return nil, err
	}
	if st.orders, err = services.NewMemoryCollection[models.Order](); err != nil {
		return nil, err
	}
	if st.events, err = services.NewMemoryCollection[models.Event](); err != nil {
		return nil, err
	}
	return st, nil
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	st, err := openStores(cfg)
	if err != nil {
		logger.Fatal("database connect failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer st.close()
	logger.Info("store ready", zap.String("driver", cfg.DBDriver))

	// Capabilities
	files := services.NewLocalStorage(cfg.UploadDir, "/uploads")
	var uploader services.Uploader = files
	if cfg.RemoteUploads() {
		remote, err := services.NewCloudinaryUploader(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudAPISecret, cfg.CloudFolder)
		if err != nil {
			logger.Fatal("object storage init failed", zap.Error(err))
		}
		uploader = remote
		logger.Info("uploads go to object storage", zap.String("folder", cfg.CloudFolder))
	} else {
		logger.Info("uploads go to local disk", zap.String("dir", cfg.UploadDir))
	}
	auth := services.NewAuthService(st.users, cfg.JWTSecret, cfg.TokenTTL)

	router := routes.SetupRouter(routes.Deps{
		Log:       logger,
		Origins:   cfg.AllowedOrigins(),
		UploadDir: cfg.UploadDir,
		Auth:      auth,
		AuthCtrl:  controllers.NewAuthController(auth, logger),
		Rooms:     controllers.NewRoomController(st.rooms, uploader, logger),
		Bookings:  controllers.NewBookingController(st.bookings, logger),
		Menu:      controllers.NewMenuController(st.menu, uploader, files, logger),
		Orders:    controllers.NewOrderController(st.orders, logger),
		Events:    controllers.NewEventController(st.events, uploader, logger),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
