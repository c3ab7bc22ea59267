// Command create-admin adds an administrator account to the user collection.
package main

import (
	"context"
	"errors"
	"flag"
	"strings"
	"time"

	"go.uber.org/zap"

	"hotel-api/config"
	"hotel-api/models"
	"hotel-api/services"
)

func main() {
	name := flag.String("name", "Admin", "display name")
	email := flag.String("email", "admin@example.com", "login email")
	password := flag.String("password", "", "login password (required)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if *password == "" {
		logger.Fatal("-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	if cfg.InMemory() {
		logger.Fatal("create-admin needs a database; DB_DRIVER=memory keeps nothing")
	}
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal("database connect failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := services.NewGormCollection[models.User](db)
	addr := strings.ToLower(strings.TrimSpace(*email))
	if _, err := users.FindOne(ctx, services.Filter{"email": addr}); err == nil {
		logger.Fatal("user already exists", zap.String("email", addr))
	} else if !errors.Is(err, services.ErrNotFound) {
		logger.Fatal("lookup failed", zap.Error(err))
	}

	hash, err := services.HashPassword(*password)
	if err != nil {
		logger.Fatal("hash password", zap.Error(err))
	}
	admin := models.User{Name: *name, Email: addr, Password: hash, Role: models.RoleAdmin}
	if err := users.Create(ctx, &admin); err != nil {
		logger.Fatal("create admin failed", zap.Error(err))
	}
	logger.Info("admin created", zap.String("id", admin.ID), zap.String("email", addr))
}
