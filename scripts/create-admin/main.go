package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/internal/features/user"
	"github.com/jdverbeke/cinevault-server-go/pkg/config"
	"github.com/jdverbeke/cinevault-server-go/pkg/logger"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Failed to get SQL DB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	if err := sqlDB.PingContext(ctx); err != nil {
		appLogger.Error("Failed to ping database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger.Info("Database connection established")

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Admin email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		appLogger.Error("Failed to read email", slog.String("error", err.Error()))
		os.Exit(1)
	}
	email = strings.TrimSpace(email)

	fmt.Print("Admin password (min 8 characters): ")
	password, err := reader.ReadString('\n')
	if err != nil {
		appLogger.Error("Failed to read password", slog.String("error", err.Error()))
		os.Exit(1)
	}
	password = strings.TrimSpace(password)

	created, err := user.Create(db, user.CreateInput{
		Email:    email,
		Password: password,
		Role:     types.RoleAdmin,
	})
	if err != nil {
		appLogger.Error("Failed to create admin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("\nAdmin account created: %s (%s)\n", created.Email, created.ID)
}
