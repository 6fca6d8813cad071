package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/internal/features/license"
	"github.com/jdverbeke/cinevault-server-go/pkg/config"
	"github.com/jdverbeke/cinevault-server-go/pkg/logger"
)

func main() {
	count := flag.Int("count", 1, "number of license keys to generate (1-100)")
	durationDays := flag.Int("duration-days", 0, "license validity in days after claim (0 = perpetual)")
	note := flag.String("note", "", "optional note stored on each generated license")
	flag.Parse()

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

	input := license.GenerateInput{Count: *count}
	if *durationDays > 0 {
		input.DurationDays = durationDays
	}
	if *note != "" {
		input.Note = note
	}

	licenses, err := license.Generate(db, input)
	if err != nil {
		appLogger.Error("Failed to generate licenses", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("\nGenerated %d license key(s):\n", len(licenses))
	for _, lic := range licenses {
		fmt.Println(lic.Key)
	}
}
