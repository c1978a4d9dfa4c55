package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfBooking/internal/config"
	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	"github.com/m04kA/SMC-TurfBooking/internal/infra/storage/migrations"
	turfRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/turf"
	"github.com/m04kA/SMC-TurfBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBooking/pkg/logger"
	"github.com/m04kA/SMC-TurfBooking/pkg/txmanager"
)

// TurfRepository интерфейс репозитория площадок
type TurfRepository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, turf *domain.Turf) (*domain.Turf, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Пишем только в stdout
	log := logger.NewWithWriter(os.Stdout, cfg.Logs.Level)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	wrappedDB := dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	if err := migrations.Up(ctx, wrappedDB, txmanager.NewTransactionManager(wrappedDB), log); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}

	created, err := seed(ctx, turfRepo.NewRepository(wrappedDB), log)
	if err != nil {
		log.Fatal("Failed to seed turfs: %v", err)
	}
	log.Info("Seeding finished: created=%d", created)
}

// seed заполняет каталог демо-площадками, если он пуст
func seed(ctx context.Context, repo TurfRepository, log Logger) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count turfs: %w", err)
	}
	if count > 0 {
		log.Info("Catalog already has %d turfs, skipping", count)
		return 0, nil
	}

	created := 0
	for _, t := range demoTurfs() {
		saved, err := repo.Create(ctx, t)
		if err != nil {
			return created, fmt.Errorf("create turf %q: %w", t.Name, err)
		}
		log.Info("Created turf id=%d: %s (%s)", saved.ID, saved.Name, saved.Location)
		created++
	}

	return created, nil
}

func demoTurfs() []*domain.Turf {
	return []*domain.Turf{
		{Name: "The Arena", Location: "Sector 29, Gurgaon", PricePerHour: decimal.NewFromInt(1200)},
		{Name: "Hat-Trick Sports", Location: "Vasant Kunj, Delhi", PricePerHour: decimal.NewFromInt(1500), IsResidential: true},
		{Name: "Skyline Rooftop", Location: "Bandra West, Mumbai", PricePerHour: decimal.NewFromInt(2500)},
		{Name: "Dribble Down", Location: "Koramangala, Bangalore", PricePerHour: decimal.NewFromInt(1800), IsResidential: true},
		{Name: "Goalazo Pitch", Location: "Salt Lake, Kolkata", PricePerHour: decimal.NewFromInt(900)},
		{Name: "Urban Kicks", Location: "Jubilee Hills, Hyderabad", PricePerHour: decimal.NewFromInt(2200)},
	}
}
