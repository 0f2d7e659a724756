// cmd/seed/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/andresuchdata/stockpilot/internal/cache"
	"github.com/andresuchdata/stockpilot/internal/config"
	"github.com/andresuchdata/stockpilot/internal/engine"
	"github.com/andresuchdata/stockpilot/internal/repository"
	"github.com/andresuchdata/stockpilot/internal/repository/jsonfile"
	"github.com/andresuchdata/stockpilot/internal/repository/postgres"
	"github.com/andresuchdata/stockpilot/internal/service"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newRepo(c *cli.Context) (repository.ActionLogRepository, func(), error) {
	cfg := config.Load()

	backend := c.String("backend")
	if backend == "" {
		backend = cfg.Storage.Backend
	}

	switch backend {
	case "postgres":
		db, err := postgres.NewDB(&cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repo, err := postgres.NewActionLogRepository(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { db.Close() }, nil
	default:
		path := c.String("file")
		if path == "" {
			path = cfg.Storage.FilePath
		}
		store, err := jsonfile.NewStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func newBackendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "backend",
			Usage:   "Action log backend (jsonfile or postgres)",
			EnvVars: []string{"STORAGE_BACKEND"},
		},
		&cli.StringFlag{
			Name:    "file",
			Usage:   "Path to the jsonfile store",
			EnvVars: []string{"STORAGE_FILE_PATH"},
		},
	}
}

func runSample(c *cli.Context) error {
	repo, cleanup, err := newRepo(c)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := config.Load()
	actionService := service.NewActionService(repo, engine.NewSimulator(engine.NewRand()), cfg.Engine.DefaultOwner, cache.NewNoopSummaryCache())
	if err := actionService.SeedSampleLogs(context.Background()); err != nil {
		return fmt.Errorf("failed to seed sample logs: %w", err)
	}

	fmt.Println("sample action logs seeded")
	return nil
}

func runClear(c *cli.Context) error {
	repo, cleanup, err := newRepo(c)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := repo.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear action logs: %w", err)
	}

	fmt.Println("action logs cleared")
	return nil
}

func runGenerate(c *cli.Context) error {
	count := c.Int("count")
	if count <= 0 {
		count = config.Load().Engine.ItemCount
	}

	items := engine.NewGenerator(engine.NewRand()).Generate(count)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Manage the action log store and generate item fixtures",
		Commands: []*cli.Command{
			{
				Name:   "sample",
				Usage:  "Seed the three sample action logs (no-op when the store has data)",
				Flags:  newBackendFlags(),
				Action: runSample,
			},
			{
				Name:   "clear",
				Usage:  "Delete all action logs",
				Flags:  newBackendFlags(),
				Action: runClear,
			},
			{
				Name:  "generate",
				Usage: "Generate inventory items and print them as JSON",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Usage:   "Number of items to generate",
						EnvVars: []string{"ENGINE_ITEM_COUNT"},
					},
				},
				Action: runGenerate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
