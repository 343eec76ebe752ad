package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"complianceconnect.backend/internal/config"
	"complianceconnect.backend/internal/domain/repositories"
	"complianceconnect.backend/internal/infrastructure/datasources"
	"complianceconnect.backend/internal/infrastructure/seed"
)

type seedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	open    func(cfg config.DatabaseConfig) (repositories.Storage, datasources.CloseFunc, error)
	out     io.Writer
}

func defaultSeedDeps() seedDeps {
	return seedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		open:    datasources.OpenStorage,
		out:     os.Stdout,
	}
}

// runSeed migrates the configured database and loads the demo fixtures when
// it holds no users yet.
func runSeed(args []string, deps seedDeps) error {
	def := defaultSeedDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.open == nil {
		deps.open = def.open
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	driverFlag := fs.String("driver", "", "storage driver override (postgres or sqlite)")
	urlFlag := fs.String("url", "", "DATABASE_URL override")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	if *driverFlag != "" {
		cfg.Database.Driver = *driverFlag
	}
	if *urlFlag != "" {
		cfg.Database.URL = *urlFlag
	}
	if cfg.Database.Driver == config.DriverMemory {
		return fmt.Errorf("nothing to seed: the memory driver does not persist")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	storage, closeFn, err := deps.open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = closeFn() }()

	seeded, err := seed.Run(context.Background(), storage)
	if err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}

	if !seeded {
		_, _ = fmt.Fprintln(deps.out, "Database already has users, nothing seeded")
		return nil
	}
	_, _ = fmt.Fprintln(deps.out, "Seeded demo marketplace")
	_, _ = fmt.Fprintf(deps.out, "admin=%s\n", seed.AdminEmail)
	_, _ = fmt.Fprintf(deps.out, "business=%s\n", seed.BusinessEmail)
	_, _ = fmt.Fprintf(deps.out, "password=%s\n", seed.DefaultPassword)
	return nil
}

func main() {
	if err := runSeed(os.Args[1:], defaultSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
