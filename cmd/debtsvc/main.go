package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jefer15/debt-management-back/internal/config"
	"github.com/jefer15/debt-management-back/internal/http/server"
	"github.com/jefer15/debt-management-back/internal/observability/logger"
	"github.com/jefer15/debt-management-back/internal/store/pg"
	migrations "github.com/jefer15/debt-management-back/migrations/postgres"
)

var version = "dev"

func main() {
	// .env es opcional; las variables ya presentes tienen prioridad
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:   "debtsvc",
		Short: "Backend de gestión de deudas personales",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "ruta a config.yaml (vacío = solo env)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones embebidas de PostgreSQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(configPath)
		},
	}

	root.AddCommand(serveCmd, migrateCmd)

	// sin subcomando, servir
	root.RunE = serveCmd.RunE

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

func runServe(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "debtsvc",
		Version:     version,
	})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := pg.Connect(ctx, cfg.Storage.DSN, pg.Options{
		MaxOpenConns:    int32(cfg.Storage.Postgres.MaxOpenConns),
		MinIdleConns:    int32(cfg.Storage.Postgres.MaxIdleConns),
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	handler, err := server.BuildHandler(cfg, store)
	if err != nil {
		return err
	}

	return server.Run(ctx, cfg, handler)
}

func runMigrate(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "debtsvc-migrate",
		Version:     version,
	})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := pg.Connect(ctx, cfg.Storage.DSN, pg.Options{})
	if err != nil {
		return err
	}
	defer store.Close()

	var fsys fs.FS = migrations.FS
	applied, err := pg.RunMigrations(ctx, store.Pool(), fsys)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	logger.L().Info("migrations applied", logger.Count(applied))
	return nil
}
