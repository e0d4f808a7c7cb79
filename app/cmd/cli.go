package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/de-scientist/brandson/app/configs"
	"github.com/de-scientist/brandson/app/db/seeders"
	"github.com/de-scientist/brandson/app/models/migrations"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func NewApp() *cli.Command {
	return &cli.Command{
		Name:  "brandson",
		Usage: "Brandson printing shop cart and checkout service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "optional dotenv file loaded before the environment",
			},
		},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API",
				Action: serveAction,
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, log, err := bootstrap(c)
					if err != nil {
						return err
					}
					defer log.Sync()

					db, err := configs.OpenConnection(cfg, log)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db.WithContext(ctx)); err != nil {
						return fmt.Errorf("migrate: %w", err)
					}
					log.Info("migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Load the printing catalog into the database",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, log, err := bootstrap(c)
					if err != nil {
						return err
					}
					defer log.Sync()

					db, err := configs.OpenConnection(cfg, log)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db.WithContext(ctx)); err != nil {
						return fmt.Errorf("migrate: %w", err)
					}
					n, err := seeders.DBSeed(ctx, db)
					if err != nil {
						return err
					}
					log.Info("catalog seeded", zap.Int("products", n))
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate session and CSRF keys in .env format",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "also write the keys to this file",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateSessionKeys(os.Stdout, c.String("out"))
				},
			},
		},
	}
}

func RunCli(ctx context.Context, args []string) error {
	return NewApp().Run(ctx, args)
}

func bootstrap(c *cli.Command) (*configs.Config, *zap.Logger, error) {
	cfg, err := configs.LoadEnv(c.String("env-file"))
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := configs.NewLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}
