package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Dosada05/swiss-tournament/db"
	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "migrate",
		Usage: "database migrations for the swiss tournament service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Postgres DSN",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(m *migrate.Migrate) error {
						if err := m.Up(); err != nil {
							if errors.Is(err, migrate.ErrNoChange) {
								fmt.Println("No new migrations to run")
								return nil
							}
							return err
						}
						return printVersion(m)
					})
				},
			},
			{
				Name:  "down",
				Usage: "roll back the given number of migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "how many migrations to roll back"},
				},
				Action: func(c *cli.Context) error {
					steps := c.Int("steps")
					if steps <= 0 {
						return fmt.Errorf("steps must be positive, got %d", steps)
					}
					return withMigrator(c, func(m *migrate.Migrate) error {
						if err := m.Steps(-steps); err != nil {
							return err
						}
						return printVersion(m)
					})
				},
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: func(c *cli.Context) error {
					return withMigrator(c, printVersion)
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func withMigrator(c *cli.Context, fn func(m *migrate.Migrate) error) error {
	m, err := db.NewMigrator(c.String("database-url"))
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func printVersion(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("No migrations applied")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Schema version: %d (dirty: %t)\n", version, dirty)
	return nil
}
