package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/config"
	"github.com/andresuchdata/fbaplan/backend-go/internal/planning"
	"github.com/andresuchdata/fbaplan/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/fbaplan/backend-go/internal/service"
	"github.com/andresuchdata/fbaplan/backend-go/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type dbKey struct{}

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func brandFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "brand",
		Usage:    "Brand to plan for",
		Required: true,
		EnvVars:  []string{"PLANNER_BRAND"},
	}
}

func todayFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "today",
		Usage: "Planning day as YYYY-MM-DD (defaults to the current day)",
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(c.Context); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey{}, postgres.Wrap(sqlx.NewDb(db, "pgx")))
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey{}).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) (*postgres.DB, error) {
	db, ok := c.Context.Value(dbKey{}).(*postgres.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func replenishment(c *cli.Context) (*service.ReplenishmentService, error) {
	db, err := dbFrom(c)
	if err != nil {
		return nil, err
	}

	repos := service.Repositories{
		Catalog:    postgres.NewCatalogRepository(db),
		Shipments:  postgres.NewShipmentRepository(db),
		Transport:  postgres.NewTransportConfigRepository(db),
		Promotions: postgres.NewPromotionRepository(db),
		Factory:    postgres.NewFactoryRepository(db),
	}
	return service.NewReplenishmentService(repos, nil, config.Load().Planning.TransportDefaults()), nil
}

func planningDay(c *cli.Context) (time.Time, error) {
	if value := c.String("today"); value != "" {
		return planning.ParseDate(value)
	}
	return planning.Today(config.Load().Planning.Location()), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	_ = godotenv.Load()
	logger.SetLevel(config.Load().Server.LogLevel)

	app := &cli.App{
		Name:  "planner",
		Usage: "Replenishment forecasts and plans for FBA brands",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create the planning tables",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runMigrate,
			},
			{
				Name:   "forecast",
				Usage:  "Print alert levels and stockout forecasts",
				Flags:  []cli.Flag{newDBURLFlag(), brandFlag(), todayFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runForecast,
			},
			{
				Name:  "stocking",
				Usage: "Print factory stocking suggestions for a month",
				Flags: []cli.Flag{
					newDBURLFlag(),
					brandFlag(),
					todayFlag(),
					&cli.StringFlag{
						Name:     "month",
						Usage:    "Target month as YYYY-MM",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runStocking,
			},
			{
				Name:   "promotions",
				Usage:  "List the promotions of a brand",
				Flags:  []cli.Flag{newDBURLFlag(), brandFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runPromotions,
			},
			{
				Name:  "promotion",
				Usage: "Print the surge plan of a promotion",
				Flags: []cli.Flag{
					newDBURLFlag(),
					brandFlag(),
					todayFlag(),
					&cli.Int64Flag{
						Name:     "promotion",
						Usage:    "Promotion ID",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runPromotion,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("planner failed")
	}
}

func runMigrate(c *cli.Context) error {
	db, err := dbFrom(c)
	if err != nil {
		return err
	}
	if err := db.Migrate(c.Context); err != nil {
		return err
	}
	logger.Log.Info().Msg("schema applied")
	return nil
}

func runForecast(c *cli.Context) error {
	svc, err := replenishment(c)
	if err != nil {
		return err
	}
	day, err := planningDay(c)
	if err != nil {
		return err
	}

	overview, err := svc.Overview(c.Context, c.String("brand"), day)
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}
	return writeJSON(c.App.Writer, overview)
}

func runStocking(c *cli.Context) error {
	svc, err := replenishment(c)
	if err != nil {
		return err
	}
	day, err := planningDay(c)
	if err != nil {
		return err
	}
	year, month, err := planning.ParseMonth(c.String("month"))
	if err != nil {
		return err
	}

	plan, err := svc.StockingPlan(c.Context, c.String("brand"), year, month, day)
	if err != nil {
		return fmt.Errorf("stocking plan: %w", err)
	}
	return writeJSON(c.App.Writer, plan)
}

func runPromotions(c *cli.Context) error {
	svc, err := replenishment(c)
	if err != nil {
		return err
	}

	promos, err := svc.Promotions(c.Context, c.String("brand"))
	if err != nil {
		return fmt.Errorf("promotions: %w", err)
	}
	return writeJSON(c.App.Writer, promos)
}

func runPromotion(c *cli.Context) error {
	svc, err := replenishment(c)
	if err != nil {
		return err
	}
	day, err := planningDay(c)
	if err != nil {
		return err
	}

	plan, err := svc.PromotionPlan(c.Context, c.String("brand"), c.Int64("promotion"), day)
	if err != nil {
		return fmt.Errorf("promotion plan: %w", err)
	}
	return writeJSON(c.App.Writer, plan)
}
