package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/thalib/veil/cmd/veil/internal/config"
	"github.com/thalib/veil/cmd/veil/internal/constants"
	"github.com/thalib/veil/cmd/veil/internal/database"
	"github.com/thalib/veil/cmd/veil/internal/logging"
	"github.com/thalib/veil/cmd/veil/internal/users"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "path to configuration file (default: /etc/veil.conf)")
	seed := flag.Bool("seed", false, "create the users table and insert sample rows before dumping")
	logLevel := flag.String("log-level", "", "minimum log level (debug, info, warn, error); overrides config")
	flag.Parse()

	// Load configuration (file is optional, PERSONAL_DATA_DB_* env vars win)
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}

	// Initialize the global logger with the redaction stage wired in. Every
	// user row below is logged through this pipeline; no raw line is ever
	// written to a sink directly.
	logging.Init(logging.LoggerConfig{
		Level:        logging.Level(level),
		FilePath:     cfg.Logging.Path,
		DualOutput:   cfg.Logging.Path != "",
		ServiceName:  "veil",
		Version:      config.Version(),
		RedactFields: cfg.Redaction.Fields,
		Separator:    cfg.Redaction.Separator[0],
		Assign:       cfg.Redaction.Assign[0],
		Placeholder:  cfg.Redaction.Placeholder,
	})

	runID := logging.NewRunID()
	ctx := logging.SetRunID(context.Background(), runID)
	logger := logging.GetLogger().WithContext(ctx)

	// Connect to the database
	dbConfig := database.Config{
		ConnectionString: database.MySQLConnectionString(
			cfg.Database.Username, cfg.Database.Password,
			cfg.Database.Host, cfg.Database.Name),
	}

	driver, err := database.NewDriver(dbConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create database driver: %v\n", err)
		os.Exit(1)
	}

	connectCtx, cancel := context.WithTimeout(ctx, constants.ConnectTimeout)
	defer cancel()
	if err := driver.Connect(connectCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer driver.Close()

	logger.Debugf("connected to %s database %s", driver.Dialect(), cfg.Database.Name)

	store := users.NewStore(driver)

	queryTimeout := time.Duration(cfg.Database.QueryTimeout) * time.Second
	queryCtx, cancelQuery := context.WithTimeout(ctx, queryTimeout)
	defer cancelQuery()

	if *seed {
		if err := store.EnsureSchema(queryCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create users schema: %v\n", err)
			os.Exit(1)
		}
		n, err := store.Seed(queryCtx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed users: %v\n", err)
			os.Exit(1)
		}
		logger.Infof("seeded %d sample users", n)
	}

	exists, err := driver.TableExists(queryCtx, constants.TableUsers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to inspect database: %v\n", err)
		os.Exit(1)
	}
	if !exists {
		fmt.Fprintf(os.Stderr, "Table %q does not exist in database %s\n", constants.TableUsers, cfg.Database.Name)
		os.Exit(1)
	}

	// Stream the rows. Each raw line goes straight into the redacting
	// logger; on failure mid-iteration everything already emitted went
	// through redaction, so no partial raw line can have leaked.
	if err := store.ForEach(queryCtx, func(line string) error {
		logger.Info(line)
		return nil
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read users: %v\n", err)
		os.Exit(1)
	}
}
