package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/chronomap/internal/cli"
	"github.com/alexanderramin/chronomap/internal/credentials"
	"github.com/alexanderramin/chronomap/internal/db"
	"github.com/alexanderramin/chronomap/internal/locale"
	"github.com/alexanderramin/chronomap/internal/osm"
	"github.com/alexanderramin/chronomap/internal/repository"
	"github.com/alexanderramin/chronomap/internal/rovas"
	"github.com/alexanderramin/chronomap/internal/service"
	"github.com/alexanderramin/chronomap/internal/timer"
	"github.com/alexanderramin/chronomap/internal/watcher"
)

// reportLogRetention caps the local audit trail.
const reportLogRetention = 500

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.chronomap/chronomap.db
	dbPath := os.Getenv("CHRONOMAP_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".chronomap", "chronomap.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	credRepo := repository.NewSQLiteCredentialRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	reportLogRepo := repository.NewRetainedReportLog(database, uow, reportLogRetention)
	credStore := credentials.NewStore(credRepo)

	rovasCfg := rovas.LoadConfig()
	var rovasObserver rovas.Observer = rovas.NoopObserver{}
	if rovasCfg.LogCalls {
		rovasObserver = rovas.NewLogObserver(os.Stderr)
	}
	accounting := rovas.NewClient(rovasCfg, rovasObserver)

	metadata := osm.NewClient(osm.LoadConfig())

	tr := locale.NewTranslator(os.Getenv("CHRONOMAP_LANG"))
	bridge := cli.NewUIBridge()

	controller := service.NewSessionController(
		timer.New(),
		credStore,
		metadata,
		accounting,
		bridge,
		bridge,
		reportLogRepo,
		tr,
		service.NewLogPipelineObserver(os.Stderr),
	)

	app := &cli.App{
		Sessions:    controller,
		Credentials: credStore,
		History:     reportLogRepo,
		Watcher:     watcher.New(),
		Bridge:      bridge,
		Locale:      tr,
		IsTTY:       isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	return cli.NewRootCmd(app).Execute()
}
