package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/boardwalklabs/tycoon/internal/config"
	"github.com/boardwalklabs/tycoon/internal/db/sqlite"
	"github.com/boardwalklabs/tycoon/internal/game/board"
	"github.com/boardwalklabs/tycoon/internal/report"
	"github.com/boardwalklabs/tycoon/internal/sim"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Command line flags mirror the main configuration knobs
	flags := pflag.NewFlagSet("tycoon", pflag.ExitOnError)
	configFile := flags.String("config", "", "path to a configuration file")
	jsonOut := flags.Bool("json", false, "emit the report as JSON")
	history := flags.Bool("history", false, "list archived runs and exit")
	flags.Int("games", 50, "number of games to play")
	flags.Int("max-turns", 1000, "turn limit per game")
	flags.Int64("seed", 0, "master seed (0 draws a fresh one)")
	flags.Int("workers", 0, "concurrent games (0 uses every CPU)")
	flags.String("board", "", "path to a custom board file")
	flags.String("archive", "", "path to the run archive database")
	flags.Bool("verbose", false, "log per-turn game activity")
	_ = flags.Parse(os.Args[1:])

	// Flags override file and environment values
	_ = viper.BindPFlag("simulation.games", flags.Lookup("games"))
	_ = viper.BindPFlag("simulation.max_turns", flags.Lookup("max-turns"))
	_ = viper.BindPFlag("simulation.seed", flags.Lookup("seed"))
	_ = viper.BindPFlag("simulation.workers", flags.Lookup("workers"))
	_ = viper.BindPFlag("simulation.board_file", flags.Lookup("board"))
	_ = viper.BindPFlag("simulation.verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("archive.path", flags.Lookup("archive"))

	// Initialize logger
	logger, err := newLogger(false)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Load configuration
	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.LoadFile(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		sugar.Fatalf("Failed to load configuration: %v", err)
	}

	// Verbose mode logs every turn of every game
	if cfg.Simulation.Verbose {
		verboseLogger, err := newLogger(true)
		if err != nil {
			sugar.Fatalf("Failed to initialize logger: %v", err)
		}
		defer verboseLogger.Sync()
		sugar = verboseLogger.Sugar()
	}

	if *history {
		if cfg.Archive.Path == "" {
			sugar.Fatal("History requires an archive path")
		}
		archive, err := sqlite.Open(cfg.Archive.Path)
		if err != nil {
			sugar.Fatalf("Failed to open archive: %v", err)
		}
		defer archive.Close()

		runs, err := archive.Runs(context.Background())
		if err != nil {
			sugar.Fatalf("Failed to list archived runs: %v", err)
		}
		printHistory(os.Stdout, runs)
		return
	}

	// Load the board; a nil catalog plays on the standard one
	var catalog *board.Catalog
	if cfg.Simulation.BoardFile != "" {
		catalog, err = board.LoadFile(cfg.Simulation.BoardFile)
		if err != nil {
			sugar.Fatalf("Failed to load board file: %v", err)
		}
		sugar.Infof("Loaded %d properties from %s", catalog.Len(), cfg.Simulation.BoardFile)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := sim.NewRunner(cfg, catalog, sugar)
	if err != nil {
		sugar.Fatalf("Failed to initialize runner: %v", err)
	}

	results, err := runner.Run(ctx)
	if err != nil {
		sugar.Fatalf("Simulation failed: %v", err)
	}

	agg := sim.Summarize(results.Games)

	if *jsonOut {
		if err := report.WriteJSON(os.Stdout, results, agg); err != nil {
			sugar.Fatalf("Failed to write JSON report: %v", err)
		}
	} else {
		report.Write(os.Stdout, results, agg)
	}

	// Archive the run when a database path is configured
	if cfg.Archive.Path != "" {
		archive, err := sqlite.Open(cfg.Archive.Path)
		if err != nil {
			sugar.Fatalf("Failed to open archive: %v", err)
		}
		if err := archive.RecordRun(ctx, results, agg); err != nil {
			_ = archive.Close()
			sugar.Fatalf("Failed to archive run: %v", err)
		}
		if err := archive.Close(); err != nil {
			sugar.Errorf("Failed to close archive: %v", err)
		}
		sugar.Infof("Archived run %s to %s", results.Tag, cfg.Archive.Path)
	}
}

// newLogger builds a console logger; verbose mode keeps debug output.
func newLogger(verbose bool) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zapCfg.Build()
}

// printHistory renders the archived run list, newest first.
func printHistory(w io.Writer, runs []sqlite.RunInfo) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No archived runs.")
		return
	}
	fmt.Fprintf(w, "%-36s  %-6s  %-20s  %6s  %10s  %9s\n",
		"RUN", "TAG", "CREATED", "GAMES", "AVG TURNS", "ELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%-36s  %-6s  %-20s  %6d  %10.1f  %9s\n",
			run.ID, run.Tag, run.CreatedAt.UTC().Format(time.RFC3339),
			run.Games, run.AvgTurns, run.Elapsed.Round(time.Millisecond))
	}
}
