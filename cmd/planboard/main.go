package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alexanderramin/planboard/internal/cli"
	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/llm"
	"github.com/alexanderramin/planboard/internal/persistence"
	"github.com/alexanderramin/planboard/internal/planner"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/alexanderramin/planboard/internal/store"
	"github.com/mattn/go-isatty"
)

// shutdownTimeout bounds the final flush of queued saves.
const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// The routine file copy lives next to the database unless configured.
	dataDir := filepath.Dir(cfg.DBPath)
	routine := persistence.StaticPicker{Path: cfg.DataFile, Dir: dataDir}

	// Export and import prompt when interactive and otherwise need a path
	// on the command line.
	var prompt persistence.FilePicker = persistence.DeclinePicker{}
	if interactive {
		prompt = cli.PromptPicker{Dir: dataDir}
	}
	picker := &cli.PathPicker{Fallback: prompt}

	sync := persistence.New(persistence.NewSQLiteTier(database),
		persistence.WithFileTier(persistence.NewFileTier(routine)),
		persistence.WithPicker(picker),
		persistence.WithLogger(logger),
		persistence.WithWarningHandler(func(w *domain.PersistenceWarning) {
			fmt.Fprintln(os.Stderr, formatter.Dim(fmt.Sprintf(
				"note: could not update the %s copy (%v); the cached copy is up to date", w.Tier, w.Err)))
		}),
	)

	st := store.New(
		store.WithPersister(sync),
		store.WithPersistTimeout(cfg.PersistTimeout()),
		store.WithLogger(logger),
	)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.Close(ctx); err != nil {
			logger.Error("store_close_failed", "error", err.Error())
		}
		if err := sync.Close(ctx); err != nil {
			logger.Error("persistence_close_failed", "error", err.Error())
		}
	}()

	observer := service.NewLogUseCaseObserver(logger)
	plans := service.NewPlanService(newGenerator(cfg, st, logger), st, cfg.PlanTimeout(), observer)
	data := service.NewDataService(st, sync, observer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := data.Restore(ctx); err != nil {
		return fmt.Errorf("restoring project: %w", err)
	}

	app := &cli.App{
		Store:       st,
		Plans:       plans,
		Intake:      service.NewIntakeService(plans),
		Data:        data,
		Config:      cfg,
		Picker:      picker,
		Interactive: interactive,
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func newGenerator(cfg config.Config, st *store.Store, logger *slog.Logger) planner.Generator {
	if cfg.Generator == config.GeneratorLLM {
		llmCfg := llm.LoadConfig()
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		return planner.NewLLMGenerator(llmCfg, observer, st.AIConfig)
	}
	return &planner.StubGenerator{Delay: cfg.StubDelay()}
}
