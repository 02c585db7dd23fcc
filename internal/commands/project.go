package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fintrack-dev/fintrack/internal/activitylog"
	"github.com/fintrack-dev/fintrack/internal/config"
	"github.com/fintrack-dev/fintrack/internal/finance"
	"github.com/fintrack-dev/fintrack/internal/importer"
	applog "github.com/fintrack-dev/fintrack/internal/log"
	"github.com/fintrack-dev/fintrack/internal/logic"
	"github.com/fintrack-dev/fintrack/internal/storage"
)

// project is an opened tracker directory: config, storage and the model
// loaded from it.
type project struct {
	dir      string
	cfg      *config.Config
	logger   *slog.Logger
	store    *storage.Store
	manager  *finance.Manager
	activity *activitylog.Log
	parser   *logic.Parser
	ctx      *logic.Context
	dirty    bool
	now      func() time.Time
}

func openProject(dir string, stderr io.Writer) (*project, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfgPath := filepath.Join(absDir, config.FileName)
	if _, err := os.Stat(cfgPath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no %s in %s, run fintrack init first", config.FileName, absDir)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := applog.New(stderr, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}

	store := storage.NewStore(
		resolve(absDir, cfg.Storage.RecordsFile),
		resolve(absDir, cfg.Storage.BudgetFile),
		cfg.Categories.CaseInsensitive,
	)
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading tracker: %w", err)
	}
	logger.Debug("tracker loaded", "dir", absDir, "records", state.Len(), "allocations", state.Ledger().Len())

	manager := finance.NewManager(state,
		finance.WithLogger(logger),
		finance.WithHistoryLimit(cfg.History.Limit),
	)

	p := &project{
		dir:     absDir,
		cfg:     cfg,
		logger:  logger,
		store:   store,
		manager: manager,
		parser:  logic.NewParser(cfg.DateFormat, nil),
		ctx: &logic.Context{
			Model:      manager,
			Currency:   cfg.Budget.Currency,
			DateFormat: cfg.DateFormat,
			Importers:  importer.DefaultRegistry(),
		},
		now: time.Now,
	}
	if cfg.Storage.ActivityLog != "" {
		p.activity = activitylog.New(resolve(absDir, cfg.Storage.ActivityLog))
	}
	manager.Subscribe(func(e finance.Event) {
		p.dirty = true
		logger.Debug("tracker changed", "kind", e.Kind.String(), "description", e.Description, "budget_changed", e.BudgetChanged)
	})
	return p, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// execute runs cmd, records input in the activity log and saves the
// tracker if cmd changed it.
func (p *project) execute(input string, cmd logic.Command) (logic.Result, error) {
	res, err := cmd.Execute(p.ctx)
	p.ctx.Inputs = append(p.ctx.Inputs, input)
	p.record(input, err)
	if err != nil {
		return res, err
	}
	if err := p.save(); err != nil {
		return res, err
	}
	return res, nil
}

// executeLine parses and runs one line of shell input.
func (p *project) executeLine(line string) (logic.Command, logic.Result, error) {
	cmd, err := p.parser.Parse(line)
	if err != nil {
		p.ctx.Inputs = append(p.ctx.Inputs, line)
		p.record(line, err)
		return nil, logic.Result{}, err
	}
	res, err := p.execute(line, cmd)
	return cmd, res, err
}

func (p *project) save() error {
	if !p.dirty {
		return nil
	}
	state := p.manager.Tracker()
	if err := p.store.Save(state); err != nil {
		return fmt.Errorf("saving tracker: %w", err)
	}
	p.dirty = false
	p.logger.Debug("tracker saved", "records", state.Len())
	return nil
}

func (p *project) record(input string, cmdErr error) {
	if p.activity == nil {
		return
	}
	entry := activitylog.Entry{Timestamp: p.now().UTC(), Input: input, Outcome: activitylog.OutcomeOK}
	if cmdErr != nil {
		entry.Outcome = activitylog.OutcomeError
		entry.Detail = cmdErr.Error()
	}
	if err := p.activity.Append(entry); err != nil {
		p.logger.Warn("writing activity log failed", "path", p.activity.Path(), "error", err)
	}
}
