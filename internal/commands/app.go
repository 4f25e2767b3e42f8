package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/expensenote/expensenote/internal/catalog"
	"github.com/expensenote/expensenote/internal/clock"
	"github.com/expensenote/expensenote/internal/config"
	"github.com/expensenote/expensenote/internal/ledger"
	"github.com/expensenote/expensenote/internal/logging"
	"github.com/expensenote/expensenote/internal/model"
	"github.com/expensenote/expensenote/internal/notify"
	"github.com/expensenote/expensenote/internal/store"
)

// SQLiteFile is the database file name used by the sqlite backend.
const SQLiteFile = "expensenote.db"

type rootOptions struct {
	configPath string
	dataDir    string
	backend    string
	clock      clock.Clock
}

func defaultConfigHint() string {
	return filepath.Join("$XDG_CONFIG_HOME", "expensenote", config.FileName)
}

func (o *rootOptions) path() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.DefaultPath()
}

// loadConfig reads the config file, then .env next to it, then the
// environment, then command-line flags. Later sources win.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.path()
	if err := config.LoadEnvFiles(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(cfg)
	if o.dataDir != "" {
		cfg.Storage.Path = o.dataDir
	}
	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app is everything one command invocation needs.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	session *ledger.Session
	backend store.Backend
	loc     *time.Location
}

func (o *rootOptions) open(cmd *cobra.Command) (*app, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return nil, err
	}
	weekday, err := cfg.Notifications.WeekdayValue()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Notifications.Location()
	if err != nil {
		return nil, err
	}

	backend, err := openBackend(cfg.Storage)
	if err != nil {
		return nil, err
	}
	st := store.New(backend, store.WithKey(cfg.Storage.Key), store.WithLogger(log))

	session, err := ledger.Open(cmd.Context(), st,
		ledger.WithClock(o.clock),
		ledger.WithLogger(log),
		ledger.WithScheduler(&notify.Scheduler{Weekday: weekday, Location: loc}),
	)
	if err != nil {
		_ = backend.Close()
		if errors.Is(err, store.ErrCorrupt) {
			return nil, fmt.Errorf("%w; stored data was left untouched", err)
		}
		return nil, err
	}
	cmd.SetContext(logging.WithContext(cmd.Context(), log))

	return &app{cfg: cfg, log: log, session: session, backend: backend, loc: loc}, nil
}

func (a *app) Close() error {
	return a.backend.Close()
}

func openBackend(sc config.StorageConfig) (store.Backend, error) {
	switch sc.Backend {
	case config.BackendFile:
		return store.NewFileBackend(sc.Path), nil
	case config.BackendSQLite:
		b, err := store.OpenSQLite(filepath.Join(sc.Path, SQLiteFile))
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.BackendMemory:
		return store.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
	}
}

// withApp opens the app for the duration of fn.
func (o *rootOptions) withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := o.open(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil {
				a.log.Warn().Err(cerr).Msg("closing storage")
			}
		}()
		return fn(cmd, a, args)
	}
}

func (a *app) lang() model.Language {
	return a.session.State().Language
}

func (a *app) localDate(t time.Time) string {
	return t.In(a.loc).Format(notify.DateLayout)
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func entryLabel(e catalog.Entry, lang model.Language) string {
	return e.Icon + " " + e.Name(lang)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
