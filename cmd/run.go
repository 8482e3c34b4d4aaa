package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/wizquest/internal/config"
	"github.com/abhisek/wizquest/internal/play"
	"github.com/abhisek/wizquest/internal/problemgen"
	"github.com/abhisek/wizquest/internal/session"
	"github.com/abhisek/wizquest/internal/store"
	"github.com/abhisek/wizquest/internal/wordbank"
)

// runtime bundles what most commands need: settings, a logger, the store
// and the word catalog.
type runtime struct {
	cfg     *config.Config
	log     *slog.Logger
	store   *store.Store
	catalog *wordbank.Catalog

	closers []io.Closer
}

// openRuntime loads the configuration, opens the log file and the
// database, and loads the word catalog.
func openRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg}
	if err := rt.open(cmd); err != nil {
		return nil, errors.Join(err, rt.Close())
	}
	return rt, nil
}

func (rt *runtime) open(cmd *cobra.Command) error {
	logger, logCloser, err := rt.cfg.OpenLogger()
	if err != nil {
		return err
	}
	rt.log = logger
	rt.closers = append(rt.closers, logCloser)

	if rt.catalog, err = loadCatalog(rt.cfg.WordsFile); err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd, rt.cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	if rt.store, err = store.Open(dbPath); err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	rt.closers = append(rt.closers, rt.store)

	rt.log.Debug("runtime ready", "db", dbPath, "words", rt.catalog.Total())
	return nil
}

// Close releases the store and the log file.
func (rt *runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i].Close())
	}
	return errors.Join(errs...)
}

// deps builds the game dependencies. A zero seed falls back to the
// configured one; if that is zero too the session seeds from the clock.
func (rt *runtime) deps(seed uint64) play.Deps {
	if seed == 0 {
		seed = rt.cfg.Seed
	}
	return play.Deps{
		Profiles: rt.store.ProfileRepo(),
		Events:   rt.store.EventRepo(),
		Logger:   rt.log,
		Session: session.Options{
			Rand:         newRand(seed),
			Catalog:      rt.catalog,
			Generation:   problemgen.DefaultConfig(),
			RecentWindow: rt.cfg.RecentWindow,
		},
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// loadCatalog returns the embedded catalog, merged with path when set.
func loadCatalog(path string) (*wordbank.Catalog, error) {
	catalog := wordbank.Default()
	if path == "" {
		return catalog, nil
	}
	extra, err := wordbank.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	return catalog.Merge(extra), nil
}
