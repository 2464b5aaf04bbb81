// Package runtime provides the application runtime context for Countdown.
package runtime

import (
	"os"

	"github.com/kihana2077/countdown/internal/clock"
	"github.com/kihana2077/countdown/internal/commands"
	"github.com/kihana2077/countdown/internal/config"
	"github.com/kihana2077/countdown/internal/output"
	"github.com/kihana2077/countdown/internal/parser"
	"github.com/kihana2077/countdown/internal/storage"
)

// Context holds the application runtime context.
type Context struct {
	DB        *storage.DB
	Config    *config.Config
	Clock     clock.Clock
	Repo      *storage.CountdownRepo
	Handler   *commands.Handler
	Formatter *output.Formatter
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context: config from the environment, the
// store opened at the configured path, and the command handler wired up.
func New(opts Options) (*Context, error) {
	if envPath := os.Getenv("COUNTDOWN_DATABASE"); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	}

	cfg := config.Load()
	clk := clock.System{}

	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	repo := storage.NewCountdownRepo(db, clk, cfg.Store)

	parserOpts := []parser.Option{parser.WithFormats(cfg.Parser.Formats)}
	if cfg.Parser.NaturalLanguage {
		parserOpts = append(parserOpts, parser.WithNaturalLanguage())
	}
	dateParser := parser.NewDateParser(clk, parserOpts...)

	handler := commands.NewHandler(repo, dateParser, clk, cfg.Store.MaxPerOwner)

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		DB:        db,
		Config:    cfg,
		Clock:     clk,
		Repo:      repo,
		Handler:   handler,
		Formatter: formatter,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
