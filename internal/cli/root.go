// Package cli is the todo command: scriptable subcommands plus the
// interactive list when run without one.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Makepad-fr/tada/internal/backend"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/printer"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// App carries the resolved settings shared by every subcommand.
type App struct {
	v   *viper.Viper
	cfg config.Config

	Quiet   bool // skip the listing after a change
	ShowIDs bool
	Group   bool
}

// NewRootCmd builds the todo command tree.
func NewRootCmd() *cobra.Command {
	app := &App{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "A tiny to-do list for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  todo

  # Scriptable commands
  todo add Buy milk
  todo ls --ids
  todo done 2
  todo mv 3 1
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(app.v)
		if err != nil {
			return err
		}
		app.cfg = cfg
		ui.SetTheme(cfg.Theme)
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.String("backend", config.DefaultBackend, "Storage backend ("+strings.Join(backend.Names(), "|")+")")
	pf.String("path", config.DefaultPath, "Data directory for file, diskv and sqlite backends and the TUI log")
	pf.String("key", config.DefaultKey, "Slot key inside the backend")
	pf.String("redis-addr", config.DefaultRedisAddr, "Redis address for the redis backend")
	pf.Int("redis-db", 0, "Redis database number")
	pf.String("log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	pf.String("theme", config.DefaultTheme, "Color theme (classic|neon|mono)")
	pf.BoolVarP(&app.Quiet, "quiet", "q", false, "Do not print the list after a change")
	pf.BoolVar(&app.ShowIDs, "ids", false, "Show item ids in listings")
	pf.BoolVar(&app.Group, "group", false, "Group listings by pending/done")

	for key, flag := range map[string]string{
		config.KeyBackend:   "backend",
		config.KeyPath:      "path",
		config.KeyKey:       "key",
		config.KeyRedisAddr: "redis-addr",
		config.KeyRedisDB:   "redis-db",
		config.KeyLogLevel:  "log-level",
		config.KeyTheme:     "theme",
	} {
		_ = app.v.BindPFlag(key, pf.Lookup(flag))
	}

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newUICmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the todo command and returns the process exit code.
func Execute(args []string) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fail(cmd.ErrOrStderr(), err.Error())
		return 1
	}
	return 0
}

// withController opens the configured slot, loads the collection and runs
// fn against it. Changes are listed on out unless the app is quiet.
func (app *App) withController(cmd *cobra.Command, fn func(c *todo.Controller) error) error {
	logger := logging.New(cmd.ErrOrStderr(), app.cfg.LogLevel)
	opts := []todo.Option{todo.WithLogger(logger)}
	if !app.Quiet {
		opts = append(opts, todo.WithRenderer(app.printer(cmd.OutOrStdout())))
	}
	return app.open(cmd.Context(), logger, opts, fn)
}

func (app *App) open(ctx context.Context, logger *log.Logger, opts []todo.Option, fn func(c *todo.Controller) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	slot, err := backend.Open(ctx, app.cfg)
	if err != nil {
		return err
	}
	st := store.New(slot, logger)
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("close slot", "err", err)
		}
	}()
	return fn(todo.New(st, opts...))
}

func (app *App) printer(out io.Writer) *printer.Pretty {
	return &printer.Pretty{Out: out, ShowID: app.ShowIDs, Group: app.Group}
}

func runTUI(cmd *cobra.Command, app *App) error {
	f, err := logging.OpenFile(app.cfg.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	logger := logging.New(f, app.cfg.LogLevel)
	logger.Info("starting", "backend", app.cfg.Backend, "config", app.cfg.File)
	return app.open(cmd.Context(), logger, []todo.Option{todo.WithLogger(logger)}, func(c *todo.Controller) error {
		return tui.Run(c, logger)
	})
}
