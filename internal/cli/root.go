// Package cli is the launcher command line. The bare command starts the
// interactive launcher; subcommands script the same tree file.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/app"
	"github.com/Bladetrain3r/Magic-Launcher/internal/config"
	"github.com/Bladetrain3r/Magic-Launcher/internal/history"
	"github.com/Bladetrain3r/Magic-Launcher/internal/launch"
	"github.com/Bladetrain3r/Magic-Launcher/internal/logging"
	"github.com/Bladetrain3r/Magic-Launcher/internal/search"
	"github.com/Bladetrain3r/Magic-Launcher/internal/session"
	"github.com/Bladetrain3r/Magic-Launcher/internal/socket"
	"github.com/Bladetrain3r/Magic-Launcher/internal/storage"
	"github.com/Bladetrain3r/Magic-Launcher/internal/template"
	"github.com/Bladetrain3r/Magic-Launcher/internal/theme"
	"github.com/Bladetrain3r/Magic-Launcher/internal/ui"
)

// GlobalFlags are the persistent flags shared by every command
type GlobalFlags struct {
	ConfigPath string
	File       string
	Debug      bool
}

// Env is what a command runs against: the loaded config, a logger and a
// lazily opened session over the shortcuts file.
type Env struct {
	Config *config.Config
	Log    zerolog.Logger

	store  *storage.JSONStore
	sess   *session.Session
	closer io.Closer
	// saved is set once the shortcuts file has been written
	saved bool
}

// NewEnv loads configuration and sets up logging. Log lines at warn and above
// are echoed to console when it is non-nil.
func NewEnv(flags GlobalFlags, console io.Writer) (*Env, error) {
	var cfg *config.Config
	var err error
	if flags.ConfigPath != "" {
		cfg, err = config.LoadFromFile(flags.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if flags.File != "" {
		cfg.ShortcutsFile = flags.File
	}

	level := cfg.LogLevel
	if flags.Debug {
		level = zerolog.LevelDebugValue
	}
	logger, closer, err := logging.Setup(logging.Options{
		File:         cfg.LogFile,
		Level:        level,
		Console:      console,
		ConsoleLevel: zerolog.WarnLevel,
	})
	if err != nil {
		return nil, err
	}

	return &Env{Config: cfg, Log: logger, closer: closer}, nil
}

// Store returns the tree store for the configured shortcuts file
func (e *Env) Store() *storage.JSONStore {
	if e.store == nil {
		e.store = storage.NewJSONStore(e.Config.ShortcutsFile, e.Log)
		e.store.TemplatePath = e.Config.TemplateFile
		e.store.Fatal = func(err error) {
			e.Log.Error().Err(err).Msg("cannot load default template")
			fmt.Fprintf(os.Stderr, "launcher: cannot load default template: %v\n", err)
			os.Exit(1)
		}
		e.store.OnSave = func() { e.saved = true }
		if bm := e.Backups(); bm != nil {
			e.store.Backups = bm
			e.store.SessionID = storage.NewSessionID()
		}
	}
	return e.store
}

// Session opens the session on first use. Loading a missing file writes the
// default tree to it.
func (e *Env) Session() *session.Session {
	if e.sess == nil {
		e.sess = session.New(e.Store(), e.Log)
		e.sess.SetSearchMode(search.ParseMode(e.Config.SearchMode))
	}
	return e.sess
}

// Backups returns the backup manager, or nil when backups are off or the
// backup directory cannot be created
func (e *Env) Backups() *storage.BackupManager {
	if !e.Config.BackupsEnabled() {
		return nil
	}
	bm, err := storage.NewBackupManager(e.Config.BackupDir)
	if err != nil {
		e.Log.Warn().Err(err).Msg("backups disabled")
		return nil
	}
	return bm
}

// Placeholders returns the configured context for {{...}} in shortcut args
func (e *Env) Placeholders() template.Context {
	return template.Context{
		ClipboardCommand: e.Config.ClipboardCommand,
		WeekStart:        e.Config.WeekStartDay(),
	}
}

// Settings returns the opaque settings store
func (e *Env) Settings() *storage.SettingsStore {
	return storage.NewSettingsStore(e.Config.SettingsFile, e.Log)
}

// NotifySaved asks other running launchers on the same shortcuts file to
// reload it, when this process saved it. Failures are only logged.
func (e *Env) NotifySaved(who string) {
	if e == nil || !e.saved {
		return
	}
	n, err := socket.NotifyReload(socket.Dir(), e.Config.ShortcutsFile, who)
	switch {
	case errors.Is(err, socket.ErrNoInstance):
	case err != nil:
		e.Log.Warn().Err(err).Msg("failed to notify running launchers")
	default:
		e.Log.Debug().Int("count", n).Msg("notified running launchers")
	}
}

// Close releases the log file
func (e *Env) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// NewRootCmd builds the launcher command tree
func NewRootCmd() *cobra.Command {
	var (
		env   *Env
		flags GlobalFlags
	)

	cmd := &cobra.Command{
		Use:   "launcher",
		Short: "Folder-based application launcher",
		Long: `Browse a tree of folders and shortcuts and launch programs, files and URLs.

Run without arguments for the interactive launcher. Subcommands work on the
same shortcuts file for scripting.

Examples:
  launcher                              # Interactive launcher
  launcher ls Games                     # List a folder
  launcher search doom                  # Find items anywhere in the tree
  launcher add Games/Action Doom --target /usr/games/doom`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// the screen owns the terminal in interactive mode
			var console io.Writer = cmd.ErrOrStderr()
			if cmd == cmd.Root() {
				console = nil
			}
			var err error
			env, err = NewEnv(flags, console)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cmd != cmd.Root() {
				env.NotifySaved("launcher " + cmd.Name())
			}
			return env.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(env)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Config file (default ~/.config/launcher/config.toml)")
	cmd.PersistentFlags().StringVarP(&flags.File, "file", "f", "", "Shortcuts file (overrides shortcuts_file)")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Log at debug level")

	cmd.AddCommand(NewValidateCmd(&env))
	cmd.AddCommand(NewLsCmd(&env))
	cmd.AddCommand(NewSearchCmd(&env))
	cmd.AddCommand(NewRunCmd(&env))
	cmd.AddCommand(NewAddCmd(&env))
	cmd.AddCommand(NewRenameCmd(&env))
	cmd.AddCommand(NewEditCmd(&env))
	cmd.AddCommand(NewDuplicateCmd(&env))
	cmd.AddCommand(NewDeleteCmd(&env))
	cmd.AddCommand(NewSubstituteCmd(&env))
	cmd.AddCommand(NewScanCmd(&env))
	cmd.AddCommand(NewExportCmd(&env))
	cmd.AddCommand(NewImportCmd(&env))
	cmd.AddCommand(NewSettingsCmd(&env))
	cmd.AddCommand(NewConfigCmd(&env))
	cmd.AddCommand(NewBackupsCmd(&env))

	return cmd
}

func runInteractive(env *Env) error {
	if err := env.Config.EnsureDirs(); err != nil {
		return err
	}
	sess := env.Session()

	screen, err := ui.NewScreen(theme.LoadThemeOrDefault(env.Config.Theme))
	if err != nil {
		return errors.Errorf("failed to initialize screen: %w", err)
	}

	// without a history dir, input history stays in memory
	var hist *history.Manager
	if dir := filepath.Dir(env.Config.ShortcutsFile); dir != "" {
		if hist, err = history.NewManager(filepath.Join(dir, "history")); err != nil {
			env.Log.Warn().Err(err).Msg("history disabled")
			hist = nil
		}
	}

	// without a socket, outside changes need :reload
	var notifications <-chan socket.Message
	server, err := socket.NewServer(socket.Dir(), env.Config.ShortcutsFile, os.Getpid(), env.Log)
	if err != nil {
		env.Log.Warn().Err(err).Msg("reload notifications disabled")
	} else {
		server.Start()
		defer server.Stop()
		notifications = server.Messages()
	}

	a := app.New(app.Options{
		Screen:           screen,
		Session:          sess,
		Launcher:         launch.NewExec(env.Log),
		History:          hist,
		ExportDateFormat: env.Config.ExportDateFormat,
		Notifications:    notifications,
		Placeholders:     env.Placeholders(),
		Logger:           env.Log,
	})
	return a.Run()
}

// resolveFolder walks a "/"-separated path from HOME
func resolveFolder(sess *session.Session, path string) error {
	return sess.Navigate(session.SplitPath(path))
}
