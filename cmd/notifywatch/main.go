// notifywatch is a terminal client for the portal's unread notification
// feed. It polls the summary endpoint on a fixed interval, keeps an unread
// badge on the header bell current, and prepends notifications it has not
// shown before to a newest-first list.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nhle/notifywatch/internal/app"
	"github.com/nhle/notifywatch/internal/credential"
	"github.com/nhle/notifywatch/internal/inbox"
	"github.com/nhle/notifywatch/internal/logger"
	"github.com/nhle/notifywatch/internal/model"
	"github.com/nhle/notifywatch/internal/source/portal"
	"github.com/nhle/notifywatch/internal/store"
	appsync "github.com/nhle/notifywatch/internal/sync"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flags holds the parsed command line.
type flags struct {
	configPath string
	baseURL    string
	interval   time.Duration
	noList     bool
	historyDB  string
	logFile    string
	login      bool
	history    int
}

func newFlagSet(f *flags) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("notifywatch", pflag.ContinueOnError)
	flagSet.StringVar(&f.configPath, "config", model.DefaultConfigPath(), "path to the YAML config file")
	flagSet.StringVar(&f.baseURL, "base-url", "", "portal origin, overrides server.base_url")
	flagSet.DurationVar(&f.interval, "interval", 0, "idle time between polls, overrides poll.interval_ms")
	flagSet.BoolVar(&f.noList, "no-list", false, "start with the notification list hidden")
	flagSet.StringVar(&f.historyDB, "history-db", "", "SQLite file for the notification history, overrides history.path")
	flagSet.StringVar(&f.logFile, "log-file", "", "log file, overrides log.file")
	flagSet.BoolVar(&f.login, "login", false, "store a portal session cookie and exit")
	flagSet.IntVar(&f.history, "history", 0, "print the N most recently seen notifications and exit")
	flagSet.BoolP("help", "h", false, "show help")
	return flagSet
}

// applyFlags lets explicitly set flags override the loaded config.
func applyFlags(cfg *model.AppConfig, f *flags, flagSet *pflag.FlagSet) {
	if flagSet.Changed("base-url") {
		cfg.Server.BaseURL = f.baseURL
	}
	if flagSet.Changed("interval") {
		cfg.Poll.IntervalMS = int(f.interval / time.Millisecond)
	}
	if flagSet.Changed("no-list") {
		cfg.Display.ShowList = !f.noList
	}
	if flagSet.Changed("history-db") {
		cfg.History.Path = f.historyDB
	}
	if flagSet.Changed("log-file") {
		cfg.Log.File = f.logFile
	}
}

func run() error {
	var f flags
	flagSet := newFlagSet(&f)

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := model.LoadConfig(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg, &f, flagSet)

	logOut, err := logger.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logOut.Close()

	logCfg := logger.FromConfig(cfg.Log.Level, cfg.Log.Format)
	logCfg.Output = logOut
	log := logger.New(logCfg)

	if f.history > 0 {
		return printHistory(os.Stdout, cfg, f.history)
	}

	sessions, err := credential.Open(model.ConfigDir())
	if err != nil {
		return err
	}

	if f.login {
		return runLogin(cfg, f.configPath, sessions, log)
	}

	return runWatch(cfg, sessions, log)
}

func runWatch(cfg *model.AppConfig, sessions *credential.Sessions, log *logger.Logger) error {
	cookie, err := sessions.Lookup(cfg.Server.BaseURL)
	if err != nil {
		return err
	}

	client, err := portal.NewClient(cfg.Server.BaseURL, cfg.Server.CookieName, cookie)
	if err != nil {
		return err
	}
	adapter := portal.NewAdapter(client, cfg.Server.Endpoint)

	poller := appsync.New(adapter, appsync.Options{
		Interval:     cfg.PollInterval(),
		FetchTimeout: cfg.FetchTimeout(),
		Logger:       log.WithComponent("poller").Logger,
	})
	defer poller.Stop()

	opts := app.Options{
		Config:  cfg,
		Poller:  poller,
		Session: inbox.NewSession(),
		Logger:  log,
	}

	if cfg.History.Path != "" {
		hist, err := store.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer hist.Close()

		id, err := hist.StartSession(context.Background(), cfg.Server.Endpoint)
		if err != nil {
			return err
		}
		opts.History = hist
		opts.HistorySession = id
	}

	log.Info("starting",
		"base_url", cfg.Server.BaseURL,
		"endpoint", cfg.Server.Endpoint,
		"interval", cfg.PollInterval(),
		"history", cfg.History.Path != "")

	program := tea.NewProgram(app.New(opts), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `notifywatch shows the portal's unread notifications in the terminal.

Run with --login once to store the session cookie of a signed-in browser,
then start notifywatch without arguments. The cookie can also be supplied
through the NOTIFYWATCH_SESSION environment variable.

Usage:
  notifywatch [flags]

Examples:
  # Store a session and watch
  notifywatch --login
  notifywatch

  # Poll every ten seconds and keep a history
  notifywatch --interval 10s --history-db ~/.config/notifywatch/history.db

  # Show what was seen recently
  notifywatch --history 20 --history-db ~/.config/notifywatch/history.db

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
