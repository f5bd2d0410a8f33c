package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/studiowebux/resto/internal/cli"
	"github.com/studiowebux/resto/internal/clipboard"
	"github.com/studiowebux/resto/internal/config"
	"github.com/studiowebux/resto/internal/executor"
	"github.com/studiowebux/resto/internal/history"
	"github.com/studiowebux/resto/internal/keybinds"
	"github.com/studiowebux/resto/internal/log"
	"github.com/studiowebux/resto/internal/session"
	"github.com/studiowebux/resto/internal/tui"
	"github.com/studiowebux/resto/internal/version"
)

func init() {
	// Query the terminal background before bubbletea owns stdin.
	_ = lipgloss.HasDarkBackground()
}

func main() {
	if err := execute(); err != nil {
		if !errors.Is(err, cli.ErrRequestFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := cancelOnSignal(ctx, cancel)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// cancelOnSignal calls cancel on SIGINT or SIGTERM so an in-flight CLI
// request stops. The TUI reads Ctrl+C as a key.
func cancelOnSignal(ctx context.Context, cancel context.CancelFunc) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nRequest cancelled by user")
			cancel()
		case <-ctx.Done():
		}
	}()
	return func() { signal.Stop(sigChan) }
}

var rootCmd = &cobra.Command{
	Use:   "resto",
	Short: "resto - terminal HTTP client with vim-style editing",
	Long: `resto is a terminal HTTP client. Compose a request, send it and browse
the response without leaving the keyboard. Every text field is edited with
vim-style modal keys.

Run without arguments to start the TUI, or use a subcommand for one-shot work.

Examples:
  resto                                         # Start interactive TUI
  resto send https://httpbin.org/get            # One-shot GET
  resto send https://api.test/users -X POST -d '{"name":"ada"}' -H 'Content-Type: application/json'
  resto send https://api.test/users --query 'items[0].id'
  resto curl "curl -X POST https://api.test -d x" -f yaml
  pbpaste | resto curl --send                   # Execute a copied curl command
  resto history --limit 20                      # Recent requests
  resto history --pick                          # Choose one and send it again`,
	Version:           version.Version,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <url>",
	Short: "Send a single request and print the response",
	Long: `Send a single request and print the response.

The exit code is 1 when the request fails or the server answers 4xx/5xx.
Use -d @- to read the body from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := sendFlags
		opts.URL = args[0]
		runner, done, err := newRunner(cmd, true)
		if err != nil {
			return err
		}
		defer done()
		return runner.Send(cmd.Context(), opts)
	},
}

var curlCmd = &cobra.Command{
	Use:   "curl [curl command]",
	Short: "Convert a cURL command, or send it with --send",
	Long: `Convert a cURL command to http, json, yaml or curl format.

You can pipe a cURL command from stdin or provide it as an argument.
Credential headers are masked unless --import-headers is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := curlFlags
		opts.Output = sendFlags
		if len(args) > 0 {
			opts.Command = args[0]
		} else if cmd.InOrStdin() == os.Stdin && cli.IsTerminal(os.Stdin) {
			return fmt.Errorf("no cURL command provided (pipe it or provide as argument)")
		}
		runner, done, err := newRunner(cmd, true)
		if err != nil {
			return err
		}
		defer done()
		return runner.Curl(cmd.Context(), opts)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		runner, _, err := newRunner(cmd, false)
		if err != nil {
			return err
		}
		if !historyPick {
			return runner.ListHistory(store, historyFlags)
		}

		entries, err := store.Load(historyFlags.Limit)
		if err != nil {
			return err
		}
		entries = history.Search(entries, historyFlags.Search)
		entry, err := cli.PickHistory(entries)
		if errors.Is(err, cli.ErrSelectionCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		if app.cfg.History.Enabled {
			runner.History = store
		}
		return runner.Resend(cmd.Context(), entry, cli.SendOptions{Output: historyFlags.Output})
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored request and its response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		runner, _, err := newRunner(cmd, false)
		if err != nil {
			return err
		}
		return runner.ShowHistory(store, id, cli.SendOptions{Output: showOutput, Full: true})
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Delete(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, optionally checking for a newer release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "resto %s\n", version.Version)
		if !versionCheck {
			return nil
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		rel, err := version.Check(cmd.Context(), client, "", version.Version)
		if err != nil {
			return fmt.Errorf("update check failed: %w", err)
		}
		if rel.Newer {
			fmt.Fprintf(out, "A newer version is available: %s\n%s\n", rel.Version, rel.URL)
		} else {
			fmt.Fprintln(out, "You are running the latest version")
		}
		return nil
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "List the active keybindings, or write the defaults with --init",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if keybindsInit {
			if _, err := os.Stat(config.KeybindsFile); err == nil {
				return fmt.Errorf("%s already exists", config.KeybindsFile)
			}
			if err := keybinds.SaveConfig(keybinds.ExportDefaults(), config.KeybindsFile); err != nil {
				return fmt.Errorf("failed to write keybindings: %w", err)
			}
			fmt.Fprintf(out, "Wrote default keybindings to %s\n", config.KeybindsFile)
			return nil
		}

		registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
		if err != nil {
			return err
		}
		for _, c := range []keybinds.Context{keybinds.ContextNormal, keybinds.ContextHistory, keybinds.ContextHelp} {
			fmt.Fprintf(out, "[%s]\n", c)
			for _, b := range registry.ListBindings(c) {
				if b.Action == keybinds.ActionGoToTopPrepare {
					continue
				}
				fmt.Fprintf(out, "  %-10s %s\n", b.Key, keybinds.GetActionInfo(b.Action).Description)
			}
		}
		if warnings := keybinds.Check(registry).Warnings(); len(warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for _, w := range warnings {
				fmt.Fprintf(out, "  - %s\n", w.Error())
			}
		}
		return nil
	},
}

// Persistent flags
var (
	flagConfig string
	flagDebug  bool
)

var (
	sendFlags    cli.SendOptions
	curlFlags    cli.CurlOptions
	historyFlags cli.HistoryOptions
	historyPick  bool
	showOutput   string
	versionCheck bool
	keybindsInit bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: ~/.resto/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs")

	for _, c := range []*cobra.Command{sendCmd, curlCmd} {
		c.Flags().StringVarP(&sendFlags.Output, "output", "o", "", "Output format (text/json/yaml/body)")
		c.Flags().StringVarP(&sendFlags.Filter, "query", "Q", "", "JMESPath query or $(shell command) applied to the body")
		c.Flags().BoolVarP(&sendFlags.Full, "full", "F", false, "Show response headers and cookies")
		c.Flags().StringVarP(&sendFlags.SavePath, "save", "s", "", "Save output to file")
	}

	sendCmd.Flags().StringVarP(&sendFlags.Method, "method", "X", "", "HTTP method (default GET, POST with -d)")
	sendCmd.Flags().StringArrayVarP(&sendFlags.Headers, "header", "H", nil, "Header \"Key: Value\", can be repeated")
	sendCmd.Flags().StringVarP(&sendFlags.Body, "data", "d", "", "Request body, @- reads stdin")
	sendCmd.Flags().StringArrayVarP(&sendFlags.Query, "param", "q", nil, "Query parameter key=value, can be repeated")

	curlCmd.Flags().StringVarP(&curlFlags.Format, "format", "f", "http", "Output format (http/json/yaml/curl)")
	curlCmd.Flags().BoolVar(&curlFlags.ImportHeaders, "import-headers", false, "Include sensitive headers")
	curlCmd.Flags().BoolVar(&curlFlags.Execute, "send", false, "Send the request instead of converting it")

	historyCmd.Flags().IntVarP(&historyFlags.Limit, "limit", "n", 50, "Maximum entries, 0 for all")
	historyCmd.Flags().StringVar(&historyFlags.Search, "search", "", "Fuzzy filter on method and URL")
	historyCmd.Flags().StringVarP(&historyFlags.Output, "output", "o", "", "Output format (text/json/yaml)")
	historyCmd.Flags().BoolVarP(&historyPick, "pick", "p", false, "Pick an entry interactively and send it again")
	historyShowCmd.Flags().StringVarP(&showOutput, "output", "o", "", "Output format (text/json/yaml/body)")

	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	keybindsCmd.Flags().BoolVar(&keybindsInit, "init", false, "Write the default bindings to keybinds.json")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(curlCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(keybindsCmd)
}

// app holds what setup resolved for the running command.
var app struct {
	cfg      config.Config
	closeLog func()
}

// setup initializes the config directory, loads settings and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	// PersistentPostRun is skipped when RunE fails.
	teardown(cmd, args)

	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, used, err := config.Load(viper.New(), flagConfig)
	if err != nil {
		return err
	}
	app.cfg = cfg

	level := log.ParseLevel(cfg.Log.Level)
	if flagDebug {
		level = log.LevelDebug
	}
	logPath := cfg.Log.File
	if logPath == "" || logPath == log.DefaultPath {
		logPath = filepath.Join(config.ConfigDir, "resto.log")
	}
	closeLog, err := log.Init(logPath, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		closeLog = func() {}
	}
	app.closeLog = closeLog

	log.Info(log.CatConfig, "resto starting", "version", version.Version, "command", cmd.Name(), "config", used)
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if app.closeLog != nil {
		app.closeLog()
		app.closeLog = nil
	}
}

func newClient() (*executor.Client, error) {
	client, err := executor.New(executor.Options{
		Timeout:   app.cfg.HTTP.Timeout,
		UserAgent: app.cfg.HTTP.UserAgent,
		Insecure:  app.cfg.HTTP.Insecure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return client, nil
}

func openHistory() (*history.Manager, error) {
	store, err := history.NewManager(config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// newRunner builds a CLI runner on the command's streams. withHistory
// records requests when history is enabled; a history that cannot be opened
// only warns. The returned func closes what newRunner opened.
func newRunner(cmd *cobra.Command, withHistory bool) (*cli.Runner, func(), error) {
	client, err := newClient()
	if err != nil {
		return nil, nil, err
	}
	runner := cli.NewRunner(client, nil, app.cfg.History.Limit)
	runner.Stdin = cmd.InOrStdin()
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()
	if runner.Stdout != os.Stdout {
		runner.Color = false
	}

	closeFn := func() {}
	if withHistory && app.cfg.History.Enabled {
		store, err := openHistory()
		if err != nil {
			fmt.Fprintf(runner.Stderr, "Warning: %v\n", err)
		} else {
			runner.History = store
			closeFn = func() { _ = store.Close() }
		}
	}
	return runner, closeFn, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid history id %q", s)
	}
	return id, nil
}

// runTUI starts the interactive TUI
func runTUI() error {
	client, err := newClient()
	if err != nil {
		return err
	}

	clip := clipboard.Shared()
	clip.SetSystem(app.cfg.Editor.ClipboardSystem)

	keys, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		log.Warn(log.CatConfig, "using default keybindings", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	// tui.Model.Cleanup closes the store.

	sess := session.NewManager(config.SessionFile)
	if err := sess.Load(); err != nil {
		log.Warn(log.CatConfig, "starting with an empty session", "error", err)
	}

	return tui.Run(tui.Options{
		Config:    app.cfg,
		Client:    client,
		History:   store,
		Session:   sess,
		Keybinds:  keys,
		Clipboard: clip,
		Version:   version.Version,
	})
}
