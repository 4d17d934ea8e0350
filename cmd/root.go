// Package cmd contains the perch command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/perchtree/perch/internal/config"
	"github.com/perchtree/perch/internal/log"
	"github.com/perchtree/perch/internal/store"
	"github.com/perchtree/perch/internal/tracing"
	"github.com/perchtree/perch/internal/ui/browser"
	"github.com/perchtree/perch/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugMode bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "perch [dir]",
	Short:   "A file tree browser with a pinned ancestor header",
	Long:    `A terminal file tree browser that keeps the ancestor chain of the first visible entry pinned at the top of the window while you scroll.`,
	Args:    cobra.MaximumNArgs(1),
	Version: version,
	RunE:    runBrowser,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/perch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"write a structured debug log to perch.log")
	rootCmd.Flags().Bool("hidden", false,
		"include dotfiles in the tree")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable automatic reload when the directory changes")
	rootCmd.Flags().Bool("no-store", false,
		"do not persist per-directory view state")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("ui.show_hidden", defaults.UI.ShowHidden)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.mouse", defaults.UI.Mouse)
	viper.SetDefault("overlay.enabled", defaults.Overlay.Enabled)
	viper.SetDefault("overlay.separator", defaults.Overlay.Separator)
	viper.SetDefault("attach.interval_ms", defaults.Attach.IntervalMS)
	viper.SetDefault("attach.max_attempts", defaults.Attach.MaxAttempts)
	viper.SetDefault("watcher.enabled", defaults.Watcher.Enabled)
	viper.SetDefault("watcher.debounce_ms", defaults.Watcher.DebounceMS)
	viper.SetDefault("store.enabled", defaults.Store.Enabled)
	viper.SetDefault("store.path", defaults.Store.Path)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .perch/config.yaml (current directory)
		// 2. ~/.config/perch/config.yaml (user config)
		if _, err := os.Stat(".perch/config.yaml"); err == nil {
			viper.SetConfigFile(".perch/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "perch"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .perch/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".perch/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// resolveDir turns the optional positional argument into an absolute
// directory path.
func resolveDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("reading directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

func runBrowser(cmd *cobra.Command, args []string) error {
	if debugMode || os.Getenv("PERCH_DEBUG") != "" {
		cleanup, err := log.InitWithTeaLog("perch.log", "perch")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("invalid theme configuration: %w", err)
	}

	dir, err := resolveDir(args)
	if err != nil {
		return err
	}

	if hidden, _ := cmd.Flags().GetBool("hidden"); hidden {
		cfg.UI.ShowHidden = true
	}
	if noReload, _ := cmd.Flags().GetBool("no-auto-reload"); noReload {
		cfg.AutoReload = false
	}
	if noStore, _ := cmd.Flags().GetBool("no-store"); noStore {
		cfg.Store.Enabled = false
	}

	tracer, err := tracing.NewProvider(tracingConfig())
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tracer.Shutdown(ctx)
	}()

	var profiles store.ProfileRepository
	if cfg.Store.Enabled {
		path := cfg.Store.Path
		if path == "" {
			path = config.DefaultStorePath()
		}
		if db, dbErr := store.NewDB(path); dbErr != nil {
			// The browser works fine without persistence.
			log.Warn(log.CatStore, "opening profile store failed", "path", path, "error", dbErr)
		} else {
			defer db.Close()
			profiles = db.Profiles()
		}
	}

	// Store the config file path for saving runtime UI toggles
	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = ".perch/config.yaml"
	}

	if cfg.UI.Mouse {
		zone.NewGlobal()
		defer zone.Close()
	}

	model := browser.New(browser.Config{
		Dir:        dir,
		Cfg:        cfg,
		ConfigPath: configFilePath,
		Profiles:   profiles,
		Tracer:     tracer,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	program := tea.NewProgram(model, opts...)
	final, err := program.Run()
	if m, ok := final.(browser.Model); ok {
		// Quitting through the browser already tears this down; the
		// second call is a no-op.
		_ = m.Close()
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// tracingConfig maps the user configuration onto the tracing subsystem,
// filling in derived defaults.
func tracingConfig() tracing.Config {
	tcfg := tracing.DefaultConfig()
	tcfg.Enabled = cfg.Tracing.Enabled
	if cfg.Tracing.Exporter != "" {
		tcfg.Exporter = cfg.Tracing.Exporter
	}
	tcfg.FilePath = cfg.Tracing.FilePath
	if tcfg.FilePath == "" {
		tcfg.FilePath = config.DefaultTracesFilePath()
	}
	if cfg.Tracing.OTLPEndpoint != "" {
		tcfg.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	}
	if cfg.Tracing.SampleRate > 0 {
		tcfg.SampleRate = cfg.Tracing.SampleRate
	}
	return tcfg
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
