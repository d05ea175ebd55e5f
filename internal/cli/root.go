// Package cli implements the upcycle command line.
package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/upcycle/internal/config"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/tui"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	backend    string

	// cfg is loaded once per invocation by the root command
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "upcycle",
	Short: "UpCycle - turn waste into projects",
	Long: `UpCycle tracks scanned waste, upcycling projects, the community
feed and your points and badges.

Data lives in a local document database by default, or on an upcycle
server after 'upcycle auth login' with backend set to remote.

Run 'upcycle' without arguments to open the project checklist.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.Err(err))
			loaded = config.DefaultConfig()
		}
		cfg = loaded

		// Flags override the file and are remembered
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}
		if cmd.Flags().Changed("backend") {
			cfg.Backend = backend
			configChanged = true
		}

		if configChanged {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.Err(err))
			}
		}

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("UpCycle started", logger.F("command", cmd.Name()), logger.F("backend", cfg.Backend))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return runChecklist(cmd, 0)
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("UpCycle exiting", logger.F("command", cmd.Name()))
		_ = logger.Close()
	},
}

// runChecklist opens the project checklist, focused on a project when
// focus is non-zero
func runChecklist(cmd *cobra.Command, focus int64) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	logger.Info("Launching TUI")
	m := tui.NewModel(cmd.Context(), sess.store, focus)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", logger.Err(err))
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Info("TUI exited normally")
	return nil
}

// Execute runs the root command until ctx is cancelled
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Data backend (local, remote)")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(ideasCmd)
	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(historyCmd)
}
