package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qfw/cmd/qfw/chat"
	"qfw/cmd/qfw/ui"
	"qfw/internal/client"
	"qfw/internal/config"
	"qfw/internal/logging"
)

const version = "0.1.0"

var (
	// Global flags
	cfgPath   string
	serverURL string
	adminKey  string
	verbose   bool

	cfg    *config.Config
	styles ui.Styles
	logger = zap.NewNop()
)

// rootCmd represents the base command. Running qfw without arguments
// starts the interactive chat.
var rootCmd = &cobra.Command{
	Use:   "qfw",
	Short: "Terminal client for the medical query firewall",
	Long: `qfw talks to a medical query firewall service.

Without arguments it opens an interactive chat whose answers are tagged
with the firewall's decision (BLOCK, WARN, ALLOW). The admin subcommands
cover the authenticated surface: audit log download, rule management,
the WARN review queue, and server counters.

The admin API key is read from QFW_ADMIN_KEY or the config file; qfw
never embeds one.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fail(err)
		}
		if serverURL != "" {
			cfg.Server.BaseURL = serverURL
		}
		if adminKey != "" {
			cfg.Admin.APIKey = adminKey
		}
		styles = ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))

		// The chat TUI owns the terminal; only log there when a file is
		// configured, so nothing bleeds into the alternate screen.
		if isInteractive(cmd) && cfg.Logging.File == "" {
			return nil
		}
		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fail(err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runChat,
}

// chatCmd is the explicit spelling of the default behavior.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive decision-tagged chat (default)",
	RunE:  runChat,
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd.Name() == "qfw" || cmd.Name() == "chat"
}

func runChat(cmd *cobra.Command, args []string) error {
	api := newAPIClient()
	model := chat.New(api, styles, cfg.GetRequestTimeout(), api.SessionID())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fail(fmt.Errorf("chat UI failed: %w", err))
	}
	return nil
}

// newAPIClient builds the firewall client from the effective config.
func newAPIClient() *client.Client {
	return client.New(cfg.Server.BaseURL,
		client.WithAdminKey(cfg.Admin.APIKey),
		client.WithTimeout(cfg.GetRequestTimeout()),
	)
}

func printSuccess(msg string) {
	fmt.Println(styles.Success.Render(msg))
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, styles.Error.Render("Error: "+err.Error()))
}

// fail surfaces err on stderr exactly once; Execute itself stays silent
// (SilenceErrors), so every RunE error path must come through here.
func fail(err error) error {
	printError(err)
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.qfw/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "firewall server base URL")
	rootCmd.PersistentFlags().StringVar(&adminKey, "api-key", "", "admin API key (prefer QFW_ADMIN_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
