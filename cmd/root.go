package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/fsregister/config"
	"github.com/s0up4200/fsregister/fsregister"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *fsregister.Client

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	resourceTypeFlag string
	filterExpr       string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fsregister",
	Short: "Query the FCA Financial Services Register",
	Long: `fsregister is a CLI for the FCA Financial Services Register API.
It searches the register by name, resolves firm/individual/fund names to
their reference numbers, and fetches firm, individual and fund records
and their sub-resources.

Credentials come from a config file or the FSREGISTER_API_USERNAME and
FSREGISTER_API_KEY environment variables; register on the FCA developer
portal at https://register.fca.org.uk/Developer/s/ to obtain them.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version information for the CLI
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	client, err = fsregister.NewClient(cfg.API.Username, cfg.API.Key, logger)
	if err != nil {
		return fmt.Errorf("failed to create FS Register client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only on a real terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
