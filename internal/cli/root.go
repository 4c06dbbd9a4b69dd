package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/provgate/internal/model"
)

// ErrValidationFailed signals a completed run whose verdict is FAIL.
// The command surface maps it to exit code 1 without an error banner.
var ErrValidationFailed = errors.New("validation failed")

var (
	cfgFile string
	verbose bool
	quiet   bool

	log zerolog.Logger

	// Set when a config file was found but could not be read or parsed,
	// so commands fail instead of silently running on defaults
	configReadErr error
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "provgate",
	Short: "provgate - provenance & consistency gate for AI work products",
	Long: `provgate is a readiness gate for machine-generated structured documents
and their rendered text. Before a document moves downstream it answers
one question: does every claim trace back to something verifiable, and
does the output avoid banned phrasing?

Three checks make up the gate:
- provenance: every fact field carries its *_verified_at and *_source companions
- numbers:    every number in the rendered text traces to the structured source
- lexicon:    the text is free of forbidden terms and patterns

provgate checks traceability, not truth.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("provgate v0.2.1")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.provgate/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only output errors")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.provgate")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match PROVGATE_*
	viper.SetEnvPrefix("PROVGATE")
	viper.AutomaticEnv()

	configReadErr = nil
	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	} else if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
		configReadErr = err
		fmt.Fprintf(os.Stderr, "Warning: config file not usable: %v\n", err)
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// loadGateConfig resolves the effective configuration: documented
// defaults, then the config file if one was found, then flags. The
// result is validated before any validator is built.
func loadGateConfig() (*model.Config, error) {
	if configReadErr != nil {
		return nil, fmt.Errorf("read config: %w", configReadErr)
	}

	cfg := model.DefaultConfig()

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configFile, err)
		}
	}

	cfg.Output.Verbose = viper.GetBool("verbose")
	cfg.Output.Quiet = viper.GetBool("quiet")

	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
