package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ppiankov/rivalry/internal/model"
	"github.com/ppiankov/rivalry/internal/observability"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Version is set at build time via -ldflags
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// envKeyReplacer maps nested keys to env names: store.dsn -> RIVALRY_STORE_DSN
var envKeyReplacer = strings.NewReplacer(".", "_")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rivalry",
	Short: "Rivalry - answers questions comparing Messi and Ronaldo",
	Long: `Rivalry answers natural-language questions comparing two athletes
(by default Lionel Messi and Cristiano Ronaldo) from a small fact table
of career statistics.

Questions are classified with keyword tables, then answered from the
fact store. Answers are deterministic: the same question against the
same data always yields the same sentence.

Example:
  rivalry ask "Who has scored more goals?"
  rivalry serve --addr :5000
  rivalry refresh`,
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
	Long:  `Display the version number and build information for Rivalry.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rivalry %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.rivalry/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")
	flags.String("driver", "", "fact store driver (sqlite3, postgres, memory)")
	flags.String("dsn", "", "fact store data source name")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("store.driver", flags.Lookup("driver"))
	_ = viper.BindPFlag("store.dsn", flags.Lookup("dsn"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and ENV variables
func initConfig() {
	// A missing .env is not an error.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".rivalry"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match RIVALRY_*
	viper.SetEnvPrefix("RIVALRY")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// registerDefaults makes every config key known to viper, so that
// environment variables can override nested keys.
func registerDefaults(v *viper.Viper, cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("unmarshal defaults: %w", err)
	}

	for key, value := range tree {
		v.SetDefault(key, value)
	}
	return nil
}

// loadConfig merges defaults, config file, environment and flags
func loadConfig(v *viper.Viper) (*model.Config, error) {
	if err := registerDefaults(v, model.DefaultConfig()); err != nil {
		return nil, err
	}

	cfg := &model.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Concurrency.Workers < 1 {
		cfg.Concurrency.Workers = 1
	}
	if v.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}

	switch cfg.Store.Driver {
	case "sqlite3", "postgres", "memory":
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	return cfg, nil
}

// newLogger builds the process logger from the log configuration
func newLogger(cfg model.LogConfig) zerolog.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:  cfg.Level,
		Format: cfg.Format,
	})
}
