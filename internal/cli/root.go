package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/copycop/internal/model"
)

// Version is set at build time with -ldflags
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// ErrThresholdExceeded means warnings at or above --fail-on were found
var ErrThresholdExceeded = errors.New("warnings at or above the fail-on level")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "copycop",
	Short: "copycop - grammar checks for technical prose",
	Long: `copycop reads Markdown and HTML documentation and flags prose that breaks
common style rules: headings that drift in voice or tense, list items that
are not parallel, passive sentences, gerunds, pronouns without a clear
referent and heading layouts that skip levels or stand alone.

Every sentence is tagged, reduced with a weighted grammar and classified
by mood, tense and person. The classification is a heuristic, not a parse.`,
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
		fmt.Fprintf(cmd.OutOrStdout(), "copycop v%s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.copycop/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().String("rules", "", "grammar rule table (JSON or YAML); empty uses the built-in table")
	rootCmd.PersistentFlags().Bool("no-cache", false, "disable the sentence result cache")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("rules.path", rootCmd.PersistentFlags().Lookup("rules"))

	setDefaults(model.DefaultConfig())

	rootCmd.AddCommand(versionCmd)
}

// setDefaults registers every key so that env overrides reach Unmarshal
func setDefaults(cfg *model.Config) {
	viper.SetDefault("rules.path", cfg.Rules.Path)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)
	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("output.format", cfg.Output.Format)
	viper.SetDefault("output.color", cfg.Output.Color)
	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("output.fail_on", cfg.Output.FailOn)
	viper.SetDefault("checks.disabled", cfg.Checks.Disabled)
	viper.SetDefault("server.addr", cfg.Server.Addr)
	viper.SetDefault("server.requests_per_second", cfg.Server.RequestsPerSecond)
	viper.SetDefault("server.burst", cfg.Server.Burst)
	viper.SetDefault("server.max_body_bytes", cfg.Server.MaxBodyBytes)
}

// initConfig reads .env, the config file and COPYCOP_* variables
func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".copycop"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// COPYCOP_CACHE_DIR overrides cache.dir
	viper.SetEnvPrefix("COPYCOP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the layered configuration over the defaults and
// applies the flags that invert a setting
func loadConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Output.Color = false
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

// defaultCacheDir is the disk cache location used by config init
func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "copycop")
}

// exceeds reports whether any report crosses the fail-on level
func exceeds(failOn string, reports []*model.Report) (bool, error) {
	var level model.Severity
	switch failOn {
	case "none", "":
		return false, nil
	case string(model.SeverityWarn):
		level = model.SeverityWarn
	case string(model.SeverityInfo):
		level = model.SeverityInfo
	default:
		return false, fmt.Errorf("invalid --fail-on %q (want warn, info or none)", failOn)
	}

	for _, r := range reports {
		if r.HasSeverity(level) {
			return true, nil
		}
	}
	return false, nil
}
