package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syd18b/mvp-search/internal/config"
	"github.com/syd18b/mvp-search/internal/logger"
)

var (
	cfgFile   string
	debug     bool
	appConfig config.Config
	log       logger.Logger = logger.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "mvp-search",
	Short: "Site Analyzer - inspect HAX site manifests",
	Long: `mvp-search fetches a HAX site manifest (site.json) from a URL and renders
an overview of the site together with one card per item, either as a local
web UI (serve) or as a static snapshot (analyze).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return err
		}
		l, err := logger.New(appConfig.Log)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func initializeConfig(_ *cobra.Command) error {
	v := viper.New()

	v.SetDefault("assetOrigin", config.DefaultAssetOrigin)
	v.SetDefault("outputDir", config.DefaultOutputDir)
	v.SetDefault("locale", "")
	v.SetDefault("theme.document", "")
	v.SetDefault("theme.catalog", "")
	v.SetDefault("server.port", config.DefaultPort)
	v.SetDefault("server.readTimeout", "15s")
	v.SetDefault("server.writeTimeout", "60s")
	v.SetDefault("fetch.timeout", config.DefaultFetchTimeout)
	v.SetDefault("fetch.maxBodyBytes", config.DefaultMaxBodyBytes)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("MVP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if debug {
		appConfig.Log.Level = "debug"
		appConfig.Log.Development = true
	}
	return nil
}
