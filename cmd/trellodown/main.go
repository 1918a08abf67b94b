// Package main is the entry point for the trellodown CLI, which converts a
// Trello board export into a tree of markdown documents and downloaded
// attachments.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in the persistent pre-run and shared by all commands.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// rootCmd is the base command for the trellodown CLI.
var rootCmd = &cobra.Command{
	Use:   "trellodown",
	Short: "Convert a Trello board export to markdown and attachments",
	Long: `trellodown reads a Trello board export (JSON) and writes a directory tree
of markdown documents: one overview page, one document per card, and the
card attachments downloaded next to them. Attachments that cannot be
downloaded are recorded in per-folder attachment_info.md files for manual
retrieval.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./trellodown.yaml or ~/.config/trellodown/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	// A local .env may carry TRELLO_API_KEY / TRELLO_TOKEN.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("trellodown")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "trellodown"))
		}
	}

	viper.SetEnvPrefix("TRELLODOWN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
