package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlaneve/trellodown/internal/board"
	"github.com/mlaneve/trellodown/internal/credentials"
	"github.com/mlaneve/trellodown/internal/export"
	"github.com/mlaneve/trellodown/internal/fetch"
	"github.com/mlaneve/trellodown/internal/httputil"
	"github.com/mlaneve/trellodown/internal/manifest"
	"github.com/mlaneve/trellodown/pkg/types"
)

const (
	defaultOutputDir = "board-export"
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "trellodown/0.1"
)

var exportCmd = &cobra.Command{
	Use:   "export <board-export.json>",
	Short: "Export a board to markdown and download its attachments",
	Long: `Export reads a Trello board export file and writes the markdown tree under
the output directory. Attachment downloads try the Trello API endpoint,
the attachment URL with credentials, then the bare URL, in that order;
whatever still fails is listed in attachment_info.md next to the
attachments that did download.

Credentials are optional. They are resolved from --key/--token, then the
TRELLO_API_KEY/TRELLO_TOKEN environment variables, then the credentials
file. Without credentials only public attachments can be downloaded.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", defaultOutputDir, "output directory for the markdown tree")
	exportCmd.Flags().String("key", "", "Trello API key")
	exportCmd.Flags().String("token", "", "Trello API token")
	exportCmd.Flags().String("credentials-file", credentials.DefaultFile, "JSON file with api_key and token fields")
	exportCmd.Flags().Duration("timeout", httputil.DefaultTimeout, "HTTP request timeout per download attempt")
	exportCmd.Flags().Duration("delay", defaultDelay, "delay between consecutive attachment downloads")
	exportCmd.Flags().String("user-agent", defaultUserAgent, "User-Agent header for HTTP requests")

	viper.BindPFlag("output", exportCmd.Flags().Lookup("output"))
	viper.BindPFlag("delay", exportCmd.Flags().Lookup("delay"))
	viper.BindPFlag("timeout", exportCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()

	b, err := board.Load(fs, args[0])
	if err != nil {
		return err
	}

	key, _ := cmd.Flags().GetString("key")
	token, _ := cmd.Flags().GetString("token")
	credsFile, _ := cmd.Flags().GetString("credentials-file")
	userAgent, _ := cmd.Flags().GetString("user-agent")

	cfg := types.ExportConfig{
		DownloadConfig: types.DownloadConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("timeout"),
				UserAgent: userAgent,
			},
			Delay:     viper.GetDuration("delay"),
			OutputDir: viper.GetString("output"),
		},
		CredentialsFile: credsFile,
	}

	creds := credentials.Resolve(fs, logger, key, token, cfg.CredentialsFile)
	if creds != nil {
		fmt.Fprintln(os.Stderr, "Running authenticated")
	} else {
		fmt.Fprintln(os.Stderr, "Running unauthenticated; private attachments may fail to download")
	}

	client := httputil.NewClient(cfg.Timeout)
	fetcher := fetch.New(client, fs, creds, cfg.UserAgent, logger, os.Stdout)

	store, err := manifest.Open(cfg.OutputDir)
	if err != nil {
		logger.Warn("export manifest unavailable", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	exporter := export.New(fs, fetcher, store, logger, os.Stdout)
	summary, err := exporter.Run(b, cfg)
	if err != nil {
		return err
	}

	if summary.HasFailures() {
		fmt.Fprintf(os.Stderr, "%d attachment(s) could not be downloaded; see the attachment_info.md files\n", summary.Failed)
	}
	return nil
}
