package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "trellodown/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DownloadConfig holds settings for attachment downloading.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// Delay is the pause between consecutive attachment downloads, kept to
	// stay inside Trello's rate limits (default 1s).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// OutputDir is the root of the generated tree (contains board.md,
	// board.yaml, lists/, index/).
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ExportConfig groups all settings for one export run.
type ExportConfig struct {
	DownloadConfig `yaml:",inline"`

	// CredentialsFile is the JSON file consulted when neither flags nor
	// environment variables provide credentials (default trello_config.json).
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}
