package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that call the Docs API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "docpress/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AuthConfig holds OAuth client settings for the installed-app flow.
type AuthConfig struct {
	// CredentialsFile is the OAuth client secrets JSON downloaded from
	// the Google Cloud console (default "credentials.json").
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`

	// TokenFile caches the granted token between runs (default
	// "token.json"). Written with owner-only permissions.
	TokenFile string `json:"token_file" yaml:"token_file"`

	// CallbackPort is the localhost port the consent redirect lands on
	// (default 9000). It must match an authorized redirect URI of the
	// OAuth client.
	CallbackPort int `json:"callback_port" yaml:"callback_port"`
}

// PublishConfig holds settings for the publish stage.
type PublishConfig struct {
	HTTPConfig `yaml:",inline"`

	// ReceiptsDir is the directory for publish receipts (default
	// "receipts"). Empty disables receipt writing.
	ReceiptsDir string `json:"receipts_dir" yaml:"receipts_dir"`
}

// HistoryConfig holds settings for the publish history store.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default
	// "history").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of listing results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Auth    AuthConfig    `json:"auth" yaml:"auth"`
	Publish PublishConfig `json:"publish" yaml:"publish"`
	History HistoryConfig `json:"history" yaml:"history"`
}
