package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "inventory/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// QueryConfig holds settings for the EuropePMC query stage.
type QueryConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutDir is the directory for query results and the last-date file.
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Email is sent to EuropePMC for polite-pool identification, if set.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// URLCheckConfig holds settings for the URL checking stage.
type URLCheckConfig struct {
	HTTPConfig `yaml:",inline"`

	// NumTries is the number of probe attempts per URL (minimum 1).
	NumTries int `json:"num_tries" yaml:"num_tries"`

	// Wait is the delay between consecutive probe attempts for one URL.
	Wait time.Duration `json:"wait" yaml:"wait"`

	// Workers is the size of the checking pool. Zero means one worker
	// per available CPU.
	Workers int `json:"workers" yaml:"workers"`

	// OutDir is the directory the checked table is written to, reusing
	// the input file's base name.
	OutDir string `json:"out_dir" yaml:"out_dir"`
}

// ClassifyConfig holds settings for the classification stage. The model
// itself lives behind an external prediction server; this configures only
// the glue around it.
type ClassifyConfig struct {
	HTTPConfig `yaml:",inline"`

	// ServerURL is the base URL of the prediction server.
	ServerURL string `json:"server_url" yaml:"server_url"`

	// Token is an optional bearer token for the prediction server.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// PredictiveField selects the column sent for prediction: "title",
	// "abstract", or "title_abstract".
	PredictiveField string `json:"predictive_field" yaml:"predictive_field"`

	// BatchSize is the number of texts sent per prediction request.
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// OutDir is the directory predictions.csv is written to.
	OutDir string `json:"out_dir" yaml:"out_dir"`
}

// StoreConfig holds settings for the inventory store stage.
type StoreConfig struct {
	// InventoryDir is the base directory for the store (contains index/).
	InventoryDir string `json:"inventory_dir" yaml:"inventory_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Query    QueryConfig    `json:"query" yaml:"query"`
	URLCheck URLCheckConfig `json:"url_check" yaml:"url_check"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Store    StoreConfig    `json:"store" yaml:"store"`
}
