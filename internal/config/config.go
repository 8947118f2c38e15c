// =============================================================================
// Blind Receiving Highlighter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults
//   2. Main Config (config.yaml)
//   3. Environment variables prefixed with BLINDRECV_ (a .env file in the
//      working directory is loaded first, if present)
//
// A missing config file is not an error; the defaults are used.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/blind-receiver-highlighter/internal/receiving"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "BLINDRECV"

// DefaultIndentWidth is the event row indent used when indent_width is unset.
const DefaultIndentWidth = 10

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for reports by the process command.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives the intermediate text copy, the highlighted PDF,
	// the optional workbook and the processing summary.
	// Default: "./Data_Analysis_Suite_Output_Files"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives processed reports when ArchiveProcessed is set.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is an optional log destination in addition to stderr.
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat is "console" or "json".
	// Default: "console"
	LogFormat string `yaml:"log_format"`

	// =========================================================================
	// COMPONENT SETTINGS
	// =========================================================================

	Intake     IntakeSettings     `yaml:"intake"`
	Classifier ClassifierSettings `yaml:"classifier"`
	Render     RenderSettings     `yaml:"render"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of reports processed at once by
	// the process command.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ArchiveProcessed moves successfully processed reports to
	// InputArchiveDir.
	// Default: false
	ArchiveProcessed bool `yaml:"archive_processed"`
}

// IntakeSettings controls how report files are read.
type IntakeSettings struct {
	// Encoding is the character encoding of the report export.
	// Valid values: "utf-8", "utf-16le", "utf-16be", "windows-1252",
	// "iso-8859-1". UTF-8 input is checked for a byte order mark, so UTF-16
	// exports with a BOM are also read correctly.
	// Default: "utf-8"
	Encoding string `yaml:"encoding"`

	// Extensions lists the file extensions picked up from InputDir.
	// Default: [".rpt", ".txt"]
	Extensions []string `yaml:"extensions"`
}

// ClassifierSettings tunes the priority classifier.
type ClassifierSettings struct {
	// CasePackSize is the standard case-pack unit.
	// Default: 6
	CasePackSize int `yaml:"case_pack_size"`

	// PriorWindow is how many prior overage rows are flagged per mixed event.
	// Default: 2
	PriorWindow int `yaml:"prior_window"`

	// RowIdentity is "text" (duplicate lines collapse) or "index".
	// Default: "text"
	RowIdentity string `yaml:"row_identity"`
}

// RenderSettings controls the highlighted output documents.
type RenderSettings struct {
	// LinesPerPage is the number of report lines per page.
	// Default: 60
	LinesPerPage int `yaml:"lines_per_page"`

	// IndentWidth is the indent applied to event rows. A pointer so that an
	// explicit 0 (no indent) is kept.
	// Default: 10
	IndentWidth *int `yaml:"indent_width"`

	// Workbook also writes an .xlsx copy of the highlighted report.
	// Default: false
	Workbook bool `yaml:"workbook"`

	// OutputNameFormat names the output documents. Placeholders:
	//   {name}      - Report file name without extension
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	// Suffixes ("_orig.txt", "_highlighted.pdf", "_highlighted.xlsx") are
	// appended.
	// Default: "{name}"
	OutputNameFormat string `yaml:"output_name_format"`
}

// Indent returns the configured indent width, or DefaultIndentWidth when
// unset.
func (r RenderSettings) Indent() int {
	if r.IndentWidth == nil {
		return DefaultIndentWidth
	}
	return *r.IndentWidth
}

// envOverrides is filled from BLINDRECV_* variables. Unset pointer fields
// stay nil so they do not clobber file values.
type envOverrides struct {
	InputDir         string `envconfig:"INPUT_DIR"`
	OutputDir        string `envconfig:"OUTPUT_DIR"`
	LogFile          string `envconfig:"LOG_FILE"`
	LogLevel         string `envconfig:"LOG_LEVEL"`
	LogFormat        string `envconfig:"LOG_FORMAT"`
	Encoding         string `envconfig:"ENCODING"`
	RowIdentity      string `envconfig:"ROW_IDENTITY"`
	CasePackSize     *int   `envconfig:"CASE_PACK_SIZE"`
	PriorWindow      *int   `envconfig:"PRIOR_WINDOW"`
	LinesPerPage     *int   `envconfig:"LINES_PER_PAGE"`
	IndentWidth      *int   `envconfig:"INDENT_WIDTH"`
	Workbook         *bool  `envconfig:"WORKBOOK"`
	MaxConcurrency   *int   `envconfig:"MAX_CONCURRENCY"`
	ArchiveProcessed *bool  `envconfig:"ARCHIVE_PROCESSED"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration.
//
// PARAMETERS:
//   - configPath: The path to the YAML configuration file. May be empty or
//     point to a missing file, in which case only defaults and environment
//     overrides apply.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed, or the result is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	var config MainConfig

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// Defaults only.
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the built-in configuration without reading any source.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// applyEnvOverrides copies set BLINDRECV_* variables over the file values.
func applyEnvOverrides(config *MainConfig) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return err
	}

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&config.InputDir, env.InputDir)
	setString(&config.OutputDir, env.OutputDir)
	setString(&config.LogFile, env.LogFile)
	setString(&config.LogLevel, env.LogLevel)
	setString(&config.LogFormat, env.LogFormat)
	setString(&config.Intake.Encoding, env.Encoding)
	setString(&config.Classifier.RowIdentity, env.RowIdentity)

	if env.CasePackSize != nil {
		config.Classifier.CasePackSize = *env.CasePackSize
	}
	if env.PriorWindow != nil {
		config.Classifier.PriorWindow = *env.PriorWindow
	}
	if env.LinesPerPage != nil {
		config.Render.LinesPerPage = *env.LinesPerPage
	}
	if env.IndentWidth != nil {
		config.Render.IndentWidth = env.IndentWidth
	}
	if env.Workbook != nil {
		config.Render.Workbook = *env.Workbook
	}
	if env.MaxConcurrency != nil {
		config.MaxConcurrency = *env.MaxConcurrency
	}
	if env.ArchiveProcessed != nil {
		config.ArchiveProcessed = *env.ArchiveProcessed
	}
	return nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./Data_Analysis_Suite_Output_Files"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "console"
	}
	if config.Intake.Encoding == "" {
		config.Intake.Encoding = "utf-8"
	}
	if len(config.Intake.Extensions) == 0 {
		config.Intake.Extensions = []string{".rpt", ".txt"}
	}
	if config.Classifier.CasePackSize == 0 {
		config.Classifier.CasePackSize = receiving.DefaultCasePackSize
	}
	if config.Classifier.PriorWindow == 0 {
		config.Classifier.PriorWindow = receiving.DefaultPriorWindow
	}
	if config.Classifier.RowIdentity == "" {
		config.Classifier.RowIdentity = string(receiving.IdentityText)
	}
	if config.Render.LinesPerPage == 0 {
		config.Render.LinesPerPage = 60
	}
	if config.Render.IndentWidth == nil {
		indent := DefaultIndentWidth
		config.Render.IndentWidth = &indent
	}
	if config.Render.OutputNameFormat == "" {
		config.Render.OutputNameFormat = "{name}"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// supportedEncodings lists the Intake.Encoding values the report reader
// understands.
var supportedEncodings = map[string]bool{
	"utf-8":        true,
	"utf-16le":     true,
	"utf-16be":     true,
	"windows-1252": true,
	"iso-8859-1":   true,
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	config.Intake.Encoding = strings.ToLower(config.Intake.Encoding)
	if !supportedEncodings[config.Intake.Encoding] {
		return fmt.Errorf("unsupported encoding %q", config.Intake.Encoding)
	}

	if config.Classifier.CasePackSize < 1 {
		return fmt.Errorf("case_pack_size must be at least 1, got %d", config.Classifier.CasePackSize)
	}
	if config.Classifier.PriorWindow < 1 {
		return fmt.Errorf("prior_window must be at least 1, got %d", config.Classifier.PriorWindow)
	}
	if _, err := receiving.ParseRowIdentity(config.Classifier.RowIdentity); err != nil {
		return err
	}

	if config.Render.LinesPerPage < 1 {
		return fmt.Errorf("lines_per_page must be at least 1, got %d", config.Render.LinesPerPage)
	}
	if config.Render.Indent() < 0 {
		return fmt.Errorf("indent_width must not be negative, got %d", config.Render.Indent())
	}

	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}

	switch config.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", config.LogFormat)
	}

	return nil
}

// ClassifierOptions converts the classifier settings for the engine.
func (c *MainConfig) ClassifierOptions() receiving.Options {
	identity, err := receiving.ParseRowIdentity(c.Classifier.RowIdentity)
	if err != nil {
		identity = receiving.IdentityText
	}
	return receiving.Options{
		CasePackSize: c.Classifier.CasePackSize,
		PriorWindow:  c.Classifier.PriorWindow,
		Identity:     identity,
	}
}
