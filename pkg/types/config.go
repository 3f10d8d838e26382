// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ChecksConfig holds thresholds for the rule-based detectors.
type ChecksConfig struct {
	// UntranslatedScore is the partial-ratio score at or above which a
	// target segment is flagged as possibly untranslated (default 90).
	UntranslatedScore int `json:"untranslated_score" yaml:"untranslated_score"`

	// NameScore is the fuzzy-ratio score at or above which a source name
	// is flagged as a likely typo of a target name (default 80).
	NameScore int `json:"name_score" yaml:"name_score"`

	// MinLengthRatio and MaxLengthRatio bound len(target)/len(source);
	// segments outside the band raise a length_ratio issue
	// (defaults 0.5 and 2.0).
	MinLengthRatio float64 `json:"min_length_ratio" yaml:"min_length_ratio"`
	MaxLengthRatio float64 `json:"max_length_ratio" yaml:"max_length_ratio"`
}

// DefaultChecksConfig returns the standard detector thresholds.
func DefaultChecksConfig() ChecksConfig {
	return ChecksConfig{
		UntranslatedScore: 90,
		NameScore:         80,
		MinLengthRatio:    0.5,
		MaxLengthRatio:    2.0,
	}
}

// DateOrder disambiguates numeric dates where both components could be
// the day or the month.
type DateOrder string

const (
	OrderDayFirst   DateOrder = "DMY"
	OrderMonthFirst DateOrder = "MDY"
)

// DatesConfig holds settings for cross-locale date extraction.
type DatesConfig struct {
	// Order resolves ambiguous numeric dates (default DMY).
	Order DateOrder `json:"order" yaml:"order"`

	// Locales selects the month-name tables consulted when deciding
	// whether a candidate has a month word nearby (default en, es, fr).
	Locales []string `json:"locales" yaml:"locales"`
}

// DefaultDatesConfig returns the standard date-extraction settings.
func DefaultDatesConfig() DatesConfig {
	return DatesConfig{
		Order:   OrderDayFirst,
		Locales: []string{"en", "es", "fr"},
	}
}

// LLMConfig holds settings for the remote-model checker.
type LLMConfig struct {
	// Model is the remote model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BatchSize is the number of segment pairs sent per request (default 8).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// MaxRetries is the number of retry attempts for failed API calls (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout is the per-request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DefaultLLMConfig returns the standard remote-checker settings.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:      "gpt-4o-mini",
		BatchSize:  8,
		MaxRetries: 2,
		Timeout:    30 * time.Second,
	}
}

// StoreConfig holds settings for run persistence.
type StoreConfig struct {
	// RunsDir is the base directory for run artifacts; the SQLite index
	// lives at RunsDir/index/transcheck.db.
	RunsDir string `json:"runs_dir" yaml:"runs_dir"`
}

// AnalysisConfig groups everything one comparison run needs.
type AnalysisConfig struct {
	Checks ChecksConfig `json:"checks" yaml:"checks"`
	Dates  DatesConfig  `json:"dates" yaml:"dates"`
}

// DefaultAnalysisConfig returns the standard run configuration.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		Checks: DefaultChecksConfig(),
		Dates:  DefaultDatesConfig(),
	}
}
