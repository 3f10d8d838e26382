// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	yaml "go.yaml.in/yaml/v3"

	"github.com/pdiddy/transcheck/internal/align"
	"github.com/pdiddy/transcheck/internal/annotate"
	"github.com/pdiddy/transcheck/internal/checks"
	"github.com/pdiddy/transcheck/internal/docext"
	"github.com/pdiddy/transcheck/internal/glossary"
	"github.com/pdiddy/transcheck/internal/llmcheck"
	"github.com/pdiddy/transcheck/internal/runstore"
	"github.com/pdiddy/transcheck/internal/secrets"
	"github.com/pdiddy/transcheck/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <original> <translation>",
	Short: "Compare a translation against its original document",
	Long: `Analyze extracts text from both documents (txt, docx, or pdf), splits
them into aligned segment pairs, and runs every detector over each pair.
The report goes to stdout as JSON or YAML.

With --llm the rule battery is replaced by the remote-model checker,
which needs an openai-api-key secret or llm.api_key config entry.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("glossary", "", "CSV glossary file (term,preferred_translation)")
	analyzeCmd.Flags().Bool("llm", false, "use the remote-model checker instead of the rule battery")
	analyzeCmd.Flags().String("model", "", "remote model identifier (default gpt-4o-mini)")
	analyzeCmd.Flags().String("annotate", "", "write a reviewer-annotated Markdown copy of the translation to this path")
	analyzeCmd.Flags().String("format", "json", "report output format: json or yaml")
	analyzeCmd.Flags().Bool("store", false, "persist the run in the runs database")
	analyzeCmd.Flags().String("runs-dir", "runs", "base directory for stored runs")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	srcPath, tgtPath := args[0], args[1]

	srcText := docext.ToText(srcPath)
	if srcText == "" {
		return fmt.Errorf("no text could be extracted from the original document %s", srcPath)
	}
	tgtText := docext.ToText(tgtPath)
	if tgtText == "" {
		return fmt.Errorf("no text could be extracted from the translated document %s", tgtPath)
	}

	srcSegments, tgtSegments := align.Pair(srcText, tgtText)

	useLLM, _ := cmd.Flags().GetBool("llm")

	var (
		report types.Report
		mode   = "rules"
		err    error
	)
	if useLLM {
		mode = "llm"
		report, err = runLLM(cmd, srcSegments, tgtSegments)
		if err != nil {
			return err
		}
	} else {
		glossaryPath, _ := cmd.Flags().GetString("glossary")
		var entries []types.GlossaryEntry
		if glossaryPath != "" {
			entries = glossary.Load(glossaryPath)
			if entries == nil {
				fmt.Fprintf(os.Stderr, "Warning: glossary %s could not be read, detector disabled\n", glossaryPath)
			}
		}
		report = checks.NewEngine(analysisConfig(), entries).Run(srcSegments, tgtSegments)
	}

	if annotatePath, _ := cmd.Flags().GetString("annotate"); annotatePath != "" {
		if err := writeAnnotated(annotatePath, tgtSegments, report); err != nil {
			return err
		}
	}

	if doStore, _ := cmd.Flags().GetBool("store"); doStore {
		runsDir, _ := cmd.Flags().GetString("runs-dir")
		id, err := storeRun(cmd.Context(), runsDir, srcPath, tgtPath, mode, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Stored run %s\n", id)
	}

	format, _ := cmd.Flags().GetString("format")
	return writeReport(os.Stdout, report, format)
}

// analysisConfig builds the run configuration from defaults plus any
// overrides in the config file.
func analysisConfig() types.AnalysisConfig {
	cfg := types.DefaultAnalysisConfig()

	if v := viper.GetInt("checks.untranslated_score"); v > 0 {
		cfg.Checks.UntranslatedScore = v
	}
	if v := viper.GetInt("checks.name_score"); v > 0 {
		cfg.Checks.NameScore = v
	}
	if v := viper.GetFloat64("checks.min_length_ratio"); v > 0 {
		cfg.Checks.MinLengthRatio = v
	}
	if v := viper.GetFloat64("checks.max_length_ratio"); v > 0 {
		cfg.Checks.MaxLengthRatio = v
	}
	if v := viper.GetString("dates.order"); v != "" {
		cfg.Dates.Order = types.DateOrder(v)
	}
	if v := viper.GetStringSlice("dates.locales"); len(v) > 0 {
		cfg.Dates.Locales = v
	}
	return cfg
}

func runLLM(cmd *cobra.Command, srcSegments, tgtSegments []string) (types.Report, error) {
	llmCfg := types.DefaultLLMConfig()
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		llmCfg.Model = model
	} else if v := viper.GetString("llm.model"); v != "" {
		llmCfg.Model = v
	}

	key := secretDefault(secrets.KeyOpenAI, viper.GetString("llm.api_key"))
	if err := llmcheck.ValidateKey(key); err != nil {
		return types.Report{}, err
	}

	backend := &llmcheck.OpenAIBackend{
		APIKey:     key,
		Model:      llmCfg.Model,
		MaxRetries: llmCfg.MaxRetries,
		Client:     &http.Client{Timeout: llmCfg.Timeout},
		LogW:       os.Stderr,
	}
	return llmcheck.Run(cmd.Context(), backend, srcSegments, tgtSegments, llmCfg.BatchSize)
}

func writeAnnotated(path string, tgtSegments []string, report types.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating annotated copy: %w", err)
	}
	defer f.Close()

	if len(report.Issues) == 0 {
		return annotate.WritePlain(f, tgtSegments)
	}
	return annotate.WriteReview(f, tgtSegments, report.Issues)
}

func storeRun(ctx context.Context, runsDir, srcPath, tgtPath, mode string, report types.Report) (string, error) {
	store, err := runstore.Open(types.StoreConfig{RunsDir: runsDir})
	if err != nil {
		return "", err
	}
	defer store.Close()

	run := runstore.Run{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		SourcePath: srcPath,
		TargetPath: tgtPath,
		Mode:       mode,
		Summary:    report.Summary,
		Report:     report,
	}
	if err := store.Save(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}

func writeReport(w *os.File, report types.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(report)
	default:
		return fmt.Errorf("unknown output format %q: use json or yaml", format)
	}
}
