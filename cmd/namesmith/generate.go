package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/namesmith/internal/config"
	"github.com/jonathan/namesmith/internal/generation"
	"github.com/jonathan/namesmith/internal/logging"
	"github.com/jonathan/namesmith/internal/observability"
	"github.com/jonathan/namesmith/internal/schemas"
	"github.com/jonathan/namesmith/internal/types"
	rootschemas "github.com/jonathan/namesmith/schemas"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate business names from a description",
	Long: `Generate business names and taglines from a description given inline
(--text), in a file (--in) or on a web page (--url). The result is printed as
JSON, or written to --out and checked against the generation result schema.`,
	RunE: runGenerate,
}

var (
	genText       string
	genInputFile  string
	genURL        string
	genTone       string
	genCount      int
	genUseAI      bool
	genOutputFile string
	genVerbose    bool
	genConfigFile string
)

func init() {
	generateCmd.Flags().StringVarP(&genText, "text", "t", "", "Business description")
	generateCmd.Flags().StringVarP(&genInputFile, "in", "i", "", "Path to a text file with the description")
	generateCmd.Flags().StringVar(&genURL, "url", "", "Web page to read the description from")
	generateCmd.Flags().StringVar(&genTone, "tone", "", "Tone: professional, playful, elegant or minimal")
	generateCmd.Flags().IntVarP(&genCount, "count", "n", 0, "Number of names (default from DEFAULT_COUNT)")
	generateCmd.Flags().BoolVar(&genUseAI, "ai", false, "Blend in names from the configured language model")
	generateCmd.Flags().StringVarP(&genOutputFile, "out", "o", "", "Write the JSON result to this file")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print progress and a readable summary to stderr")
	generateCmd.Flags().StringVar(&genConfigFile, "config", "", "Path to a JSON config file")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg := config.Config{
		Text:    genText,
		In:      genInputFile,
		URL:     genURL,
		Tone:    genTone,
		Count:   genCount,
		UseAI:   genUseAI,
		Out:     genOutputFile,
		Verbose: genVerbose,
	}
	cfg, env, err := resolveConfig(cfg, genConfigFile)
	if err != nil {
		return err
	}

	text := cfg.Text
	if cfg.In != "" {
		data, err := os.ReadFile(cfg.In)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text = string(data)
	}
	if text == "" && cfg.URL == "" {
		return fmt.Errorf("one of --text, --in or --url is required")
	}

	log := logging.Discard()
	if cfg.Verbose {
		log = logging.New(logging.Options{Level: "debug", Output: cmd.ErrOrStderr()})
	}

	ctx := cmd.Context()
	rt, err := buildRuntime(ctx, cfg, env, log, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	var onProgress generation.ProgressCallback
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if cfg.Verbose {
		onProgress = printer.PrintProgress
	}

	resp, err := rt.service.Run(ctx, types.GenerateRequest{
		InputText: text,
		Tone:      cfg.Tone,
		Count:     cfg.Count,
		UseAI:     cfg.UseAI,
		SourceURL: cfg.URL,
	}, onProgress)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintAnalysis(resp)
		printer.PrintNames(resp.Names)
		printer.PrintCategories(resp.Categories, resp.CategoryOrder)
	}

	return writeResult(cmd.OutOrStdout(), cfg.Out, resp, rootschemas.GenerationResult)
}

// resolveConfig layers flags over the --config file over the environment and
// validates the result.
func resolveConfig(flags config.Config, configPath string) (config.Config, *config.Env, error) {
	cfg := flags
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, nil, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
		cfg.UseAI = cfg.UseAI || fileCfg.UseAI
		cfg.Verbose = cfg.Verbose || fileCfg.Verbose
	}

	env, err := config.LoadEnv()
	if err != nil {
		return cfg, nil, err
	}
	cfg = env.ApplyTo(cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, env, nil
}

// writeResult prints v as indented JSON, or writes it to path and validates
// the file against the named schema.
func writeResult(stdout io.Writer, path string, v any, schemaName string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if err := schemas.ValidateFile(schemaName, path); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("output does not validate against schema: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
	}

	_, _ = fmt.Fprintf(stdout, "Output: %s\n", path)
	return nil
}
