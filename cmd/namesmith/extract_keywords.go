package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/namesmith/internal/config"
	"github.com/jonathan/namesmith/internal/logging"
	"github.com/jonathan/namesmith/internal/observability"
)

var extractKeywordsCmd = &cobra.Command{
	Use:   "extract-keywords",
	Short: "Print the keywords and industry found in a description",
	RunE:  runExtractKeywords,
}

var (
	kwText      string
	kwInputFile string
	kwVerbose   bool
)

func init() {
	extractKeywordsCmd.Flags().StringVarP(&kwText, "text", "t", "", "Business description")
	extractKeywordsCmd.Flags().StringVarP(&kwInputFile, "in", "i", "", "Path to a text file with the description")
	extractKeywordsCmd.Flags().BoolVarP(&kwVerbose, "verbose", "v", false, "Print a readable summary instead of JSON")

	rootCmd.AddCommand(extractKeywordsCmd)
}

func runExtractKeywords(cmd *cobra.Command, _ []string) error {
	cfg, env, err := resolveConfig(config.Config{Text: kwText, In: kwInputFile}, "")
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
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("one of --text or --in is required")
	}

	// Keyword extraction never calls a model.
	cfg.APIKey, cfg.OpenAIAPIKey, cfg.RedisURL = "", "", ""
	rt, err := buildRuntime(cmd.Context(), cfg, env, logging.Discard(), false)
	if err != nil {
		return err
	}
	defer rt.Close()

	res := rt.service.Keywords(text)
	if kwVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintKeywords(res)
		return nil
	}
	return writeResult(cmd.OutOrStdout(), "", res, "")
}
