package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odiseo153/tailorcv/internal/config"
	"github.com/odiseo153/tailorcv/internal/ingestion"
	"github.com/odiseo153/tailorcv/internal/tailor"
)

var (
	anCVFile   string
	anJobTitle string
	anIndustry string
	anLanguage string
	anOut      string
	anVerbose  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a CV against a target role",
	Long:  `Analyze an existing CV (plain text or HTML file) against a job title and industry and print the structured result as JSON.`,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&anCVFile, "cv", "f", "", "Path to the CV file (.txt or .html)")
	analyzeCmd.Flags().StringVar(&anJobTitle, "job-title", "", "Target job title")
	analyzeCmd.Flags().StringVar(&anIndustry, "industry", "", "Target industry")
	analyzeCmd.Flags().StringVarP(&anLanguage, "language", "l", "", "Output language code (en, es, fr, zh)")
	analyzeCmd.Flags().StringVarP(&anOut, "out", "o", "", "Output path (defaults to stdout)")
	analyzeCmd.Flags().BoolVarP(&anVerbose, "verbose", "v", false, "Print progress to stderr")
	_ = analyzeCmd.MarkFlagRequired("cv")
	_ = analyzeCmd.MarkFlagRequired("job-title")
	_ = analyzeCmd.MarkFlagRequired("industry")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(anCVFile)
	if err != nil {
		return fmt.Errorf("failed to read CV: %w", err)
	}

	cvText := string(raw)
	if ext := strings.ToLower(anCVFile); strings.HasSuffix(ext, ".html") || strings.HasSuffix(ext, ".htm") {
		text, err := ingestion.HTMLToText(cvText)
		if err != nil {
			return fmt.Errorf("failed to read CV HTML: %w", err)
		}
		cvText = text
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	rt, err := buildRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.close()

	result, err := rt.engine.Analyze(ctx, tailor.AnalyzeInput{
		CVText:   cvText,
		JobTitle: anJobTitle,
		Industry: anIndustry,
		Language: anLanguage,
	}, cliProgress(anVerbose))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if anOut == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(anOut, out, 0o644)
}
