package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odiseo153/tailorcv/internal/config"
	"github.com/odiseo153/tailorcv/internal/export"
	"github.com/odiseo153/tailorcv/internal/tailor"
)

var (
	genJobFile      string
	genJobText      string
	genDocument     string
	genDocumentType string
	genCandidate    string
	genTemplateFile string
	genTemplateID   string
	genExtraInfo    string
	genCareerField  string
	genPhotoURL     string
	genLanguage     string
	genOut          string
	genPDF          bool
	genVerbose      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored HTML CV",
	Long:  `Generate a tailored CV from a job offer (text or file) or from an uploaded candidate document (PDF or photo), optionally preserving an HTML template's layout.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genJobFile, "job", "j", "", "Path to job offer text file (mutually exclusive with --job-text and --document)")
	generateCmd.Flags().StringVar(&genJobText, "job-text", "", "Job offer text inline")
	generateCmd.Flags().StringVarP(&genDocument, "document", "d", "", "Path to a candidate document (PDF or photo) used as both job context and candidate info")
	generateCmd.Flags().StringVar(&genDocumentType, "document-type", "pdf", `Document kind: "pdf" or "image"`)
	generateCmd.Flags().StringVarP(&genCandidate, "candidate", "c", "", "Path to candidate info text file")
	generateCmd.Flags().StringVarP(&genTemplateFile, "template", "t", "", "Path to an HTML template whose layout must be preserved")
	generateCmd.Flags().StringVar(&genTemplateID, "template-id", "", "Template id resolved through the template registry")
	generateCmd.Flags().StringVar(&genExtraInfo, "extra-info", "", "Additional candidate information")
	generateCmd.Flags().StringVar(&genCareerField, "career-field", "", "Target career field")
	generateCmd.Flags().StringVar(&genPhotoURL, "photo-url", "", "Photo URL to embed in the CV")
	generateCmd.Flags().StringVarP(&genLanguage, "language", "l", "", "Output language code (en, es, fr, zh)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Output path (defaults to stdout)")
	generateCmd.Flags().BoolVar(&genPDF, "pdf", false, "Render the result to PDF instead of HTML (requires Chrome)")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print progress to stderr")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	input, closeInput, err := buildGenerateInput()
	if err != nil {
		return err
	}
	defer closeInput()

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

	result, err := rt.engine.CreateCV(ctx, input, cliProgress(genVerbose))
	if err != nil {
		return err
	}

	out := []byte(result.HTML)
	if genPDF {
		pdf, err := export.ToPDF(ctx, result.HTML, export.DefaultTimeout)
		if err != nil {
			return fmt.Errorf("failed to render PDF: %w", err)
		}
		out = pdf
	}

	if genOut == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(genOut, out, 0o644); err != nil {
		return err
	}
	if genVerbose {
		fmt.Fprintf(os.Stderr, "wrote %s\n", genOut)
	}
	return nil
}

func buildGenerateInput() (tailor.CreateInput, func(), error) {
	closeInput := func() {}
	input := tailor.CreateInput{
		Kind:        tailor.InputText,
		TemplateID:  genTemplateID,
		ExtraInfo:   genExtraInfo,
		CareerField: genCareerField,
		PhotoURL:    genPhotoURL,
		Language:    genLanguage,
	}

	sources := 0
	for _, set := range []bool{genJobFile != "", genJobText != "", genDocument != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return input, closeInput, fmt.Errorf("exactly one of --job, --job-text or --document is required")
	}

	switch {
	case genDocument != "":
		kind := tailor.InputKind(genDocumentType)
		if kind != tailor.InputPDF && kind != tailor.InputImage {
			return input, closeInput, fmt.Errorf(`--document-type must be "pdf" or "image"`)
		}
		file, err := os.Open(genDocument)
		if err != nil {
			return input, closeInput, fmt.Errorf("failed to open document: %w", err)
		}
		closeInput = func() { _ = file.Close() }
		input.Kind = kind
		input.File = file

	case genJobFile != "":
		job, err := os.ReadFile(genJobFile)
		if err != nil {
			return input, closeInput, fmt.Errorf("failed to read job offer: %w", err)
		}
		input.Data = string(job)

	default:
		input.Data = genJobText
	}

	if genCandidate != "" {
		info, err := os.ReadFile(genCandidate)
		if err != nil {
			return input, closeInput, fmt.Errorf("failed to read candidate info: %w", err)
		}
		input.StructuredInfo = string(info)
	}

	if genTemplateFile != "" {
		html, err := os.ReadFile(genTemplateFile)
		if err != nil {
			return input, closeInput, fmt.Errorf("failed to read template: %w", err)
		}
		input.TemplateHTML = string(html)
	}

	return input, closeInput, nil
}

// cliProgress prints milestones to stderr when --verbose is set.
func cliProgress(verbose bool) *tailor.Progress {
	if !verbose {
		return nil
	}
	return &tailor.Progress{
		OnProgress: func(percent int) {
			fmt.Fprintf(os.Stderr, "progress: %d%%\n", percent)
		},
		OnInfoProcessed: func() {
			fmt.Fprintln(os.Stderr, "candidate information extracted")
		},
		OnTemplateProcessed: func() {
			fmt.Fprintln(os.Stderr, "template resolved")
		},
	}
}
