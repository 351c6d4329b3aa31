package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mendrika-alma/formagent/internal/agent"
	"github.com/mendrika-alma/formagent/internal/ai"
	"github.com/mendrika-alma/formagent/internal/browser"
	"github.com/mendrika-alma/formagent/internal/data"
	"github.com/mendrika-alma/formagent/internal/screenshot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	url          string
	dataFile     string
	apiKey       string
	provider     string
	model        string
	policy       string
	headed       bool
	timeout      time.Duration
	submitWait   time.Duration
	outDir       string
	previewWidth uint
	verbose      bool
)

func main() {
	// Load .env file if present (silently ignore if not found)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "formagent",
		Short: "Fill and submit a web form from a JSON record using AI field mapping",
		Long: `formagent opens a web form, asks an AI model to map your JSON data onto
the detected form fields, fills the form, has the model review the result
against a policy, and submits with a screenshot of the outcome.

Example:
  formagent --url "https://mendrika-alma.github.io/form-submission/" --data_file client.json`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&url, "url", "https://mendrika-alma.github.io/form-submission/", "URL of the form to fill")
	rootCmd.Flags().StringVar(&dataFile, "data_file", "", "JSON file containing form data (default: built-in sample record)")
	rootCmd.Flags().StringVar(&apiKey, "api_key", "", "API key (default: from provider environment variable)")
	rootCmd.Flags().StringVar(&provider, "provider", "", "AI provider: claude, openai (default: from env or claude)")
	rootCmd.Flags().StringVar(&model, "model", "", "Specific model override")
	rootCmd.Flags().StringVar(&policy, "policy", "", "Policy statement checked before submission")
	rootCmd.Flags().BoolVar(&headed, "headed", false, "Run the browser with a visible window")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Page load timeout")
	rootCmd.Flags().DurationVar(&submitWait, "submit-wait", 3*time.Second, "How long to wait after submitting before the screenshot")
	rootCmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory for the submission screenshot")
	rootCmd.Flags().UintVar(&previewWidth, "preview-width", 0, "Also write a preview image downscaled to this width")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed progress")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	// Determine AI provider
	selectedProvider := provider
	if selectedProvider == "" {
		selectedProvider = os.Getenv("FORMAGENT_PROVIDER")
		if selectedProvider == "" {
			selectedProvider = "claude"
		}
	}

	record := data.MockRecord()
	if dataFile != "" {
		loaded, err := data.Load(dataFile)
		if err != nil {
			return err
		}
		record = loaded
	}
	fmt.Printf("→ Loaded %d data fields\n", len(record))

	aiProvider, err := ai.NewProvider(selectedProvider, apiKey, model)
	if err != nil {
		return fmt.Errorf("AI provider init failed: %w", err)
	}

	fmt.Printf("→ Starting browser... ")
	session, err := browser.Start(browser.StartOptions{
		Headless:    !headed,
		Width:       1920,
		Height:      1080,
		PageTimeout: timeout,
	})
	if err != nil {
		fmt.Println("failed")
		return err
	}
	defer session.Close()
	fmt.Println("done")

	runner := agent.New(session, aiProvider, agent.Options{
		URL:        url,
		Policy:     policy,
		SubmitWait: submitWait,
		Screenshot: screenshot.Options{Dir: outDir, PreviewWidth: previewWidth},
	})

	fmt.Printf("→ Filling %s via %s\n", url, selectedProvider)
	outcome, err := runner.Run(context.Background(), record)
	if err != nil {
		if errors.Is(err, agent.ErrReviewRejected) {
			fmt.Printf("✗ Review rejected the submission: %s\n", outcome.ReviewNotes)
		}
		return err
	}

	if outcome.NoFields {
		fmt.Println("✓ No fields to fill, nothing to submit")
		return nil
	}

	fmt.Printf("✓ Filled %d fields (%d skipped), form submitted\n", outcome.FieldsFilled, outcome.FieldsSkipped)
	fmt.Printf("✓ Screenshot saved to %s\n", outcome.ScreenshotPath)
	if previewWidth > 0 {
		fmt.Printf("✓ Preview saved to %s\n", screenshot.PreviewPath(outcome.ScreenshotPath))
	}
	return nil
}
