package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pagesift/pagesift/internal/logger"
	"github.com/pagesift/pagesift/internal/output"
	"github.com/pagesift/pagesift/pkg/extract"
	"github.com/pagesift/pagesift/pkg/render"
	"github.com/pagesift/pagesift/pkg/sanitize"
	"github.com/pagesift/pagesift/pkg/score"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract an article from HTML markup",
	Long: `Extract the readable content and metadata from an HTML page.

Markup comes from --input or stdin. Extraction never fails: pages with
no recognizable article produce a best-effort fallback body.

Examples:
  # Extract from a saved page
  pagesift extract -i page.html -u "https://example.com/post"

  # Markdown content, YAML envelope
  pagesift extract -i page.html --format markdown --output-format yaml

  # Custom scoring weights
  pagesift extract -i page.html --weights weights.yaml`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()

	// Input
	flags.StringP("input", "i", "", "input HTML file (default: stdin)")
	flags.StringP("url", "u", "", "base URI of the document (for site-name fallback)")
	flags.String("fallback-title", "", "title when the page declares none")

	// Pipeline tuning
	flags.String("weights", "", "path to a YAML scoring weight table")
	flags.String("preset", "default", "sanitize preset: default, minimal, aggressive")
	flags.String("max-content-size", "", "truncate input above this size (e.g. 1MB; default 5MB)")

	// Output
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("output-dir", "", "write to <dir>/<title-stem>.<ext> instead of stdout")
	flags.String("strip-chars", "", "extra characters to strip from derived filenames")
	flags.String("output-format", "json", "output envelope: json, jsonl, yaml")
	flags.String("format", "html", "content format inside the article: html, markdown, text")
	flags.Bool("stats", false, "print extraction statistics to stderr")
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	markup, err := readInput(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	opts, err := buildOptions(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	baseURI, _ := cmd.Flags().GetString("url")
	fallbackTitle, _ := cmd.Flags().GetString("fallback-title")

	result := extract.New(opts).ExtractWithStats(string(markup), baseURI, fallbackTitle)
	article := result.Article

	// Convert the content fragment when a non-HTML format is requested.
	formatStr, _ := cmd.Flags().GetString("format")
	transformer, err := render.New(formatStr)
	if err != nil {
		logError("%v", err)
		return err
	}
	converted, err := transformer.Transform(article.Content)
	if err != nil {
		// Conversion trouble is not fatal; keep the HTML fragment.
		logger.Warn("content conversion failed, keeping html", "format", transformer.Name(), "error", err)
	} else {
		article.Content = converted
	}

	if err := writeArticle(cmd, article, opts); err != nil {
		logError("%v", err)
		return err
	}

	if showStats, _ := cmd.Flags().GetBool("stats"); showStats {
		fmt.Fprintln(os.Stderr, result.Stats.String())
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning [%s]: %s\n", w.Phase, w.Message)
		}
	}

	return nil
}

func readInput(cmd *cobra.Command) ([]byte, error) {
	inputPath, _ := cmd.Flags().GetString("input")
	if inputPath == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(inputPath) //#nosec G304 -- CLI tool reads a user-specified input file
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func buildOptions(cmd *cobra.Command) (*extract.Options, error) {
	opts := extract.DefaultOptions()

	if weightsPath, _ := cmd.Flags().GetString("weights"); weightsPath != "" {
		w, err := score.LoadWeights(weightsPath)
		if err != nil {
			return nil, err
		}
		opts.Weights = w
		logger.Debug("loaded weight table", "path", weightsPath, "version", w.Version)
	}

	preset, _ := cmd.Flags().GetString("preset")
	switch strings.ToLower(preset) {
	case "default", "":
	case "minimal":
		opts.Sanitize = sanitize.PresetMinimal()
	case "aggressive":
		opts.Sanitize = sanitize.PresetAggressive()
	default:
		return nil, fmt.Errorf("unknown preset: %s (use 'default', 'minimal' or 'aggressive')", preset)
	}

	if sizeStr, _ := cmd.Flags().GetString("max-content-size"); sizeStr != "" {
		size, err := humanize.ParseBytes(sizeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid max-content-size %q: %w", sizeStr, err)
		}
		opts.MaxContentSize = int(size)
	}

	stripChars, _ := cmd.Flags().GetString("strip-chars")
	opts.DisallowedFilenameChars = stripChars

	return opts, nil
}

func writeArticle(cmd *cobra.Command, article *extract.Article, opts *extract.Options) error {
	formatStr, _ := cmd.Flags().GetString("output-format")

	outPath, _ := cmd.Flags().GetString("output")
	if outDir, _ := cmd.Flags().GetString("output-dir"); outPath == "" && outDir != "" {
		outPath = filepath.Join(outDir, article.FileStem(opts.DisallowedFilenameChars)+"."+formatStr)
	}

	outFile := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to a user-specified output file
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		outFile = f
		logger.Debug("writing output", "path", outPath)
	}

	writer, err := output.NewWriter(outFile, output.Format(formatStr))
	if err != nil {
		return err
	}

	if err := writer.Write(article); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return writer.Close()
}
