package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/ppiankov/rivalry/internal/worker"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	concurrency     int
	batchTimeout    time.Duration
	questionTimeout time.Duration
	batchOut        string
	noProgress      bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Answer many questions from a file in parallel",
	Long: `Batch answers questions concurrently:
- Read questions from input file (one per line, # for comments)
- Answer questions in parallel with configurable worker count
- Print answers in input order, or write them as JSON

Example:
  rivalry batch questions.txt
  rivalry batch questions.txt --concurrency 8 --out answers.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 5*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().DurationVar(&questionTimeout, "question-timeout", 10*time.Second, "timeout for individual questions")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write answers as JSON to this file")
	batchCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
}

// batchEntry is one line of the JSON output
type batchEntry struct {
	Question string `json:"question"`
	Answer   any    `json:"answer,omitempty"`
	Error    string `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.ensureData(ctx); err != nil {
		return err
	}

	questions, err := worker.ReadQuestionsFromFile(file)
	if err != nil {
		return fmt.Errorf("read questions: %w", err)
	}

	workers := concurrency
	if workers <= 0 {
		workers = a.cfg.Concurrency.Workers
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Questions:    %d\n", len(questions))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(a.engine, workers, questionTimeout)
	var bar *progressbar.ProgressBar
	if !noProgress && len(questions) > 0 {
		bar = progressbar.NewOptions(len(questions),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("answering"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish(),
		)
		processor.OnResult(func(*worker.AskResult) { _ = bar.Add(1) })
	}

	results := processor.ProcessQuestions(ctx, questions)
	if bar != nil {
		_ = bar.Finish()
	}

	failures := 0
	entries := make([]batchEntry, 0, len(results))
	for _, res := range results {
		entry := batchEntry{Question: res.Question}
		if res.Error != nil {
			failures++
			entry.Error = res.Error.Error()
		} else {
			entry.Answer = res.Answer
		}
		entries = append(entries, entry)
	}

	if batchOut != "" {
		if err := writeBatchJSON(batchOut, entries); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %d answers to %s\n", len(entries), batchOut)
	} else {
		out := cmd.OutOrStdout()
		for _, res := range results {
			if res.Error != nil {
				fmt.Fprintf(out, "%s %s: %v\n\n", color.RedString("✗"), res.Question, res.Error)
				continue
			}
			printAnswer(out, res.Answer)
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintf(os.Stderr, "  Total:     %d\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", len(results)-failures)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failures)
	return nil
}

func writeBatchJSON(path string, entries []batchEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write answers: %w", err)
	}
	return nil
}
