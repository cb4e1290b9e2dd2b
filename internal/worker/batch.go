package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/rivalry/internal/model"
)

// Asker answers one question
type Asker interface {
	Ask(ctx context.Context, question string) (*model.Answer, error)
}

// AskResult is the outcome of one question of a batch
type AskResult struct {
	Index    int
	Question string
	Answer   *model.Answer
	Error    error
}

// BatchProcessor answers many questions concurrently
type BatchProcessor struct {
	asker       Asker
	concurrency int
	timeout     time.Duration
	onDone      func(*AskResult)
}

// NewBatchProcessor creates a new batch processor. A zero timeout means
// questions are bounded only by the caller's context.
func NewBatchProcessor(asker Asker, concurrency int, timeout time.Duration) *BatchProcessor {
	return &BatchProcessor{
		asker:       asker,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// OnResult registers a callback run by the worker after each question,
// e.g. to advance a progress bar. It must be safe for concurrent use.
func (b *BatchProcessor) OnResult(fn func(*AskResult)) {
	b.onDone = fn
}

// ProcessQuestions answers questions concurrently. Results are returned in
// input order.
func (b *BatchProcessor) ProcessQuestions(ctx context.Context, questions []string) []*AskResult {
	if len(questions) == 0 {
		return []*AskResult{}
	}

	pool := NewPool(b.concurrency, b.ask)
	results, ran := pool.Run(ctx, questions)

	for i := range results {
		if !ran[i] {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			results[i] = &AskResult{Index: i, Question: questions[i], Error: err}
		}
	}
	return results
}

func (b *BatchProcessor) ask(ctx context.Context, i int, question string) *AskResult {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	answer, err := b.asker.Ask(ctx, question)
	result := &AskResult{
		Index:    i,
		Question: question,
		Answer:   answer,
		Error:    err,
	}
	if b.onDone != nil {
		b.onDone(result)
	}
	return result
}

// ProcessFile reads questions from a file and answers them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AskResult, error) {
	questions, err := ReadQuestionsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return b.ProcessQuestions(ctx, questions), nil
}

// ReadQuestionsFromFile reads questions from a file (one per line),
// skipping blanks and # comments and dropping repeats.
func ReadQuestionsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var questions []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			questions = append(questions, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return questions, nil
}
