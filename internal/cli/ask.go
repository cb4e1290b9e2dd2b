package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ppiankov/rivalry/internal/model"
	"github.com/spf13/cobra"
)

var askJSON bool

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question",
	Long: `Ask classifies a question and answers it from the fact store.

An empty store is filled first (sources, then seed data).

Example:
  rivalry ask "Who has scored more goals?"
  rivalry ask "Messi assists" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the answer as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.ensureData(ctx); err != nil {
		return err
	}

	answer, err := a.engine.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if askJSON {
		return writeAnswerJSON(cmd.OutOrStdout(), answer)
	}
	printAnswer(cmd.OutOrStdout(), answer)
	return nil
}

func writeAnswerJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}
	return nil
}

// printAnswer renders an answer for a terminal
func printAnswer(w io.Writer, answer *model.Answer) {
	kind := color.New(color.FgCyan).SprintFunc()
	switch answer.Type {
	case model.KindNotFound:
		kind = color.New(color.FgYellow).SprintFunc()
	case model.KindClarification:
		kind = color.New(color.FgMagenta).SprintFunc()
	}

	fmt.Fprintf(w, "%s %s\n", color.New(color.Bold).Sprint("Q:"), answer.Question)
	fmt.Fprintf(w, "%s\n\n", kind("["+string(answer.Type)+"]"))
	fmt.Fprintln(w, answer.Answer)
}
