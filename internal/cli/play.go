package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"geoquiz-service/internal/app"
	"geoquiz-service/internal/config"
	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/logging"
)

// NewPlayCmd runs a quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		category    string
		format      string
		count       int
		showHistory bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take a quiz on the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			c, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}
			f, err := domain.ParseAnswerFormat(format)
			if err != nil {
				return err
			}
			if count == 0 {
				count = cfg.Quiz.DefaultCount
			}

			logger := logging.New(cfg.App.Name, cfg.App.Env, "warn")
			ctx := logging.IntoContext(cmd.Context(), logger)
			deps, err := openBackends(ctx, cfg)
			if err != nil {
				return err
			}
			defer deps.Close()

			presenter := newTerminalPresenter(cmd.OutOrStdout())
			service := app.NewQuizService(deps.questions, deps.history, presenter)
			if err := playQuiz(ctx, service, presenter, cmd.InOrStdin(), c, f, count); err != nil {
				return err
			}
			if showHistory {
				return service.LoadQuizHistory(ctx)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", string(domain.CategoryCapitals), "capitals, flags, languages or currencies")
	cmd.Flags().StringVar(&format, "format", string(domain.FormatFreeText), "mcq or free_text")
	cmd.Flags().IntVar(&count, "count", 0, "number of questions (defaults to quiz.default_count)")
	cmd.Flags().BoolVar(&showHistory, "history", false, "print past attempts after the quiz")
	return cmd
}

// playQuiz reads one answer per line until the quiz ends or input runs out.
func playQuiz(ctx context.Context, service *app.QuizService, presenter *terminalPresenter, in io.Reader, category domain.Category, format domain.AnswerFormat, count int) error {
	if err := service.StartQuiz(ctx, category, format, count); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for service.Session() != nil {
		presenter.prompt()
		if !scanner.Scan() {
			break
		}
		service.SubmitAnswer(ctx, presenter.resolve(scanner.Text()))
		if err := service.NextQuestion(ctx); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// terminalPresenter prints quiz events as plain text.
type terminalPresenter struct {
	out     io.Writer
	options []string
}

func newTerminalPresenter(out io.Writer) *terminalPresenter {
	return &terminalPresenter{out: out}
}

func (p *terminalPresenter) OnStart(e domain.StartEvent) {
	fmt.Fprintf(p.out, "== %s ==\n", e.Title)
	p.question(e.Prompt, e.Options, e.MediaRef, e.Index, e.Total)
}

func (p *terminalPresenter) OnQuestion(e domain.QuestionEvent) {
	p.question(e.Prompt, e.Options, e.MediaRef, e.Index, e.Total)
}

func (p *terminalPresenter) OnFeedback(e domain.FeedbackEvent) {
	fmt.Fprintln(p.out, e.Message)
	if e.Message != app.MessageCorrect {
		fmt.Fprintf(p.out, "The answer was %s.\n", e.CorrectAnswer)
	}
	if e.Explanation != "" {
		fmt.Fprintln(p.out, e.Explanation)
	}
	fmt.Fprintf(p.out, "Score %d, streak %d (best %d)\n\n", e.Score, e.CurrentStreak, e.HighestStreak)
}

func (p *terminalPresenter) OnEnd(e domain.EndEvent) {
	fmt.Fprintf(p.out, "Final score: %d/%d in %ds, best streak %d\n", e.Score, e.Total, e.DurationSeconds, e.HighestStreak)
}

func (p *terminalPresenter) OnHistory(entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No past attempts.")
		return
	}
	for _, h := range entries {
		fmt.Fprintf(p.out, "%s  %-10s %-9s %d/%d  %ds  streak %d\n",
			h.CompletedAt.Local().Format("2006-01-02 15:04"), h.Category, h.Format,
			h.Score, h.QuestionCount, h.DurationSeconds, h.HighestStreak)
	}
}

func (p *terminalPresenter) question(prompt string, options []string, mediaRef string, index, total int) {
	fmt.Fprintf(p.out, "Question %d/%d: %s\n", index+1, total, prompt)
	if mediaRef != "" {
		fmt.Fprintf(p.out, "  [%s]\n", mediaRef)
	}
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	p.options = options
}

func (p *terminalPresenter) prompt() {
	fmt.Fprint(p.out, "> ")
}

// resolve maps an option number to its text when the question has options.
func (p *terminalPresenter) resolve(line string) string {
	line = strings.TrimSpace(line)
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(p.options) {
		return p.options[n-1]
	}
	return line
}
