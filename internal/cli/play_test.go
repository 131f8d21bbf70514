package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoquiz-service/internal/app"
	"geoquiz-service/internal/domain"
	"geoquiz-service/internal/infra/memory"
)

func newTestService(questions []domain.Question) (*app.QuizService, *terminalPresenter, *memory.HistoryStore, *bytes.Buffer) {
	var out bytes.Buffer
	presenter := newTerminalPresenter(&out)
	history := memory.NewHistoryStore()
	catalog := memory.NewQuestionCatalog(memory.NewStaticQuestionLoader(questions), time.Minute)
	return app.NewQuizService(catalog, history, presenter), presenter, history, &out
}

func TestPlayQuizAcceptsOptionNumbers(t *testing.T) {
	ctx := context.Background()
	service, presenter, history, out := newTestService([]domain.Question{{
		Category:      domain.CategoryCapitals,
		Format:        domain.FormatMCQ,
		Prompt:        "What is the capital of Australia?",
		Options:       []string{"Sydney", "Melbourne", "Canberra", "Perth"},
		CorrectAnswer: "Canberra",
	}})

	err := playQuiz(ctx, service, presenter, strings.NewReader("3\n"), domain.CategoryCapitals, domain.FormatMCQ, 5)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "== Capital Cities ==")
	assert.Contains(t, text, "  3) Canberra")
	assert.Contains(t, text, "Correct!")
	assert.Contains(t, text, "Final score: 1/1")
	assert.Nil(t, service.Session())

	entries, err := history.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Score)
}

func TestPlayQuizShowsCorrectAnswerOnMiss(t *testing.T) {
	ctx := context.Background()
	service, presenter, _, out := newTestService([]domain.Question{{
		Category:      domain.CategoryCapitals,
		Format:        domain.FormatFreeText,
		Prompt:        "What is the capital of France?",
		CorrectAnswer: "Paris",
	}})

	err := playQuiz(ctx, service, presenter, strings.NewReader("Lyon\n"), domain.CategoryCapitals, domain.FormatFreeText, 1)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Incorrect.")
	assert.Contains(t, out.String(), "The answer was Paris.")
	assert.Contains(t, out.String(), "Final score: 0/1")
}

func TestPlayQuizStopsAtEndOfInput(t *testing.T) {
	ctx := context.Background()
	service, presenter, history, out := newTestService(memory.SampleQuestions())

	err := playQuiz(ctx, service, presenter, strings.NewReader(""), domain.CategoryCapitals, domain.FormatFreeText, 3)
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "Final score")
	assert.NotNil(t, service.Session())
	entries, err := history.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlayQuizNoQuestions(t *testing.T) {
	service, presenter, _, _ := newTestService(nil)

	err := playQuiz(context.Background(), service, presenter, strings.NewReader("x\n"), domain.CategoryFlags, domain.FormatMCQ, 3)
	assert.ErrorIs(t, err, domain.ErrNoQuestions)
}

func TestResolveOnlyMapsInRangeNumbers(t *testing.T) {
	p := newTerminalPresenter(&bytes.Buffer{})
	p.options = []string{"Yen", "Won"}

	assert.Equal(t, "Won", p.resolve(" 2 "))
	assert.Equal(t, "7", p.resolve("7"))
	assert.Equal(t, "yen", p.resolve("yen"))
}
