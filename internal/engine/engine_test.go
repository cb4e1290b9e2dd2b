package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/rivalry/internal/model"
	"github.com/ppiankov/rivalry/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededEngine(t *testing.T) *Engine {
	t.Helper()
	mem := store.NewMemory()
	categories, stats := store.Seed(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, mem.Replace(context.Background(), categories, stats))
	return New(mem, model.DefaultRoster(), zerolog.Nop())
}

func TestAsk_ComparisonSingleRecord(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Replace(context.Background(),
		[]model.Category{{ID: 1, Name: "goals", DisplayName: "Goals"}},
		[]model.StatRecord{{ID: 1, CategoryID: 1, Description: "Total Career Goals", ValueA: "821", ValueB: "837"}},
	))
	e := New(mem, model.DefaultRoster(), zerolog.Nop())

	answer, err := e.Ask(context.Background(), "Who has scored more goals?")
	require.NoError(t, err)
	assert.Equal(t, model.KindCategoryComparison, answer.Type)
	assert.Equal(t, "Comparing Goals between Messi and Ronaldo:\n\n• Total Career Goals: Messi (821) vs Ronaldo (837)", answer.Answer)
	assert.Equal(t, "Who has scored more goals?", answer.Question)
	assert.Len(t, answer.Records(), 1)
}

func TestAsk_Scenarios(t *testing.T) {
	e := seededEngine(t)

	tests := []struct {
		question string
		kind     model.AnswerKind
		contains string
	}{
		{"Messi goals", model.KindSinglePlayer, "Lionel Messi's Goals Statistics:"},
		{"blah blah nonsense", model.KindClarification, "What would you like to know?"},
		{"who has world cup", model.KindDirectAnswer, "Lionel Messi has won the World Cup (2022 with Argentina)."},
		{"Who has more Champions League titles?", model.KindSpecificComparison, "Ronaldo leads with 5 compared to Messi's 4 (a margin of 1)."},
		{"Compare their assists", model.KindCategoryComparison, "• Total Career Assists: Messi (338) vs Ronaldo (258)"},
		{"Ronaldo penalties", model.KindSinglePlayer, "• Penalty Conversion Rate: 84%"},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			answer, err := e.Ask(context.Background(), tt.question)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, answer.Type)
			assert.Contains(t, answer.Answer, tt.contains)
			assert.Equal(t, tt.question, answer.Question)
		})
	}
}

func TestAsk_SinglePlayerData(t *testing.T) {
	e := seededEngine(t)

	answer, err := e.Ask(context.Background(), "Messi goals")
	require.NoError(t, err)
	assert.Equal(t, "messi", answer.Player)
	assert.Equal(t, "Goals", answer.Category)
	require.Len(t, answer.Records(), 4)
	assert.NotContains(t, answer.Answer, "837")
}

func TestAsk_EmptyQuestion(t *testing.T) {
	e := seededEngine(t)

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := e.Ask(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	}
}

type failingStore struct{ err error }

func (f failingStore) ListCategories(context.Context) ([]model.Category, error) {
	return nil, f.err
}

func (f failingStore) ListStats(context.Context, int64) ([]model.StatRecord, error) {
	return nil, f.err
}

func TestAsk_StoreFailure(t *testing.T) {
	boom := errors.New("disk I/O error")
	e := New(failingStore{err: boom}, model.DefaultRoster(), zerolog.Nop())

	_, err := e.Ask(context.Background(), "Who has more goals?")
	assert.ErrorIs(t, err, boom)

	// Clarification never touches the store.
	answer, err := e.Ask(context.Background(), "hello there")
	require.NoError(t, err)
	assert.Equal(t, model.KindClarification, answer.Type)
}

func TestAsk_Concurrent(t *testing.T) {
	e := seededEngine(t)
	want, err := e.Ask(context.Background(), "Who has more trophies?")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Ask(context.Background(), "Who has more trophies?")
			assert.NoError(t, err)
			assert.Equal(t, want.Answer, got.Answer)
		}()
	}
	wg.Wait()
}

func TestClassify(t *testing.T) {
	e := seededEngine(t)
	intent := e.Classify("who has ballon d'or")
	assert.Equal(t, model.Intent{Category: "awards", SpecificStat: "ballon_dor", Mode: model.ModeDirectQuestion}, intent)
}
