package study

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashiz/internal/achievements"
	"github.com/abhisek/flashiz/internal/level"
	"github.com/abhisek/flashiz/internal/progress"
	"github.com/abhisek/flashiz/internal/store"
)

type fakeRecorder struct {
	calls []progress.SessionInput
	res   *progress.SessionResult
	err   error
}

func (f *fakeRecorder) RecordSession(_ context.Context, _ string, in progress.SessionInput) (*progress.SessionResult, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

var testCards = []store.Card{
	{ID: "c1", Front: "dog", Back: "собака"},
	{ID: "c2", Front: "cat", Back: "кошка"},
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestModel(rec Recorder, cards []store.Card) (Model, *clock) {
	c := &clock{t: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	return New(context.Background(), rec, "u1", cards, c.now), c
}

// send feeds msgs through Update and returns the model and the last command.
func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestStudyRevealRateAndSave(t *testing.T) {
	rec := &fakeRecorder{res: &progress.SessionResult{
		Cards: []progress.CardAward{
			{CardID: "c1", Rating: 4, XP: 12},
			{CardID: "c2", Rating: 5, XP: 15},
		},
		CardXP:    27,
		SessionXP: 20,
		BonusXP:   50,
		Streak:    1,
		Before:    level.Progress{Level: 1},
		After:     level.Progress{Level: 2, XPIntoLevel: 2, XPRequiredForLevel: 200, XPToNext: 198},
		Unlocked: []progress.Unlock{{
			Definition: achievements.Definition{ID: "first_steps", Name: "Первые шаги", Rarity: achievements.RarityCommon},
			BonusXP:    50,
		}},
	}}
	m, clk := newTestModel(rec, testCards)

	assert.Contains(t, m.render(), "dog")
	assert.NotContains(t, m.render(), "собака")

	m, _ = send(t, m, specialKey(tea.KeyEnter))
	assert.Equal(t, phaseRate, m.phase)
	assert.Contains(t, m.render(), "собака")

	m, _ = send(t, m, keyPress('4'), specialKey(tea.KeyEnter))
	assert.Equal(t, phaseFront, m.phase)
	assert.Contains(t, m.render(), "cat")

	clk.t = clk.t.Add(90 * time.Second)
	m, cmd := send(t, m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}, keyPress('5'), specialKey(tea.KeyEnter))
	assert.Equal(t, phaseSaving, m.phase)
	require.NotNil(t, cmd)

	m, cmd = send(t, m, cmd())
	assert.True(t, isQuit(cmd))
	require.NoError(t, m.Err())
	require.Len(t, rec.calls, 1)
	assert.Equal(t, []progress.Answer{{CardID: "c1", Rating: 4}, {CardID: "c2", Rating: 5}}, rec.calls[0].Answers)
	assert.Equal(t, 90*time.Second, rec.calls[0].Duration)

	assert.Empty(t, m.render())
	summary := m.Summary()
	assert.Contains(t, summary, "Session complete")
	assert.Contains(t, summary, "dog → собака")
	assert.Contains(t, summary, "Level up! 1 → 2")
	assert.Contains(t, summary, "Первые шаги")
}

func TestStudyRejectsInvalidRating(t *testing.T) {
	rec := &fakeRecorder{res: &progress.SessionResult{}}
	m, _ := newTestModel(rec, testCards[:1])

	m, _ = send(t, m, specialKey(tea.KeyEnter), keyPress('x'))
	assert.Empty(t, m.input.Value(), "non-digits are dropped")

	tests := []rune{'9', '0'}
	for _, r := range tests {
		m, _ = send(t, m, keyPress(r), specialKey(tea.KeyEnter))
		assert.Equal(t, phaseRate, m.phase, "rating %c", r)
		assert.NotEmpty(t, m.input.Err())
		assert.Empty(t, m.input.Value())
	}
	m, _ = send(t, m, specialKey(tea.KeyEnter))
	assert.Equal(t, phaseRate, m.phase, "empty rating")
	assert.Empty(t, m.Answers())

	m, cmd := send(t, m, keyPress('3'), specialKey(tea.KeyEnter))
	assert.Equal(t, phaseSaving, m.phase)
	require.NotNil(t, cmd)
	assert.Equal(t, []progress.Answer{{CardID: "c1", Rating: 3}}, m.Answers())
}

func TestStudyEscFinishesEarly(t *testing.T) {
	rec := &fakeRecorder{res: &progress.SessionResult{}}
	m, _ := newTestModel(rec, testCards)

	m, _ = send(t, m, specialKey(tea.KeyEnter), keyPress('2'), specialKey(tea.KeyEnter))
	m, cmd := send(t, m, specialKey(tea.KeyEscape))
	require.Equal(t, phaseSaving, m.phase)

	// Keys pressed while saving change nothing.
	m, _ = send(t, m, specialKey(tea.KeyEnter))
	assert.Equal(t, phaseSaving, m.phase)

	m, _ = send(t, m, cmd())
	require.Len(t, rec.calls, 1)
	assert.Equal(t, []progress.Answer{{CardID: "c1", Rating: 2}}, rec.calls[0].Answers)
	assert.NotNil(t, m.Result())
}

func TestStudyEndsWithoutAnswers(t *testing.T) {
	tests := []struct {
		name        string
		key         tea.KeyPressMsg
		wantAborted bool
		wantSummary string
	}{
		{"esc", specialKey(tea.KeyEscape), false, "No answers recorded."},
		{"ctrl+c", tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, true, "Session discarded."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			m, _ := newTestModel(rec, testCards)

			m, cmd := send(t, m, tt.key)
			assert.True(t, isQuit(cmd))
			assert.Equal(t, tt.wantAborted, m.Aborted())
			assert.Empty(t, rec.calls)
			assert.Nil(t, m.Result())
			assert.Contains(t, m.Summary(), tt.wantSummary)
		})
	}
}

func TestStudyCtrlCDiscardsAnswers(t *testing.T) {
	rec := &fakeRecorder{}
	m, _ := newTestModel(rec, testCards)

	m, _ = send(t, m, specialKey(tea.KeyEnter), keyPress('5'), specialKey(tea.KeyEnter))
	m, cmd := send(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	assert.True(t, isQuit(cmd))
	assert.True(t, m.Aborted())
	assert.Empty(t, rec.calls)
}

func TestStudySaveError(t *testing.T) {
	errSave := errors.New("database is locked")
	rec := &fakeRecorder{err: errSave}
	m, _ := newTestModel(rec, testCards[:1])

	m, cmd := send(t, m, specialKey(tea.KeyEnter), keyPress('4'), specialKey(tea.KeyEnter))
	m, cmd = send(t, m, cmd())
	assert.True(t, isQuit(cmd))
	assert.ErrorIs(t, m.Err(), errSave)
	assert.Nil(t, m.Result())
}
