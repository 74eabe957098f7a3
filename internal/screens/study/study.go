package study

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashiz/internal/progress"
	"github.com/abhisek/flashiz/internal/store"
	"github.com/abhisek/flashiz/internal/ui/components"
)

// Recorder saves a finished session.
type Recorder interface {
	RecordSession(ctx context.Context, userID string, in progress.SessionInput) (*progress.SessionResult, error)
}

type phase int

const (
	phaseFront phase = iota // card front shown, waiting for reveal
	phaseRate               // back revealed, waiting for a rating
	phaseSaving
	phaseDone
)

// Model is the interactive study session: reveal each card, rate it 1-5,
// then record the session. The summary is printed by the caller after the
// program exits so it stays in the scrollback.
type Model struct {
	ctx      context.Context
	recorder Recorder
	userID   string
	cards    []store.Card
	now      func() time.Time

	index   int
	phase   phase
	input   components.TextInput
	answers []progress.Answer
	started time.Time
	width   int

	result  *progress.SessionResult
	err     error
	aborted bool
}

// New creates a session over cards. now defaults to time.Now.
func New(ctx context.Context, recorder Recorder, userID string, cards []store.Card, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		ctx:      ctx,
		recorder: recorder,
		userID:   userID,
		cards:    cards,
		now:      now,
		started:  now(),
		input:    newRatingInput(),
	}
}

func newRatingInput() components.TextInput {
	return components.NewTextInput("1-5", true, 1)
}

func (m Model) Init() tea.Cmd {
	if len(m.cards) == 0 {
		return tea.Quit
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case sessionSavedMsg:
		m.result, m.err = msg.Result, msg.Err
		m.phase = phaseDone
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseRate {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.aborted = true
		m.phase = phaseDone
		return m, tea.Quit
	}

	switch m.phase {
	case phaseFront:
		switch key {
		case "enter", "space":
			m.phase = phaseRate
			m.input = newRatingInput()
			return m, m.input.Init()
		case "esc", "q":
			return m.finish()
		}
		return m, nil

	case phaseRate:
		switch key {
		case "enter":
			return m.submitRating()
		case "esc":
			return m.finish()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// Keys are ignored while saving.
	return m, nil
}

func (m Model) submitRating() (tea.Model, tea.Cmd) {
	rating, err := m.input.NumericValue()
	if err != nil || rating < 1 || rating > 5 {
		m.input.Reject("Enter a rating from 1 to 5")
		return m, nil
	}

	m.answers = append(m.answers, progress.Answer{CardID: m.cards[m.index].ID, Rating: rating})
	m.index++
	if m.index >= len(m.cards) {
		return m.finish()
	}
	m.phase = phaseFront
	return m, nil
}

// finish records the answers given so far. A session without answers
// ends without writing anything.
func (m Model) finish() (tea.Model, tea.Cmd) {
	if len(m.answers) == 0 {
		m.phase = phaseDone
		return m, tea.Quit
	}
	m.phase = phaseSaving
	return m, m.save()
}

func (m Model) save() tea.Cmd {
	in := progress.SessionInput{
		Answers:  append([]progress.Answer(nil), m.answers...),
		Duration: m.now().Sub(m.started),
	}
	ctx, recorder, userID := m.ctx, m.recorder, m.userID
	return func() tea.Msg {
		res, err := recorder.RecordSession(ctx, userID, in)
		return sessionSavedMsg{Result: res, Err: err}
	}
}

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

// Result is the recorded session, nil when nothing was saved.
func (m Model) Result() *progress.SessionResult { return m.result }

// Err is the error from recording the session.
func (m Model) Err() error { return m.err }

// Aborted reports whether the learner discarded the session with Ctrl+C.
func (m Model) Aborted() bool { return m.aborted }

// Answers returns the ratings given so far.
func (m Model) Answers() []progress.Answer { return m.answers }
