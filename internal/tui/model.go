// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/konjug/internal/model"
	"github.com/verte-zerg/konjug/internal/session"
)

var (
	boxStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	hintKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FA8D3")).Bold(true)
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FA8D3"))
	inputStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6CC070"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	highlightStyle = lipgloss.NewStyle().Reverse(true)
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Recorder persists completed quiz runs. The quiz itself never reads back.
type Recorder interface {
	InsertQuiz(ctx context.Context, stats model.QuizStats) (int64, error)
}

// Model implements the Bubble Tea quiz UI around one session.
type Model struct {
	sess     *session.Session
	recorder Recorder
	keys     keyMap

	width  int
	height int

	startedAt time.Time
	recorded  bool

	err error
}

// NewModel constructs a quiz TUI model. recorder may be nil to disable history.
func NewModel(sess *session.Session, recorder Recorder) *Model {
	return &Model{
		sess:      sess,
		recorder:  recorder,
		keys:      newKeyMap(),
		startedAt: time.Now(),
	}
}

// Session exposes the underlying session for the caller's final report.
func (m *Model) Session() *session.Session { return m.sess }

// Err returns the fatal error that stopped the loop, if any.
func (m *Model) Err() error { return m.err }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Each key press maps to exactly one session
// event; the strict render/apply alternation lives in the Bubble Tea loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.sess.Phase() {
	case session.PhaseSelect:
		return m.handleSelectKey(msg)
	case session.PhaseQuestion:
		return m.handleQuestionKey(msg)
	case session.PhaseFeedback:
		return m.handleFeedbackKey(msg)
	case session.PhaseDone:
		return m.handleDoneKey(msg)
	}
	return m, nil
}

func (m *Model) handleSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.apply(session.Event{Kind: session.EventAbort})
	case key.Matches(msg, m.keys.Confirm):
		return m.apply(session.Event{Kind: session.EventSubmit})
	case key.Matches(msg, m.keys.Prev):
		return m.apply(session.Event{Kind: session.EventPrev})
	case key.Matches(msg, m.keys.Next):
		return m.apply(session.Event{Kind: session.EventNext})
	}
	return m, nil
}

func (m *Model) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.apply(session.Event{Kind: session.EventAbort})
	case key.Matches(msg, m.keys.Confirm):
		return m.apply(session.Event{Kind: session.EventSubmit})
	case key.Matches(msg, m.keys.Erase):
		return m.apply(session.Event{Kind: session.EventErase})
	}
	switch msg.Type {
	case tea.KeySpace:
		return m.apply(session.Event{Kind: session.EventRune, Rune: ' '})
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if next, cmd := m.apply(session.Event{Kind: session.EventRune, Rune: r}); cmd != nil {
				return next, cmd
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleFeedbackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.apply(session.Event{Kind: session.EventAbort})
	case key.Matches(msg, m.keys.Confirm):
		return m.apply(session.Event{Kind: session.EventSubmit})
	}
	return m, nil
}

func (m *Model) handleDoneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.apply(session.Event{Kind: session.EventAbort})
	case key.Matches(msg, m.keys.Confirm):
		return m.apply(session.Event{Kind: session.EventSubmit})
	}
	return m.apply(session.Event{Kind: session.EventOther})
}

func (m *Model) apply(ev session.Event) (tea.Model, tea.Cmd) {
	if err := m.sess.Apply(ev); err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.afterTransition()
	if m.sess.Terminal() == session.TerminalQuit {
		return m, tea.Quit
	}
	return m, nil
}

// afterTransition records a finished run once, and restarts the clock when a
// restart or reselect begins a new one.
func (m *Model) afterTransition() {
	if m.sess.Terminal() == session.TerminalCompleted && !m.recorded {
		m.recordQuiz()
		m.recorded = true
		return
	}
	if m.recorded && m.sess.Terminal() == session.TerminalNone {
		m.recorded = false
		m.startedAt = time.Now()
	}
}

func (m *Model) recordQuiz() {
	if m.recorder == nil {
		return
	}
	verb, ok := m.sess.Verb()
	if !ok {
		return
	}
	stats := model.QuizStats{
		StartedAt:      m.startedAt,
		EndedAt:        time.Now(),
		Verb:           verb.Key(),
		TotalQuestions: m.sess.TotalQuestions(),
		Correct:        m.sess.CorrectCount(),
		Incorrect:      m.sess.IncorrectCount(),
	}
	if _, err := m.recorder.InsertQuiz(context.Background(), stats); err != nil {
		logErrf("failed to save quiz history: %v\n", err)
	}
}

// View implements tea.Model. It reads session state and never mutates it.
func (m *Model) View() string {
	var screen string
	switch m.sess.Phase() {
	case session.PhaseSelect:
		screen = m.viewSelect()
	case session.PhaseQuestion:
		screen = m.viewQuestion()
	case session.PhaseFeedback:
		screen = m.viewFeedback()
	case session.PhaseDone:
		if m.sess.Terminal() == session.TerminalQuit {
			return ""
		}
		screen = m.viewScore()
	}
	if m.width == 0 || m.height == 0 {
		return screen
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, screen)
}

func (m *Model) boxWidth() int {
	width := 60
	if m.width > 0 {
		width = int(float64(m.width) * 0.7)
	}
	if width < minBoxWidth {
		width = minBoxWidth
	}
	return width
}

func (m *Model) viewSelect() string {
	candidates := m.sess.Candidates()
	lines := []string{"", headerStyle.Render(padToWidth("Verbs", 20))}
	for i, verb := range candidates {
		row := padToWidth(verb.String(), 20)
		if i == m.sess.Highlighted() {
			row = highlightStyle.Render(">> " + row)
		} else {
			row = "   " + row
		}
		lines = append(lines, row)
	}
	lines = append(lines, "")
	title := titleStyle.Render(" Select a Verb ")
	footer := hints("Prev", "Up/k", "Next", "Down/j", "Confirm", "Enter", "Quit", "Esc")
	return renderBox(m.boxWidth(), title, footer, lines)
}

func (m *Model) questionTitle() string {
	conj := m.sess.Current()
	return titleStyle.Render(fmt.Sprintf(" %s | %s | %s | Q%d/%d ",
		conj.Verb, conj.Tense, conj.Person,
		m.sess.QuestionIndex()+1, m.sess.TotalQuestions()))
}

func (m *Model) viewQuestion() string {
	conj := m.sess.Current()
	lines := []string{
		"",
		"",
		"English: " + promptStyle.Render(conj.Prompt),
		"Your input: " + inputStyle.Render(m.sess.Response()),
		"",
	}
	footer := hints("Input Answer", "Chars", "Submit", "Enter")
	return renderBox(m.boxWidth(), m.questionTitle(), footer, lines)
}

func (m *Model) viewFeedback() string {
	conj := m.sess.Current()
	lines := []string{
		"",
		"",
		"English: " + promptStyle.Render(conj.Prompt),
	}
	if m.sess.Judgment() == session.JudgedCorrect {
		lines = append(lines, "Your input: "+correctStyle.Render(m.sess.Response()))
	} else {
		lines = append(lines,
			"Your input: "+incorrectStyle.Render(m.sess.Response()),
			"Correct German: "+correctStyle.Render(conj.Answer))
	}
	lines = append(lines, "")
	footer := hints("Continue", "Enter")
	return renderBox(m.boxWidth(), m.questionTitle(), footer, lines)
}

func (m *Model) viewScore() string {
	lines := []string{
		"",
		"",
		fmt.Sprintf("You got %d correct out of %d!", m.sess.CorrectCount(), m.sess.TotalQuestions()),
		"",
	}
	title := titleStyle.Render(" Lesson Completed ")
	pairs := []string{"Attempt Again", "Enter", "Exit", "Esc"}
	if m.sess.Selectable() {
		pairs = append(pairs, "Select New Verb", "Any")
	}
	return renderBox(m.boxWidth(), title, hints(pairs...), lines)
}

// hints formats alternating label/key pairs as a bottom-border legend.
func hints(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, hintStyle.Render(" "+pairs[i]+" ")+hintKeyStyle.Render("<"+pairs[i+1]+">"))
	}
	return strings.Join(parts, "") + " "
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
