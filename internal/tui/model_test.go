package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/konjug/internal/deck"
	"github.com/verte-zerg/konjug/internal/grammar"
	"github.com/verte-zerg/konjug/internal/model"
	"github.com/verte-zerg/konjug/internal/session"
)

type stubLoader struct{}

func (stubLoader) Load(verb grammar.Verb) ([]deck.Conjugation, error) {
	return []deck.Conjugation{
		{Verb: verb, Tense: grammar.TensePresent, Person: grammar.PersonI, Prompt: "I go", Answer: "gehe"},
	}, nil
}

type firstPicker struct{}

func (firstPicker) Pick(int) int { return 0 }

type captureRecorder struct {
	quizzes []model.QuizStats
}

func (r *captureRecorder) InsertQuiz(_ context.Context, stats model.QuizStats) (int64, error) {
	r.quizzes = append(r.quizzes, stats)
	return int64(len(r.quizzes)), nil
}

func newQuizModel(t *testing.T, total int, recorder Recorder) *Model {
	t.Helper()
	sess, err := session.NewWithVerb(total, grammar.VerbGehen, stubLoader{}, firstPicker{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return NewModel(sess, recorder)
}

func press(t *testing.T, m *Model, msg tea.KeyMsg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(msg)
	return cmd
}

func typeWord(t *testing.T, m *Model, word string) {
	t.Helper()
	for _, r := range word {
		press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}
var escape = tea.KeyMsg{Type: tea.KeyEsc}

func TestTypingFillsResponse(t *testing.T) {
	m := newQuizModel(t, 1, nil)
	typeWord(t, m, "geh")
	press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	typeWord(t, m, "e")
	if got := m.Session().Response(); got != "gehe" {
		t.Fatalf("unexpected response: %q", got)
	}
}

func TestEnterSubmitsAndAdvances(t *testing.T) {
	m := newQuizModel(t, 1, nil)
	typeWord(t, m, "gehe")
	press(t, m, enter)
	if m.Session().Judgment() != session.JudgedCorrect {
		t.Fatalf("expected correct judgment, got %v", m.Session().Judgment())
	}
	press(t, m, enter)
	if m.Session().Terminal() != session.TerminalCompleted {
		t.Fatalf("expected completed, got %v", m.Session().Terminal())
	}
}

func TestEscapeQuits(t *testing.T) {
	m := newQuizModel(t, 1, nil)
	cmd := press(t, m, escape)
	if cmd == nil {
		t.Fatalf("expected a quit command")
	}
	if m.Session().Terminal() != session.TerminalQuit {
		t.Fatalf("expected quit terminal, got %v", m.Session().Terminal())
	}
}

func TestSelectNavigationKeys(t *testing.T) {
	sess, err := session.NewSelect(1,
		[]grammar.Verb{grammar.VerbGehen, grammar.VerbHaben},
		stubLoader{}, firstPicker{})
	if err != nil {
		t.Fatalf("new select session: %v", err)
	}
	m := NewModel(sess, nil)

	press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if sess.Highlighted() != 1 {
		t.Fatalf("j must move down, highlighted = %d", sess.Highlighted())
	}
	press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if sess.Highlighted() != 0 {
		t.Fatalf("up must move back, highlighted = %d", sess.Highlighted())
	}
	press(t, m, enter)
	if sess.Phase() != session.PhaseQuestion {
		t.Fatalf("enter must confirm selection, phase = %v", sess.Phase())
	}
}

func TestHistoryRecordedOncePerRun(t *testing.T) {
	recorder := &captureRecorder{}
	m := newQuizModel(t, 1, recorder)

	typeWord(t, m, "gehe")
	press(t, m, enter)
	press(t, m, enter)
	if len(recorder.quizzes) != 1 {
		t.Fatalf("expected one recorded quiz, got %d", len(recorder.quizzes))
	}
	got := recorder.quizzes[0]
	if got.Verb != "gehen" || got.Correct != 1 || got.Incorrect != 0 || got.TotalQuestions != 1 {
		t.Fatalf("unexpected recorded stats: %+v", got)
	}

	// A restart begins a fresh run that records again on completion.
	press(t, m, enter)
	typeWord(t, m, "falsch")
	press(t, m, enter)
	press(t, m, enter)
	if len(recorder.quizzes) != 2 {
		t.Fatalf("expected two recorded quizzes, got %d", len(recorder.quizzes))
	}
	if recorder.quizzes[1].Incorrect != 1 {
		t.Fatalf("unexpected second run stats: %+v", recorder.quizzes[1])
	}
}

func TestViewScreens(t *testing.T) {
	m := newQuizModel(t, 1, nil)
	if view := m.View(); !strings.Contains(view, "English:") || !strings.Contains(view, "I go") {
		t.Fatalf("question view missing prompt: %q", view)
	}

	typeWord(t, m, "falsch")
	press(t, m, enter)
	view := m.View()
	if !strings.Contains(view, "Correct German:") || !strings.Contains(view, "gehe") {
		t.Fatalf("incorrect feedback view missing answer: %q", view)
	}

	press(t, m, enter)
	view = m.View()
	if !strings.Contains(view, "Lesson Completed") || !strings.Contains(view, "You got 0 correct out of 1!") {
		t.Fatalf("score view missing summary: %q", view)
	}
	if strings.Contains(view, "Select New Verb") {
		t.Fatalf("fixed-verb run must not offer verb selection: %q", view)
	}
}

func TestSelectView(t *testing.T) {
	sess, err := session.NewSelect(1,
		[]grammar.Verb{grammar.VerbGehen, grammar.VerbHaben},
		stubLoader{}, firstPicker{})
	if err != nil {
		t.Fatalf("new select session: %v", err)
	}
	m := NewModel(sess, nil)
	view := m.View()
	if !strings.Contains(view, "Select a Verb") {
		t.Fatalf("select view missing title: %q", view)
	}
	if !strings.Contains(view, ">> Gehen") {
		t.Fatalf("select view missing highlight: %q", view)
	}
	if !strings.Contains(view, "Haben") {
		t.Fatalf("select view missing candidate: %q", view)
	}
}
