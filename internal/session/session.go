// Package session owns the quiz lifecycle: screens, transitions, and scoring.
package session

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/konjug/internal/deck"
	"github.com/verte-zerg/konjug/internal/grammar"
)

// Phase is the screen the session is currently on.
type Phase int

// Session phases.
const (
	// PhaseSelect shows the verb table and waits for a choice.
	PhaseSelect Phase = iota
	// PhaseQuestion shows the prompt and collects the typed answer.
	PhaseQuestion
	// PhaseFeedback shows the judged answer and waits for an advance.
	PhaseFeedback
	// PhaseDone shows the final score, or the session was aborted.
	PhaseDone
)

// Judgment is the outcome recorded for the current question.
type Judgment int

// Judgment values.
const (
	Unjudged Judgment = iota
	JudgedCorrect
	JudgedIncorrect
)

// Terminal marks how a session ended.
type Terminal int

// Terminal values.
const (
	TerminalNone Terminal = iota
	TerminalQuit
	TerminalCompleted
)

// EventKind classifies one input event.
type EventKind int

// Input event alphabet.
const (
	EventSubmit EventKind = iota
	EventAbort
	EventErase
	EventRune
	EventPrev
	EventNext
	EventOther
)

// Event is one key press translated to the session alphabet.
type Event struct {
	Kind EventKind
	Rune rune
}

// Loader supplies the conjugation deck for a verb.
type Loader interface {
	Load(verb grammar.Verb) ([]deck.Conjugation, error)
}

// MaxQuestions bounds the session length; totals must be in [1, MaxQuestions].
const MaxQuestions = 99

// Session is the mutable state of one quiz run. It is mutated only by Apply,
// one event at a time.
type Session struct {
	phase Phase

	totalQuestions int
	questionIndex  int
	correctCount   int
	incorrectCount int

	verb    grammar.Verb
	hasVerb bool
	cards   []deck.Conjugation
	cardIdx int

	response []rune
	judgment Judgment
	terminal Terminal

	candidates  []grammar.Verb
	highlighted int
	selectable  bool

	loader Loader
	picker Picker
}

func validateTotal(total int) error {
	if total < 1 || total > MaxQuestions {
		return fmt.Errorf("question count must be between 1 and %d, got %d", MaxQuestions, total)
	}
	return nil
}

// NewSelect starts a session in verb-selection mode over the given candidates.
func NewSelect(total int, candidates []grammar.Verb, loader Loader, picker Picker) (*Session, error) {
	if err := validateTotal(total); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no verbs to select from")
	}
	return &Session{
		phase:          PhaseSelect,
		totalQuestions: total,
		candidates:     candidates,
		selectable:     true,
		loader:         loader,
		picker:         picker,
	}, nil
}

// NewWithVerb starts a session directly on the given verb, loading its deck.
func NewWithVerb(total int, verb grammar.Verb, loader Loader, picker Picker) (*Session, error) {
	if err := validateTotal(total); err != nil {
		return nil, err
	}
	s := &Session{
		totalQuestions: total,
		loader:         loader,
		picker:         picker,
	}
	if err := s.loadDeck(verb); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply consumes one input event and performs exactly one transition.
// A non-nil error is unrecoverable (the deck for a selected verb could not
// be loaded); the caller is expected to stop the loop.
func (s *Session) Apply(ev Event) error {
	switch s.phase {
	case PhaseSelect:
		return s.applySelect(ev)
	case PhaseQuestion:
		s.applyQuestion(ev)
	case PhaseFeedback:
		s.applyFeedback(ev)
	case PhaseDone:
		s.applyDone(ev)
	}
	return nil
}

func (s *Session) applySelect(ev Event) error {
	switch ev.Kind {
	case EventPrev:
		s.moveHighlight(-1)
	case EventNext:
		s.moveHighlight(1)
	case EventSubmit:
		return s.confirmSelection()
	case EventAbort:
		s.quit()
	}
	return nil
}

func (s *Session) applyQuestion(ev Event) {
	switch ev.Kind {
	case EventRune:
		s.response = append(s.response, ev.Rune)
	case EventErase:
		if len(s.response) > 0 {
			s.response = s.response[:len(s.response)-1]
		}
	case EventSubmit:
		s.checkAnswer()
	case EventAbort:
		s.quit()
	}
}

func (s *Session) applyFeedback(ev Event) {
	switch ev.Kind {
	case EventSubmit:
		s.advance()
	case EventAbort:
		s.quit()
	}
}

func (s *Session) applyDone(ev Event) {
	if s.terminal != TerminalCompleted {
		return
	}
	switch ev.Kind {
	case EventSubmit:
		s.restart()
	case EventAbort:
		s.quit()
	default:
		if s.selectable {
			s.reselect()
		}
	}
}

func (s *Session) moveHighlight(delta int) {
	count := len(s.candidates)
	if count == 0 {
		return
	}
	s.highlighted = (s.highlighted + delta + count) % count
}

func (s *Session) confirmSelection() error {
	return s.loadDeck(s.candidates[s.highlighted])
}

func (s *Session) loadDeck(verb grammar.Verb) error {
	cards, err := s.loader.Load(verb)
	if err != nil {
		return fmt.Errorf("failed to load deck for %s: %w", verb, err)
	}
	if len(cards) == 0 {
		return fmt.Errorf("deck for %s is empty", verb)
	}
	s.verb = verb
	s.hasVerb = true
	s.cards = cards
	s.cardIdx = s.picker.Pick(len(cards))
	s.phase = PhaseQuestion
	return nil
}

// checkAnswer judges the typed response against the current card. The input
// is lowercased; the stored answer is compared verbatim. Empty input is a
// no-op so a stray Enter never judges a blank answer.
func (s *Session) checkAnswer() {
	if len(s.response) == 0 {
		return
	}
	if strings.ToLower(string(s.response)) == s.cards[s.cardIdx].Answer {
		s.correctCount++
		s.judgment = JudgedCorrect
	} else {
		s.incorrectCount++
		s.judgment = JudgedIncorrect
	}
	s.phase = PhaseFeedback
}

// advance moves to the next question, or completes the session after the
// last one. The card index is only re-rolled when another question follows.
func (s *Session) advance() {
	s.response = nil
	s.judgment = Unjudged
	s.questionIndex++
	if s.questionIndex >= s.totalQuestions {
		s.terminal = TerminalCompleted
		s.phase = PhaseDone
		return
	}
	s.cardIdx = s.picker.Pick(len(s.cards))
	s.phase = PhaseQuestion
}

// restart resets the tally and re-rolls the first question on the same deck.
func (s *Session) restart() {
	s.questionIndex = 0
	s.correctCount = 0
	s.incorrectCount = 0
	s.response = nil
	s.judgment = Unjudged
	s.terminal = TerminalNone
	s.cardIdx = s.picker.Pick(len(s.cards))
	s.phase = PhaseQuestion
}

// reselect discards the deck and returns to verb selection with a fresh tally.
func (s *Session) reselect() {
	s.questionIndex = 0
	s.correctCount = 0
	s.incorrectCount = 0
	s.response = nil
	s.judgment = Unjudged
	s.terminal = TerminalNone
	s.hasVerb = false
	s.cards = nil
	s.phase = PhaseSelect
}

func (s *Session) quit() {
	s.terminal = TerminalQuit
	s.phase = PhaseDone
}

// Phase returns the current screen.
func (s *Session) Phase() Phase { return s.phase }

// Terminal reports how the session ended, if it has.
func (s *Session) Terminal() Terminal { return s.terminal }

// Judgment returns the outcome recorded for the current question.
func (s *Session) Judgment() Judgment { return s.judgment }

// Response returns the learner's typed answer so far.
func (s *Session) Response() string { return string(s.response) }

// Current returns the conjugation being asked.
func (s *Session) Current() deck.Conjugation { return s.cards[s.cardIdx] }

// QuestionIndex returns the number of questions already advanced past.
func (s *Session) QuestionIndex() int { return s.questionIndex }

// TotalQuestions returns the fixed session length.
func (s *Session) TotalQuestions() int { return s.totalQuestions }

// CorrectCount returns the number of correct answers.
func (s *Session) CorrectCount() int { return s.correctCount }

// IncorrectCount returns the number of incorrect answers.
func (s *Session) IncorrectCount() int { return s.incorrectCount }

// Verb returns the chosen verb, if one is loaded.
func (s *Session) Verb() (grammar.Verb, bool) { return s.verb, s.hasVerb }

// Candidates returns the verbs offered in selection mode.
func (s *Session) Candidates() []grammar.Verb { return s.candidates }

// Highlighted returns the index of the highlighted candidate.
func (s *Session) Highlighted() int { return s.highlighted }

// Selectable reports whether the score screen offers picking a new verb.
func (s *Session) Selectable() bool { return s.selectable }

// Completed reports whether the full question count was reached, including
// after the learner exits from the score screen.
func (s *Session) Completed() bool {
	return s.questionIndex > 0 && s.questionIndex >= s.totalQuestions
}
