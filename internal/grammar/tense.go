package grammar

import (
	"fmt"
	"strings"
)

// Tense identifies one of the eight grammatical tenses in the decks.
type Tense int

// Supported tenses.
const (
	TensePresent Tense = iota
	TensePerfectPresent
	TensePast
	TensePerfectPast
	TenseFuture
	TensePerfectFuture
	TenseSubjectiveI
	TenseSubjectiveII
)

// Deck files use the compact lowercase tokens.
var tenseNames = map[string]Tense{
	"present":        TensePresent,
	"perfectpresent": TensePerfectPresent,
	"past":           TensePast,
	"perfectpast":    TensePerfectPast,
	"future":         TenseFuture,
	"perfectfuture":  TensePerfectFuture,
	"subjectivei":    TenseSubjectiveI,
	"subjectiveii":   TenseSubjectiveII,
}

var tenseDisplay = map[Tense]string{
	TensePresent:        "Present",
	TensePerfectPresent: "Perfect Present",
	TensePast:           "Past",
	TensePerfectPast:    "Perfect Past",
	TenseFuture:         "Future",
	TensePerfectFuture:  "Perfect Future",
	TenseSubjectiveI:    "Subjective I",
	TenseSubjectiveII:   "Subjective II",
}

// ParseTense maps a tense token to its Tense, case-insensitively.
func ParseTense(s string) (Tense, error) {
	t, ok := tenseNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown tense %q", s)
	}
	return t, nil
}

// String returns the display name.
func (t Tense) String() string {
	if name, ok := tenseDisplay[t]; ok {
		return name
	}
	return fmt.Sprintf("tense(%d)", int(t))
}
