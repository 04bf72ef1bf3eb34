// Package grammar defines the closed sets of verbs, tenses, and persons.
package grammar

import (
	"fmt"
	"strings"
)

// Verb identifies one of the supported German verbs.
type Verb int

// Supported verbs.
const (
	VerbAufwachen Verb = iota
	VerbDuschen
	VerbEssen
	VerbGehen
	VerbHaben
	VerbHelfen
	VerbMachen
	VerbSchlafen
	VerbSkifahren
	VerbTreffen
	VerbTrinken
)

var verbNames = map[string]Verb{
	"aufwachen": VerbAufwachen,
	"duschen":   VerbDuschen,
	"essen":     VerbEssen,
	"gehen":     VerbGehen,
	"haben":     VerbHaben,
	"helfen":    VerbHelfen,
	"machen":    VerbMachen,
	"schlafen":  VerbSchlafen,
	"skifahren": VerbSkifahren,
	"treffen":   VerbTreffen,
	"trinken":   VerbTrinken,
}

var verbKeys = map[Verb]string{
	VerbAufwachen: "aufwachen",
	VerbDuschen:   "duschen",
	VerbEssen:     "essen",
	VerbGehen:     "gehen",
	VerbHaben:     "haben",
	VerbHelfen:    "helfen",
	VerbMachen:    "machen",
	VerbSchlafen:  "schlafen",
	VerbSkifahren: "skifahren",
	VerbTreffen:   "treffen",
	VerbTrinken:   "trinken",
}

// ParseVerb maps a verb name to its Verb, case-insensitively.
func ParseVerb(s string) (Verb, error) {
	v, ok := verbNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown verb %q", s)
	}
	return v, nil
}

// Key returns the lowercase identifier used for deck file names.
func (v Verb) Key() string {
	if key, ok := verbKeys[v]; ok {
		return key
	}
	return fmt.Sprintf("verb(%d)", int(v))
}

// String returns the display name.
func (v Verb) String() string {
	key := v.Key()
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
