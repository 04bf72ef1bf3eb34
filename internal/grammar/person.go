package grammar

import (
	"fmt"
	"strings"
)

// Person identifies one of the six grammatical persons in the decks.
type Person int

// Supported persons.
const (
	PersonI Person = iota
	PersonYou
	PersonHeSheIt
	PersonWe
	PersonYouPlural
	PersonThey
)

var personNames = map[string]Person{
	"i":              PersonI,
	"you (singular)": PersonYou,
	"he/she/it":      PersonHeSheIt,
	"we":             PersonWe,
	"you (plural)":   PersonYouPlural,
	"they":           PersonThey,
}

var personDisplay = map[Person]string{
	PersonI:         "I",
	PersonYou:       "You (singular)",
	PersonHeSheIt:   "He/she/it",
	PersonWe:        "We",
	PersonYouPlural: "You (plural)",
	PersonThey:      "They",
}

// ParsePerson maps a person token to its Person, case-insensitively.
func ParsePerson(s string) (Person, error) {
	p, ok := personNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown person %q", s)
	}
	return p, nil
}

// String returns the display name.
func (p Person) String() string {
	if name, ok := personDisplay[p]; ok {
		return name
	}
	return fmt.Sprintf("person(%d)", int(p))
}
