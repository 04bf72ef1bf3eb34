// Package deck loads conjugation decks from CSV files.
package deck

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/verte-zerg/konjug/internal/grammar"
)

// Conjugation is one (verb, tense, person) fact drawn from a deck.
// The answer is the canonical German form as stored in the deck file.
type Conjugation struct {
	Verb   grammar.Verb
	Tense  grammar.Tense
	Person grammar.Person
	Prompt string
	Answer string
}

// Filter restricts a deck to one tense and/or person at load time.
type Filter struct {
	Tense  *grammar.Tense
	Person *grammar.Person
}

func (f Filter) matches(c Conjugation) bool {
	if f.Tense != nil && c.Tense != *f.Tense {
		return false
	}
	if f.Person != nil && c.Person != *f.Person {
		return false
	}
	return true
}

// Load reads the deck file for a verb. The file is CSV with a header row and
// four columns: tense, person, english, german. Unknown tense or person
// tokens are an error, as is a deck with no usable records.
func Load(path string, verb grammar.Verb, filter Filter) ([]Conjugation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open deck: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only deck.
			_ = cerr
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 4
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse deck %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("deck %s has no records", path)
	}

	var cards []Conjugation
	for i, row := range rows[1:] {
		tense, err := grammar.ParseTense(row[0])
		if err != nil {
			return nil, fmt.Errorf("deck %s row %d: %w", path, i+2, err)
		}
		person, err := grammar.ParsePerson(row[1])
		if err != nil {
			return nil, fmt.Errorf("deck %s row %d: %w", path, i+2, err)
		}
		card := Conjugation{
			Verb:   verb,
			Tense:  tense,
			Person: person,
			Prompt: row[2],
			Answer: row[3],
		}
		if !filter.matches(card) {
			continue
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("deck %s has no records matching the filter", path)
	}
	return cards, nil
}

// ListVerbs discovers decks in a directory by scanning for *.csv files.
// A file name that is not a known verb is an error.
func ListVerbs(dir string) ([]grammar.Verb, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck directory: %w", err)
	}
	var verbs []grammar.Verb
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".csv") {
			continue
		}
		verb, err := grammar.ParseVerb(strings.TrimSuffix(name, ".csv"))
		if err != nil {
			return nil, fmt.Errorf("deck directory %s: %w", dir, err)
		}
		verbs = append(verbs, verb)
	}
	if len(verbs) == 0 {
		return nil, fmt.Errorf("no decks found in %s", dir)
	}
	sort.Slice(verbs, func(i, j int) bool { return verbs[i].Key() < verbs[j].Key() })
	return verbs, nil
}

// DirLoader loads decks from a directory, applying a fixed filter.
type DirLoader struct {
	Dir    string
	Filter Filter
}

// Load reads the deck for a verb from the loader's directory.
func (l DirLoader) Load(verb grammar.Verb) ([]Conjugation, error) {
	return Load(filepath.Join(l.Dir, verb.Key()+".csv"), verb, l.Filter)
}
