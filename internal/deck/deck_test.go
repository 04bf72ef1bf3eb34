package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/konjug/internal/grammar"
)

const sampleDeck = `tense,person,english,german
present,i,I go,gehe
present,you (singular),you go,gehst
past,i,I went,ging
`

func writeDeck(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	return path
}

func TestLoadParsesRecords(t *testing.T) {
	path := writeDeck(t, t.TempDir(), "gehen.csv", sampleDeck)
	cards, err := Load(path, grammar.VerbGehen, Filter{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	first := cards[0]
	if first.Verb != grammar.VerbGehen {
		t.Fatalf("unexpected verb: %v", first.Verb)
	}
	if first.Tense != grammar.TensePresent || first.Person != grammar.PersonI {
		t.Fatalf("unexpected tense/person: %v/%v", first.Tense, first.Person)
	}
	if first.Prompt != "I go" || first.Answer != "gehe" {
		t.Fatalf("unexpected prompt/answer: %q/%q", first.Prompt, first.Answer)
	}
}

func TestLoadAppliesFilter(t *testing.T) {
	path := writeDeck(t, t.TempDir(), "gehen.csv", sampleDeck)
	past := grammar.TensePast
	cards, err := Load(path, grammar.VerbGehen, Filter{Tense: &past})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cards) != 1 || cards[0].Answer != "ging" {
		t.Fatalf("unexpected filtered cards: %+v", cards)
	}

	they := grammar.PersonThey
	if _, err := Load(path, grammar.VerbGehen, Filter{Person: &they}); err == nil {
		t.Fatalf("expected error when the filter matches nothing")
	}
}

func TestLoadRejectsUnknownTokens(t *testing.T) {
	dir := t.TempDir()
	path := writeDeck(t, dir, "gehen.csv", "tense,person,english,german\npluperfect,i,I go,gehe\n")
	if _, err := Load(path, grammar.VerbGehen, Filter{}); err == nil {
		t.Fatalf("expected error for unknown tense token")
	}
	path = writeDeck(t, dir, "haben.csv", "tense,person,english,german\npresent,y'all,you have,habt\n")
	if _, err := Load(path, grammar.VerbHaben, Filter{}); err == nil {
		t.Fatalf("expected error for unknown person token")
	}
}

func TestLoadEmptyDeck(t *testing.T) {
	path := writeDeck(t, t.TempDir(), "gehen.csv", "tense,person,english,german\n")
	if _, err := Load(path, grammar.VerbGehen, Filter{}); err == nil {
		t.Fatalf("expected error for deck with only a header")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "gehen.csv"), grammar.VerbGehen, Filter{}); err == nil {
		t.Fatalf("expected error for missing deck file")
	}
}

func TestListVerbs(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "haben.csv", sampleDeck)
	writeDeck(t, dir, "gehen.csv", sampleDeck)
	writeDeck(t, dir, "notes.txt", "ignored")

	verbs, err := ListVerbs(dir)
	if err != nil {
		t.Fatalf("list verbs: %v", err)
	}
	if len(verbs) != 2 || verbs[0] != grammar.VerbGehen || verbs[1] != grammar.VerbHaben {
		t.Fatalf("unexpected verbs: %v", verbs)
	}
}

func TestListVerbsRejectsUnknownDeck(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "laufen.csv", sampleDeck)
	if _, err := ListVerbs(dir); err == nil {
		t.Fatalf("expected error for unknown deck file")
	}
}

func TestListVerbsEmptyDir(t *testing.T) {
	if _, err := ListVerbs(t.TempDir()); err == nil {
		t.Fatalf("expected error for empty deck directory")
	}
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "gehen.csv", sampleDeck)
	loader := DirLoader{Dir: dir}
	cards, err := loader.Load(grammar.VerbGehen)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
}
