package grammar

import "testing"

func TestParseVerbCaseInsensitive(t *testing.T) {
	for _, input := range []string{"gehen", "Gehen", "GEHEN", " gehen "} {
		v, err := ParseVerb(input)
		if err != nil {
			t.Fatalf("ParseVerb(%q): %v", input, err)
		}
		if v != VerbGehen {
			t.Fatalf("ParseVerb(%q) = %v, want VerbGehen", input, v)
		}
	}
}

func TestParseVerbUnknown(t *testing.T) {
	if _, err := ParseVerb("laufen"); err == nil {
		t.Fatalf("expected error for unknown verb")
	}
}

func TestVerbKeyAndDisplay(t *testing.T) {
	if VerbSkifahren.Key() != "skifahren" {
		t.Fatalf("unexpected key: %q", VerbSkifahren.Key())
	}
	if VerbSkifahren.String() != "Skifahren" {
		t.Fatalf("unexpected display name: %q", VerbSkifahren.String())
	}
}

func TestParseTense(t *testing.T) {
	cases := map[string]Tense{
		"present":        TensePresent,
		"PerfectPresent": TensePerfectPresent,
		"past":           TensePast,
		"perfectpast":    TensePerfectPast,
		"future":         TenseFuture,
		"PERFECTFUTURE":  TensePerfectFuture,
		"subjectivei":    TenseSubjectiveI,
		"subjectiveii":   TenseSubjectiveII,
	}
	for input, want := range cases {
		got, err := ParseTense(input)
		if err != nil {
			t.Fatalf("ParseTense(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseTense(%q) = %v, want %v", input, got, want)
		}
	}
	if _, err := ParseTense("pluperfect"); err == nil {
		t.Fatalf("expected error for unknown tense")
	}
}

func TestTenseDisplay(t *testing.T) {
	if TenseSubjectiveII.String() != "Subjective II" {
		t.Fatalf("unexpected display name: %q", TenseSubjectiveII.String())
	}
}

func TestParsePerson(t *testing.T) {
	cases := map[string]Person{
		"i":              PersonI,
		"You (singular)": PersonYou,
		"he/she/it":      PersonHeSheIt,
		"we":             PersonWe,
		"you (plural)":   PersonYouPlural,
		"They":           PersonThey,
	}
	for input, want := range cases {
		got, err := ParsePerson(input)
		if err != nil {
			t.Fatalf("ParsePerson(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParsePerson(%q) = %v, want %v", input, got, want)
		}
	}
	if _, err := ParsePerson("you all"); err == nil {
		t.Fatalf("expected error for unknown person")
	}
}
