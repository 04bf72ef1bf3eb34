// Package model defines shared data structures.
package model

import "time"

// Config defines quiz settings.
type Config struct {
	Number  int
	Verb    string
	Tense   string
	Person  string
	DeckDir string
	History bool
}

// StatsConfig defines filters for history output.
type StatsConfig struct {
	Verb  string
	Since *time.Time
	Last  int
}

// QuizStats captures a completed quiz run.
type QuizStats struct {
	StartedAt      time.Time
	EndedAt        time.Time
	Verb           string
	TotalQuestions int
	Correct        int
	Incorrect      int
}

// QuizAggregate summarizes one stored quiz for reporting.
type QuizAggregate struct {
	QuizID         int64
	EndedAt        time.Time
	Verb           string
	TotalQuestions int
	Correct        int
	Incorrect      int
}

// VerbAggregate aggregates quiz results per verb.
type VerbAggregate struct {
	Verb      string
	Quizzes   int
	Questions int
	Correct   int
	Incorrect int
	LastAt    time.Time
}
