package stats

import (
	"fmt"

	"github.com/verte-zerg/konjug/internal/model"
)

// Accuracy returns the fraction of correct answers, in [0, 1].
func Accuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// FormatVerbTable renders per-verb aggregates as aligned text lines.
func FormatVerbTable(aggs []model.VerbAggregate) []string {
	headers := []string{"Verb", "Quizzes", "Questions", "Correct", "Accuracy", "Last"}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, []string{
			agg.Verb,
			fmt.Sprintf("%d", agg.Quizzes),
			fmt.Sprintf("%d", agg.Questions),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%.1f%%", Accuracy(agg.Correct, agg.Incorrect)*100),
			agg.LastAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return formatTable(headers, rows, rightAlign)
}

// FormatQuizTable renders stored quizzes as aligned text lines, oldest first.
func FormatQuizTable(quizzes []model.QuizAggregate) []string {
	headers := []string{"Date", "Verb", "Questions", "Correct", "Accuracy"}
	rightAlign := map[int]bool{2: true, 3: true, 4: true}
	rows := make([][]string, 0, len(quizzes))
	for _, quiz := range quizzes {
		rows = append(rows, []string{
			quiz.EndedAt.Local().Format("2006-01-02 15:04"),
			quiz.Verb,
			fmt.Sprintf("%d", quiz.TotalQuestions),
			fmt.Sprintf("%d", quiz.Correct),
			fmt.Sprintf("%.1f%%", Accuracy(quiz.Correct, quiz.Incorrect)*100),
		})
	}
	return formatTable(headers, rows, rightAlign)
}
