// Package main provides the CLI entrypoint for konjug.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/konjug/internal/config"
	"github.com/verte-zerg/konjug/internal/deck"
	"github.com/verte-zerg/konjug/internal/grammar"
	"github.com/verte-zerg/konjug/internal/model"
	"github.com/verte-zerg/konjug/internal/session"
	"github.com/verte-zerg/konjug/internal/stats"
	"github.com/verte-zerg/konjug/internal/store"
	"github.com/verte-zerg/konjug/internal/tui"
)

const defaultNumber = 10

var (
	quizNumber    int
	quizVerb      string
	quizTense     string
	quizPerson    string
	quizDeckDir   string
	quizNoHistory bool

	statsVerb  string
	statsSince string
	statsLast  int

	verbsDeckDir string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "konjug",
		Short:         "TUI trainer for German verb conjugations",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	rootCmd.Flags().IntVarP(&quizNumber, "number", "n", defaultNumber, "questions per quiz (1-99)")
	rootCmd.Flags().StringVarP(&quizVerb, "verb", "v", "", "verb to drill (default: interactive selection)")
	rootCmd.Flags().StringVarP(&quizTense, "tense", "t", "", "restrict questions to one tense")
	rootCmd.Flags().StringVarP(&quizPerson, "person", "p", "", "restrict questions to one person")
	rootCmd.Flags().StringVar(&quizDeckDir, "deck-dir", "", "directory with <verb>.csv decks")
	rootCmd.Flags().BoolVar(&quizNoHistory, "no-history", false, "do not save the quiz result")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVerbsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "number", &quizNumber, fileCfg.Quiz.Number)
	applyStringConfig(cmd, "verb", &quizVerb, fileCfg.Quiz.Verb)
	applyStringConfig(cmd, "tense", &quizTense, fileCfg.Quiz.Tense)
	applyStringConfig(cmd, "person", &quizPerson, fileCfg.Quiz.Person)
	applyStringConfig(cmd, "deck-dir", &quizDeckDir, fileCfg.Quiz.DeckDir)

	history := true
	if fileCfg.History.Enabled != nil {
		history = *fileCfg.History.Enabled
	}
	if quizNoHistory {
		history = false
	}

	cfg := model.Config{
		Number:  quizNumber,
		Verb:    quizVerb,
		Tense:   quizTense,
		Person:  quizPerson,
		DeckDir: resolveDeckDir(quizDeckDir),
		History: history,
	}
	if cfg.Number < 1 || cfg.Number > session.MaxQuestions {
		return fmt.Errorf("--number must be between 1 and %d", session.MaxQuestions)
	}

	filter, err := buildFilter(cfg.Tense, cfg.Person)
	if err != nil {
		return err
	}

	loader := deck.DirLoader{Dir: cfg.DeckDir, Filter: filter}
	picker := session.NewPicker()

	var sess *session.Session
	if cfg.Verb != "" {
		verb, err := grammar.ParseVerb(cfg.Verb)
		if err != nil {
			return err
		}
		sess, err = session.NewWithVerb(cfg.Number, verb, loader, picker)
		if err != nil {
			return err
		}
	} else {
		verbs, err := deck.ListVerbs(cfg.DeckDir)
		if err != nil {
			return deckDirError(cfg.DeckDir, err)
		}
		sess, err = session.NewSelect(cfg.Number, verbs, loader, picker)
		if err != nil {
			return err
		}
	}

	var recorder tui.Recorder
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("failed to open history db, continuing without history: %v\n", err)
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}()
			recorder = st
		}
	}

	quizModel := tui.NewModel(sess, recorder)
	program := tea.NewProgram(quizModel, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	finalModel, ok := final.(*tui.Model)
	if !ok {
		return fmt.Errorf("unexpected final model type %T", final)
	}
	if err := finalModel.Err(); err != nil {
		return err
	}
	if finalSess := finalModel.Session(); finalSess.Completed() {
		fmt.Printf("You got %d correct out of %d!\n", finalSess.CorrectCount(), finalSess.TotalQuestions())
	}
	return nil
}

func buildFilter(tense, person string) (deck.Filter, error) {
	var filter deck.Filter
	if tense != "" {
		parsed, err := grammar.ParseTense(tense)
		if err != nil {
			return deck.Filter{}, err
		}
		filter.Tense = &parsed
	}
	if person != "" {
		parsed, err := grammar.ParsePerson(person)
		if err != nil {
			return deck.Filter{}, err
		}
		filter.Person = &parsed
	}
	return filter, nil
}

func resolveDeckDir(dir string) string {
	if dir != "" {
		return dir
	}
	return config.DefaultDeckDir()
}

func deckDirError(dir string, err error) error {
	lines := []string{
		fmt.Sprintf("%v", err),
		fmt.Sprintf("expected decks at: %s", dir),
		"Each deck is a CSV file named <verb>.csv with columns: tense, person, english, german",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newVerbsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verbs",
		Short: "List available conjugation decks",
		Args:  cobra.NoArgs,
		RunE:  runVerbsCmd,
	}
	cmd.Flags().StringVar(&verbsDeckDir, "deck-dir", "", "directory with <verb>.csv decks")
	return cmd
}

func runVerbsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "deck-dir", &verbsDeckDir, fileCfg.Quiz.DeckDir)

	dir := resolveDeckDir(verbsDeckDir)
	verbs, err := deck.ListVerbs(dir)
	if err != nil {
		return deckDirError(dir, err)
	}
	for _, verb := range verbs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), verb.Key()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show quiz history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsVerb, "verb", "", "verb filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N quizzes")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	cfg := model.StatsConfig{
		Verb:  strings.ToLower(strings.TrimSpace(statsVerb)),
		Since: sinceTime,
		Last:  statsLast,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	quizzes, err := st.ListQuizzes(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to load quizzes: %w", err)
	}
	if len(quizzes) == 0 {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), "No quizzes recorded yet."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	out := cmd.OutOrStdout()
	width := outputWidth()

	if cfg.Verb == "" && cfg.Since == nil && cfg.Last == 0 {
		aggs, err := st.AggregateByVerb(ctx)
		if err != nil {
			return fmt.Errorf("failed to aggregate history: %w", err)
		}
		if err := writeLines(out, "Per verb:", stats.FormatVerbTable(aggs), width); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	return writeLines(out, "Quizzes:", stats.FormatQuizTable(quizzes), width)
}

func writeLines(out io.Writer, header string, lines []string, width int) error {
	if _, err := fmt.Fprintln(out, header); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, line := range lines {
		if width > 0 {
			line = truncateLine(line, width)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// outputWidth probes the terminal so table rows never wrap; piped output is
// left unclipped.
func outputWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

func truncateLine(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# konjug configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# number = %d            # Questions per quiz (1-%d)
# verb = "gehen"         # Skip verb selection and drill this verb
# tense = "present"      # Restrict questions to one tense
# person = "i"           # Restrict questions to one person
# deck-dir = ""          # Directory with <verb>.csv decks

[history]
# enabled = true         # Save completed quizzes
`,
		defaultNumber,
		session.MaxQuestions,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
