package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/problemgen"
	"github.com/abhisek/wizquest/internal/scoring"
	"github.com/abhisek/wizquest/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer a few exercises in the terminal (no database, no timer)",
	Long: `Generate exercises for a mode and level and answer them line by line.

This is a stateless tool: nothing is saved and rounds are not timed, so
every correct answer earns the full time bonus. Useful for checking what a
level looks like or trying out a new word list.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringP("mode", "m", "math", "Mode: math, listen, fill, describe or mixed")
	previewCmd.Flags().IntP("level", "l", 1, "Player level")
	previewCmd.Flags().IntP("count", "n", 5, "Number of exercises")
	previewCmd.Flags().Uint64("seed", 0, "Random seed")
}

func runPreview(cmd *cobra.Command, args []string) error {
	modeVal, _ := cmd.Flags().GetString("mode")
	level, _ := cmd.Flags().GetInt("level")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")

	playlist, err := parsePlaylist(modeVal)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg.WordsFile)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = cfg.Seed
	}

	progress := scoring.NewProgress("preview")
	progress.Level = level
	sess := session.New(progress, session.Options{
		Rand:       newRand(seed),
		Catalog:    catalog,
		Generation: problemgen.DefaultConfig(),
	})

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	p := sess.Progress()
	fmt.Fprintf(out, "Level %d (%s), %s\n\n", p.Level, session.ResolveTier(p.Level).Tier.DisplayName(), playlist.Label())

	for i := 1; i <= count; i++ {
		r, err := sess.Next(playlist.Next())
		if err != nil {
			fmt.Fprintf(out, "Exercise %d: %v\n\n", i, err)
			continue
		}

		fmt.Fprintf(out, "── %d/%d · %s ──\n", i, count, r.Mode.DisplayName())
		switch ex := r.Exercise.(type) {
		case *exercise.Equation:
			fmt.Fprintln(out, ex.Text())
			for j, c := range ex.Choices {
				fmt.Fprintf(out, "  %d) %d\n", j+1, c)
			}
		case *exercise.Word:
			if r.Mode == exercise.ModeListen {
				fmt.Fprintf(out, "(the word is %q)\n", ex.Word)
			}
			fmt.Fprintln(out, r.Prompt())
		}

		fmt.Fprint(out, "\nYour answer (? for a hint): ")
		answer, ok := readAnswer(scanner, out, r)
		if !ok {
			sess.Abandon()
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		if answer == "" {
			sess.Abandon()
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		}

		res, err := r.Submit(answer)
		if err != nil || res == nil {
			sess.Abandon()
			continue
		}
		if res.Correct {
			fmt.Fprintf(out, "\033[32m✓ Correct!\033[0m +%d XP (streak %d)\n\n", res.XPAward, res.Streak)
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n\n", res.Solution)
		}
	}

	sum := sess.Summary()
	fmt.Fprintf(out, "── Summary: %d/%d correct, %d XP ──\n", sum.Correct, sum.Rounds, sum.XP)
	return nil
}

// readAnswer reads lines until one is not a hint request. ok is false
// once input is exhausted.
func readAnswer(scanner *bufio.Scanner, out io.Writer, r *session.Round) (answer string, ok bool) {
	for scanner.Scan() {
		answer = strings.TrimSpace(scanner.Text())
		if answer != "?" {
			return answer, true
		}
		if hint, ok := r.RevealHint(); ok {
			fmt.Fprintf(out, "Hint: %s\nYour answer: ", hint)
		} else {
			fmt.Fprint(out, "No more hints.\nYour answer: ")
		}
	}
	return "", false
}
