package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wizquest/internal/difficulty"
	"github.com/abhisek/wizquest/internal/llm"
	"github.com/abhisek/wizquest/internal/wordbank"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Inspect and extend the word catalog",
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog words",
	RunE: func(cmd *cobra.Command, args []string) error {
		tierVal, _ := cmd.Flags().GetString("tier")
		catalog, err := commandCatalog(cmd)
		if err != nil {
			return err
		}

		tiers := difficulty.AllTiers()
		if tierVal != "" {
			t, err := difficulty.ParseTier(tierVal)
			if err != nil {
				return err
			}
			tiers = []difficulty.Tier{t}
		}

		out := cmd.OutOrStdout()
		for _, t := range tiers {
			entries := catalog.Entries(t)
			fmt.Fprintf(out, "%s (%d)\n", t.DisplayName(), len(entries))
			tw := newTable(out)
			for _, e := range entries {
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Word, e.Category, truncate(e.Definition, 50))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var wordsCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check a catalog against the tier rules",
	Long:  "Check the given catalog file, or the active catalog when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var catalog *wordbank.Catalog
		var err error
		if len(args) == 1 {
			catalog, err = wordbank.LoadFile(args[0])
		} else {
			catalog, err = commandCatalog(cmd)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		problems := catalog.Check()
		for _, p := range problems {
			fmt.Fprintln(out, p)
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d problems in %d words", len(problems), catalog.Total())
		}
		fmt.Fprintf(out, "%d words OK\n", catalog.Total())
		return nil
	},
}

var wordsDraftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Ask an LLM for new words and write the merged catalog",
	Long: `Draft new catalog entries for a tier with the configured LLM provider.

Entries that break the tier rules or repeat existing words are dropped.
The accepted ones are merged into the active catalog and written to --out
(stdout by default). Point WIZQUEST_WORDS at the result to play with it.`,
	RunE: runWordsDraft,
}

func init() {
	wordsListCmd.Flags().StringP("tier", "t", "", "Only list this tier")

	wordsDraftCmd.Flags().StringP("tier", "t", "easy", "Tier to draft for")
	wordsDraftCmd.Flags().IntP("count", "n", 10, fmt.Sprintf("Number of words to ask for (max %d)", wordbank.MaxDraftCount))
	wordsDraftCmd.Flags().StringP("out", "o", "", "Write the merged catalog here instead of stdout")

	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsCheckCmd)
	wordsCmd.AddCommand(wordsDraftCmd)
}

// commandCatalog loads the catalog the game would play with.
func commandCatalog(cmd *cobra.Command) (*wordbank.Catalog, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return loadCatalog(cfg.WordsFile)
}

func runWordsDraft(cmd *cobra.Command, args []string) error {
	tierVal, _ := cmd.Flags().GetString("tier")
	count, _ := cmd.Flags().GetInt("count")
	outPath, _ := cmd.Flags().GetString("out")

	t, err := difficulty.ParseTier(tierVal)
	if err != nil {
		return err
	}

	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := context.Background()
	provider, err := llm.NewProviderFromEnv(ctx, rt.store.EventRepo(), rt.log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	drafter := wordbank.NewDrafter(provider, rt.catalog, wordbank.DefaultDraftConfig(), rt.log)
	fmt.Fprintf(cmd.ErrOrStderr(), "Drafting %d %s words with %s (%s)...\n", count, t.DisplayName(), provider.Name(), provider.ModelID())
	res, err := drafter.Draft(ctx, t, count)
	if err != nil {
		return err
	}

	for _, r := range res.Rejected {
		fmt.Fprintf(cmd.ErrOrStderr(), "  dropped %-14s %s\n", r.Entry.Word, r.Reason)
	}
	words := make([]string, len(res.Accepted))
	for i, e := range res.Accepted {
		words[i] = e.Word
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Accepted %d: %s\n", len(words), strings.Join(words, ", "))
	if len(res.Accepted) == 0 {
		return nil
	}

	merged := rt.catalog.Add(t, res.Accepted...)
	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}
	if err := merged.Write(w); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
