package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/wizquest/internal/play"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a player's progress and today's results",
	RunE: func(cmd *cobra.Command, args []string) error {
		player, _ := cmd.Flags().GetString("player")
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := context.Background()
		out := cmd.OutOrStdout()

		if all {
			profiles, err := rt.store.ProfileRepo().List(ctx)
			if err != nil {
				return fmt.Errorf("list profiles: %w", err)
			}
			if len(profiles) == 0 {
				fmt.Fprintln(out, "No players yet.")
				return nil
			}
			fmt.Fprintf(out, "%-16s  %5s  %8s  %6s\n", "Player", "Level", "XP", "Best")
			fmt.Fprintln(out, strings.Repeat("─", 42))
			for _, p := range profiles {
				fmt.Fprintf(out, "%-16s  %5d  %8d  %6d\n", p.Name, p.Level, p.TotalXP, p.BestStreak)
			}
			return nil
		}

		if player == "" {
			player = rt.cfg.Player
		}
		p, err := rt.store.ProfileRepo().Load(ctx, player)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if p == nil {
			fmt.Fprintf(out, "No profile for %q yet. Run `wizquest play` to start.\n", player)
			return nil
		}

		events := rt.store.EventRepo()
		today, err := events.DailyStats(ctx, player, time.Now())
		if err != nil {
			return fmt.Errorf("daily stats: %w", err)
		}

		fmt.Fprintf(out, "Player:       %s\n", p.Name)
		fmt.Fprintf(out, "Level:        %d (%d XP to next)\n", p.Level, play.LevelXP-p.TotalXP%play.LevelXP)
		fmt.Fprintf(out, "Total XP:     %d\n", p.TotalXP)
		fmt.Fprintf(out, "Streak:       %d (best %d)\n", p.CurrentStreak, p.BestStreak)
		fmt.Fprintf(out, "Today:        %d solved, %d correct, %d XP\n",
			today.TotalSolved, today.CorrectAnswers, today.XPEarnedToday)

		rounds, err := events.RecentRounds(ctx, player, limit)
		if err != nil {
			return fmt.Errorf("recent rounds: %w", err)
		}
		if len(rounds) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-16s  %-9s  %-12s  %-24s  %-12s  %s\n", "Time", "Mode", "Tier", "Prompt", "Answer", "Result")
		fmt.Fprintln(out, strings.Repeat("─", 92))
		for _, r := range rounds {
			result := "✗"
			switch {
			case r.Correct:
				result = fmt.Sprintf("✓ +%d", r.XP)
			case r.TimedOut:
				result = "time"
			}
			fmt.Fprintf(out, "%-16s  %-9s  %-12s  %-24s  %-12s  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				r.Mode, r.Tier, truncate(r.Prompt, 24), truncate(r.Answer, 12), result)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("player", "p", "", "Player profile (overrides WIZQUEST_PLAYER)")
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent rounds to show")
	statsCmd.Flags().Bool("all", false, "List every player instead")
}
