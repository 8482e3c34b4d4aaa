package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a player's progress and history",
	RunE: func(cmd *cobra.Command, args []string) error {
		player, _ := cmd.Flags().GetString("player")
		yes, _ := cmd.Flags().GetBool("yes")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if player == "" {
			player = rt.cfg.Player
		}

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(out, "Delete all progress for %q? [y/N] ", player)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		if err := rt.store.ProfileRepo().Delete(context.Background(), player); err != nil {
			return fmt.Errorf("reset %q: %w", player, err)
		}
		rt.log.Info("profile reset", "player", player)
		fmt.Fprintf(out, "Progress for %q deleted.\n", player)
		return nil
	},
}

func init() {
	resetCmd.Flags().StringP("player", "p", "", "Player profile (overrides WIZQUEST_PLAYER)")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
