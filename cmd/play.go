package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wizquest/internal/app"
	"github.com/abhisek/wizquest/internal/exercise"
	"github.com/abhisek/wizquest/internal/play"
	"github.com/abhisek/wizquest/internal/screen"
	"github.com/abhisek/wizquest/internal/screens/home"
	"github.com/abhisek/wizquest/internal/screens/practice"
)

type playOptions struct {
	mode   string
	player string
	level  int
	seed   uint64
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	Long: `Start a practice session. Without --mode the home screen lets the
player pick one of: math, listen, fill, describe or mixed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts playOptions
		opts.mode, _ = cmd.Flags().GetString("mode")
		opts.player, _ = cmd.Flags().GetString("player")
		opts.level, _ = cmd.Flags().GetInt("level")
		opts.seed, _ = cmd.Flags().GetUint64("seed")
		return runPlay(cmd, opts)
	},
}

func init() {
	playCmd.Flags().StringP("mode", "m", "", "Mode to play: math, listen, fill, describe or mixed")
	playCmd.Flags().StringP("player", "p", "", "Player profile (overrides WIZQUEST_PLAYER)")
	playCmd.Flags().IntP("level", "l", 0, "Play at this level instead of the stored one")
	playCmd.Flags().Uint64("seed", 0, "Random seed for a reproducible session")
}

// parsePlaylist maps a --mode value to a playlist.
func parsePlaylist(s string) (play.Playlist, error) {
	if strings.EqualFold(strings.TrimSpace(s), "mixed") {
		return play.Mixed(), nil
	}
	m, err := exercise.ParseMode(s)
	if err != nil {
		return play.Playlist{}, fmt.Errorf("%w (want math, listen, fill, describe or mixed)", err)
	}
	return play.Single(m), nil
}

func runPlay(cmd *cobra.Command, opts playOptions) error {
	if opts.level < 0 {
		return fmt.Errorf("level must be positive, got %d", opts.level)
	}

	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	player := opts.player
	if player == "" {
		player = rt.cfg.Player
	}
	deps := rt.deps(opts.seed)

	var first screen.Screen
	if opts.mode == "" {
		first = home.New(deps, player, opts.level)
	} else {
		playlist, err := parsePlaylist(opts.mode)
		if err != nil {
			return err
		}
		g, err := play.Start(context.Background(), deps, player, opts.level, playlist)
		if err != nil {
			return err
		}
		first = practice.New(g)
	}

	return app.Run(first)
}
