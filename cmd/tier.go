package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wizquest/internal/difficulty"
)

var tierCmd = &cobra.Command{
	Use:   "tier <level>",
	Short: "Show the difficulty parameters for a level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid level %q: %w", args[0], err)
		}

		p := difficulty.Resolve(level)
		ops := make([]string, len(p.Operators))
		for i, op := range p.Operators {
			ops[i] = op.Symbol()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Level:       %d\n", p.Level)
		fmt.Fprintf(out, "Tier:        %s\n", p.Tier.DisplayName())
		fmt.Fprintf(out, "Operators:   %s\n", strings.Join(ops, " "))
		fmt.Fprintf(out, "Add/Sub:     %s\n", formatRange(p.Add))
		if p.HasOperator(difficulty.OpMul) {
			fmt.Fprintf(out, "Multiply:    %s\n", formatRange(p.Mul))
		}
		if p.HasOperator(difficulty.OpDiv) {
			fmt.Fprintf(out, "Divide:      divisor %s, quotient %s\n", formatRange(p.Divisor), formatRange(p.Quotient))
		}
		fmt.Fprintf(out, "Variance:    ±%d\n", p.Variance)
		fmt.Fprintf(out, "Word length: %s letters\n", formatRange(p.WordLength))
		fmt.Fprintf(out, "Round time:  %ds math, %ds words\n", p.MathRoundSecs, p.WordRoundSecs)
		return nil
	},
}

func formatRange(r difficulty.Range) string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}
