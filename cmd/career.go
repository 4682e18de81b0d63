package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/career"
)

var careerCmd = &cobra.Command{
	Use:   "career",
	Short: "Compare roles and assess fit, risk and hiring odds",
}

var careerCompareCmd = &cobra.Command{
	Use:   "compare <user>",
	Short: "Trade-off analysis between two roles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roleA, _ := cmd.Flags().GetString("role-a")
		roleB, _ := cmd.Flags().GetString("role-b")

		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		cmp, err := a.Career.Compare(cmd.Context(), args[0], roleA, roleB)
		if err != nil {
			return err
		}
		return emit(cmd, cmp, func(w io.Writer) { renderComparison(w, cmp) })
	},
}

// roleCommand builds a single-role advisory subcommand.
func roleCommand[T any](use, short string,
	call func(*career.Service) func(ctx context.Context, userID, role string) (*T, error),
	render func(io.Writer, *T)) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " <user>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")

			a, cleanup, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := call(a.Career)(cmd.Context(), args[0], role)
			if err != nil {
				return err
			}
			return emit(cmd, out, func(w io.Writer) { render(w, out) })
		},
	}
	c.Flags().StringP("role", "r", "", "Target role (defaults to the configured default role)")
	return c
}

func init() {
	careerCompareCmd.Flags().String("role-a", "", "First role")
	careerCompareCmd.Flags().String("role-b", "", "Second role")
	_ = careerCompareCmd.MarkFlagRequired("role-a")
	_ = careerCompareCmd.MarkFlagRequired("role-b")

	careerCmd.AddCommand(careerCompareCmd)
	careerCmd.AddCommand(roleCommand("match", "Score how well you fit a role",
		func(s *career.Service) func(context.Context, string, string) (*career.RoleMatch, error) { return s.Match },
		renderMatch))
	careerCmd.AddCommand(roleCommand("risk", "Assess the long-term stability of a role",
		func(s *career.Service) func(context.Context, string, string) (*career.RiskReport, error) { return s.Risk },
		renderRisk))
	careerCmd.AddCommand(roleCommand("hiring", "Simulate a recruiter's evaluation for a role",
		func(s *career.Service) func(context.Context, string, string) (*career.HiringSignal, error) {
			return s.HiringSignal
		},
		renderHiring))
}
