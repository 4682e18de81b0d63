package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/learningplan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and inspect weekly learning plans",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate <user>",
	Short: "Generate a learning plan from the stored skill profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
		industry, _ := cmd.Flags().GetString("industry")

		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := a.Plans.Generate(cmd.Context(), args[0], learningplan.Hints{
			ExperienceLevel: level,
			Industry:        industry,
		})
		if errors.Is(err, learningplan.ErrPreconditionMissing) {
			return fmt.Errorf("%w; run `careerpath skills generate %s` first", err, args[0])
		}
		if err != nil {
			return err
		}
		return emit(cmd, p, func(w io.Writer) { renderPlan(w, p) })
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "Show the stored learning plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := a.Plans.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("no learning plan for user %q", args[0])
		}
		return emit(cmd, p, func(w io.Writer) { renderPlan(w, p) })
	},
}

func init() {
	planGenerateCmd.Flags().String("level", "", "Experience level: Student, Fresher or Professional (inferred when empty)")
	planGenerateCmd.Flags().String("industry", "", "Industry to steer examples toward")

	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planShowCmd)
}
