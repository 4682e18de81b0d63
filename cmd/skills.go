package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Analyze skill gaps against a target role",
}

var skillsGenerateCmd = &cobra.Command{
	Use:   "generate <user>",
	Short: "Generate a skill gap report from the stored resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")

		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := a.SkillGaps.Generate(cmd.Context(), args[0], role)
		if err != nil {
			return err
		}
		return emit(cmd, p, func(w io.Writer) { renderProfile(w, p) })
	},
}

var skillsShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "Show the stored skill gap report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := a.SkillGaps.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("no skill profile for user %q", args[0])
		}
		return emit(cmd, p, func(w io.Writer) { renderProfile(w, p) })
	},
}

func init() {
	skillsGenerateCmd.Flags().StringP("role", "r", "", "Target role (defaults to the configured default role)")

	skillsCmd.AddCommand(skillsGenerateCmd)
	skillsCmd.AddCommand(skillsShowCmd)
}
