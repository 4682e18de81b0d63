package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Generate and inspect career roadmaps",
}

var roadmapGenerateCmd = &cobra.Command{
	Use:   "generate <user>",
	Short: "Generate a month-by-month roadmap toward a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")

		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		r, err := a.Roadmaps.Generate(cmd.Context(), args[0], role)
		if err != nil {
			return err
		}
		return emit(cmd, r, func(w io.Writer) { renderRoadmap(w, r) })
	},
}

var roadmapShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "Show the stored roadmap for a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")

		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		r, err := a.Roadmaps.Get(cmd.Context(), args[0], role)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("no %q roadmap for user %q", role, args[0])
		}
		return emit(cmd, r, func(w io.Writer) { renderRoadmap(w, r) })
	},
}

var roadmapListCmd = &cobra.Command{
	Use:   "list <user>",
	Short: "List the user's roadmaps, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		all, err := a.Roadmaps.List(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd, all, func(w io.Writer) { renderRoadmapList(w, all) })
	},
}

func init() {
	roadmapGenerateCmd.Flags().StringP("role", "r", "", "Target role")
	roadmapGenerateCmd.MarkFlagRequired("role")
	roadmapShowCmd.Flags().StringP("role", "r", "", "Target role")
	roadmapShowCmd.MarkFlagRequired("role")

	roadmapCmd.AddCommand(roadmapGenerateCmd)
	roadmapCmd.AddCommand(roadmapShowCmd)
	roadmapCmd.AddCommand(roadmapListCmd)
}
