package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/resume"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Import and inspect resumes",
}

var resumeImportCmd = &cobra.Command{
	Use:   "import <user> <file.json>",
	Short: "Import a parsed resume ({\"rawText\": ..., \"parsed\": {...}})",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read resume: %w", err)
		}
		var in resume.ImportInput
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("decode resume %s: %w", args[1], err)
		}
		in.UserID = args[0]

		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		r, err := a.Resumes.Import(cmd.Context(), in)
		if err != nil {
			return err
		}
		return emit(cmd, r, func(w io.Writer) { renderResume(w, r) })
	},
}

var resumeShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "Show the stored resume and its ATS assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		r, err := a.Resumes.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("no resume for user %q", args[0])
		}
		return emit(cmd, r, func(w io.Writer) { renderResume(w, r) })
	},
}

func init() {
	resumeCmd.AddCommand(resumeImportCmd)
	resumeCmd.AddCommand(resumeShowCmd)
}
