package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/tracking"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Record quiz results",
}

var quizRecordCmd = &cobra.Command{
	Use:   "record <user>",
	Short: "Record a finished quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		course, _ := cmd.Flags().GetString("course")
		score, _ := cmd.Flags().GetInt("score")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		q, err := a.Tracking.RecordQuiz(cmd.Context(), tracking.QuizInput{
			UserID:     args[0],
			Course:     course,
			Score:      score,
			Difficulty: difficulty,
		})
		if err != nil {
			return err
		}
		return emit(cmd, q, func(w io.Writer) {
			fmt.Fprintf(w, "Recorded %s: %d/100 (%s)\n", q.Course, q.Score, q.ID)
		})
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Report study time",
}

var progressSetCmd = &cobra.Command{
	Use:   "set <user>",
	Short: "Set study minutes for the last seven days",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, _ := cmd.Flags().GetInt("minutes")
		label, _ := cmd.Flags().GetString("label")

		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := a.Tracking.SetProgress(cmd.Context(), tracking.ProgressInput{
			UserID:       args[0],
			StudyMinutes: minutes,
			SpeedLabel:   label,
		})
		if err != nil {
			return err
		}
		return emit(cmd, p, func(w io.Writer) {
			fmt.Fprintf(w, "Progress saved: %d minutes last week", p.StudyMinutesLastWeek)
			if p.SpeedLabel != "" {
				fmt.Fprintf(w, " (%s)", p.SpeedLabel)
			}
			fmt.Fprintln(w)
		})
	},
}

var recalcCmd = &cobra.Command{
	Use:   "recalc <user>",
	Short: "Re-tune the learning plan from recent quizzes and study time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := a.Adaptive.Recalculate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd, res, func(w io.Writer) { renderRecalc(w, res) })
	},
}

func init() {
	quizRecordCmd.Flags().String("course", "", "Course or topic the quiz covered")
	quizRecordCmd.Flags().Int("score", 0, "Score from 0 to 100")
	quizRecordCmd.Flags().String("difficulty", "", "Quiz difficulty: easy, medium or hard")
	quizRecordCmd.MarkFlagRequired("course")
	quizRecordCmd.MarkFlagRequired("score")
	quizCmd.AddCommand(quizRecordCmd)

	progressSetCmd.Flags().Int("minutes", 0, "Study minutes in the last seven days")
	progressSetCmd.Flags().String("label", "", "Learning speed: slow, average or fast (kept when empty)")
	progressSetCmd.MarkFlagRequired("minutes")
	progressCmd.AddCommand(progressSetCmd)
}
