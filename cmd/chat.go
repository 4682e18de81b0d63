package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/chat"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

var chatCmd = &cobra.Command{
	Use:   "chat <user> [message...]",
	Short: "Ask the AI mentor a question, or show the conversation with --history",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showHistory, _ := cmd.Flags().GetBool("history")
		message := strings.Join(args[1:], " ")
		if !showHistory && strings.TrimSpace(message) == "" {
			return errors.New("a message is required")
		}

		a, cleanup, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if showHistory {
			history, err := a.Chat.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd, history, func(w io.Writer) {
				if len(history) == 0 {
					fmt.Fprintln(w, "No conversation yet.")
					return
				}
				renderConversation(w, history)
			})
		}

		reply, err := a.Chat.Chat(cmd.Context(), args[0], message)
		if errors.Is(err, chat.ErrAIUnavailable) {
			return fmt.Errorf("%w; set an API key such as OPENAI_API_KEY", err)
		}
		if err != nil {
			return err
		}
		return emit(cmd, reply, func(w io.Writer) {
			style := theme.Body
			if reply.Fallback {
				style = theme.Warn
			}
			lipgloss.Fprintln(w, style.Render(reply.Reply))
		})
	},
}

func init() {
	chatCmd.Flags().Bool("history", false, "Show the stored conversation instead of sending a message")
}
