package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/glucomate-org/glucomate/chat"
	"github.com/spf13/cobra"
)

var chatSessionID string

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send a message to the assistant",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")
		return Run(func(service chat.Service) error {
			reply, err := service.Send(context.TODO(), message, chatSessionID)
			if err != nil {
				return err
			}
			fmt.Println(reply.Text)
			fmt.Printf("(session %s)\n", reply.SessionID)
			return nil
		})
	},
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List chat sessions, or the messages of one session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return Run(listSessions)
		}
		return Run(func(service chat.Service) error {
			return listMessages(service, args[0])
		})
	},
}

var chatEndCmd = &cobra.Command{
	Use:   "end [session-id]",
	Short: "End a chat session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(service chat.Service) error {
			return service.End(context.TODO(), args[0])
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show assistant availability",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(showStatus) },
}

func listSessions(service chat.Service) error {
	sessions, err := service.Sessions(context.TODO())
	if err != nil {
		return err
	}

	for _, session := range sessions {
		state := "open"
		if session.Ended {
			state = "ended"
		}
		fmt.Printf("%s %s %s\n", session.SessionID, session.StartedAt, state)
	}
	fmt.Printf("Found %v sessions\n", len(sessions))

	return nil
}

func listMessages(service chat.Service, sessionID string) error {
	messages, err := service.Messages(context.TODO(), sessionID)
	if err != nil {
		return err
	}

	for _, message := range messages {
		fmt.Printf("%s: %s\n", message.Sender, message.Text)
	}

	return nil
}

func showStatus(service chat.Service) error {
	status, err := service.Status(context.TODO())
	if err != nil {
		return err
	}

	if status.Online {
		fmt.Printf("online (%s)\n", status.Model)
	} else {
		fmt.Printf("offline: %s\n", status.Message)
	}

	return nil
}

func init() {
	chatCmd.Flags().StringVar(&chatSessionID, "session", "", "Continue an existing chat session")
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatEndCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(statusCmd)
}
