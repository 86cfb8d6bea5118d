package command

import (
	"context"
	"fmt"
	"os"

	"github.com/glucomate-org/glucomate/chat"
	"github.com/glucomate-org/glucomate/speech"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var voiceAudioPath string

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Ask the assistant with a recorded utterance",
	Long: "The voice command streams a raw LINEAR16 16kHz mono recording through speech " +
		"recognition and sends the transcript to the assistant.",
	RunE: func(cmd *cobra.Command, args []string) error { return Run(voiceExchange) },
}

func voiceExchange(chatService chat.Service, recognizer speech.Recognizer, logger *zap.SugaredLogger) error {
	ctx := context.TODO()

	conversation, err := chat.NewVoiceConversation(chatService, recognizer, logger)
	if err != nil {
		return err
	}

	audio, err := os.Open(voiceAudioPath)
	if err != nil {
		return err
	}
	defer audio.Close()

	err = conversation.Capture(ctx, audio, func(interim string) {
		fmt.Printf("... %s\n", interim)
	})
	if err != nil {
		return err
	}

	turn, err := conversation.Exchange(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("you: %s\n", turn.User)
	fmt.Printf("assistant: %s\n", turn.Assistant)
	return conversation.End(ctx)
}

func init() {
	voiceCmd.Flags().StringVar(&voiceAudioPath, "audio", "", "Path to a raw LINEAR16 16kHz mono recording")
	_ = voiceCmd.MarkFlagRequired("audio")
	rootCmd.AddCommand(voiceCmd)
}
