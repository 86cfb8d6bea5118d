package command

import (
	"context"
	"fmt"

	"github.com/glucomate-org/glucomate/auth"
	"github.com/spf13/cobra"
)

var (
	resetToken    string
	resetPassword string
	forgotEmail   string
)

var verifyCmd = &cobra.Command{
	Use:   "verify [token]",
	Short: "Verify an email address with the token from the verification email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(service auth.Service) error {
			message, err := service.VerifyEmail(context.TODO(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(message)
			return nil
		})
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset email",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(forgot) },
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password with the token from the reset email",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(reset) },
}

func forgot(service auth.Service) error {
	message, err := service.ForgotPassword(context.TODO(), forgotEmail)
	if err != nil {
		return err
	}

	fmt.Println(message)
	return nil
}

func reset(service auth.Service) error {
	message, err := service.ResetPassword(context.TODO(), resetToken, resetPassword)
	if err != nil {
		return err
	}

	fmt.Println(message)
	return nil
}

func init() {
	forgotPasswordCmd.Flags().StringVar(&forgotEmail, "email", "", "Email address")
	_ = forgotPasswordCmd.MarkFlagRequired("email")

	resetPasswordCmd.Flags().StringVar(&resetToken, "token", "", "Reset token")
	resetPasswordCmd.Flags().StringVar(&resetPassword, "password", "", "New password")
	_ = resetPasswordCmd.MarkFlagRequired("token")
	_ = resetPasswordCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(resetPasswordCmd)
}
