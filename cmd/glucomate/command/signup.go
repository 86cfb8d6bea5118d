package command

import (
	"context"
	"fmt"

	"github.com/glucomate-org/glucomate/auth"
	"github.com/spf13/cobra"
)

var signupRegistration auth.Registration

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	Long:  "The signup command registers a new account. A verification email is sent to the given address.",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(signup) },
}

func signup(service auth.Service) error {
	message, err := service.Register(context.TODO(), signupRegistration)
	if err != nil {
		return err
	}

	fmt.Println(message)
	return nil
}

func init() {
	signupCmd.Flags().StringVar(&signupRegistration.FirstName, "first-name", "", "First name")
	signupCmd.Flags().StringVar(&signupRegistration.LastName, "last-name", "", "Last name")
	signupCmd.Flags().StringVar(&signupRegistration.Email, "email", "", "Email address")
	signupCmd.Flags().StringVar(&signupRegistration.Password, "password", "", "Password")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(signupCmd)
}
