package command

import (
	"context"
	"fmt"

	"github.com/glucomate-org/glucomate/auth"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session token",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(login) },
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the persisted session token",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(logout) },
}

func login(service auth.Service) error {
	identity, err := service.Login(context.TODO(), loginEmail, loginPassword)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", identity.Email, identity.UserID)
	return nil
}

func logout(service auth.Service) error {
	if err := service.Logout(); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
