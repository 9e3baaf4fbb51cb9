package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opticode-ai/opticode/internal/adapters/storage"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the OptiCode backend",
	Long: `Exchange credentials for a bearer token and store it locally.

Examples:
  opticode login --email you@example.com --password secret`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored bearer token",
	RunE:  runLogout,
}

var (
	loginEmail    string
	loginPassword string
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := newClient(false)
	if err != nil {
		return err
	}

	token, err := client.Login(ctx, loginEmail, loginPassword)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	tokens, err := storage.NewTokenStorage()
	if err != nil {
		return fmt.Errorf("failed to initialize token storage: %w", err)
	}
	if err := tokens.Save(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	fmt.Println("Logged in")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	tokens, err := storage.NewTokenStorage()
	if err != nil {
		return fmt.Errorf("failed to initialize token storage: %w", err)
	}
	if err := tokens.Clear(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	fmt.Println("Logged out")
	return nil
}
