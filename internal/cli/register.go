package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opticode-ai/opticode/internal/adapters/storage"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an OptiCode account",
	Long: `Create an account and store the issued bearer token locally.

Examples:
  opticode register --name "Dev" --email you@example.com --password secret`,
	RunE: runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account the stored token belongs to",
	RunE:  runWhoami,
}

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)

	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "Display name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Account password (6 characters minimum)")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := newClient(false)
	if err != nil {
		return err
	}

	token, err := client.Register(ctx, registerName, registerEmail, registerPassword)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	tokens, err := storage.NewTokenStorage()
	if err != nil {
		return fmt.Errorf("failed to initialize token storage: %w", err)
	}
	if err := tokens.Save(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	fmt.Println("Account created")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := newClient(true)
	if err != nil {
		return err
	}

	user, err := client.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}

	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}
