package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/agisfl/agisfl/pkg/client"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(
		newAuthLoginCmd(),
		newAuthRegisterCmd(),
		newAuthLogoutCmd(),
		newAuthWhoamiCmd(),
	)

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = promptInput("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptPassword("Password: "); err != nil {
					return err
				}
			}

			resp, err := apiClient.Login(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := storeCredentials(resp, email); err != nil {
				return err
			}

			name := email
			if resp.User != nil && resp.User.Username != "" {
				name = resp.User.Username
			}
			fmt.Printf("Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var email, password, username, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = promptInput("Email: "); err != nil {
					return err
				}
			}
			if username == "" {
				if username, err = promptInput("Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptPassword("Password: "); err != nil {
					return err
				}
				confirm, err := promptPassword("Confirm password: ")
				if err != nil {
					return err
				}
				if password != confirm {
					return fmt.Errorf("passwords do not match")
				}
			}

			resp, err := apiClient.Register(context.Background(), client.RegisterRequest{
				Email:    email,
				Password: password,
				Username: username,
				Role:     role,
			})
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			if err := storeCredentials(resp, email); err != nil {
				return err
			}

			fmt.Printf("Account created. Logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&role, "role", "", "role: admin, analyst, viewer")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("auth.token", "")
			viper.Set("auth.refresh_token", "")
			viper.Set("auth.email", "")

			if _, err := saveConfig(); err != nil {
				return fmt.Errorf("clearing credentials: %w", err)
			}

			fmt.Println("Logged out")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current user info",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := apiClient.GetCurrentUser(context.Background())
			if err != nil {
				return fmt.Errorf("fetching user info: %w", err)
			}

			if getOutputFormat() != "table" {
				return printStructured(user)
			}

			fmt.Printf("Email:    %s\n", user.Email)
			if user.Username != "" {
				fmt.Printf("Username: %s\n", user.Username)
			}
			fmt.Printf("Role:     %s\n", user.Role)
			fmt.Printf("ID:       %d\n", user.ID)
			return nil
		},
	}
}

// storeCredentials writes the token pair into the config file so later
// invocations pick it up through viper.
func storeCredentials(resp *client.AuthResponse, email string) error {
	viper.Set("auth.token", resp.AccessToken)
	if resp.RefreshToken != "" {
		viper.Set("auth.refresh_token", resp.RefreshToken)
	}
	if resp.User != nil && resp.User.Email != "" {
		email = resp.User.Email
	}
	viper.Set("auth.email", email)

	if _, err := saveConfig(); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

func promptInput(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}
