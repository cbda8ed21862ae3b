package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/crucial707/staybook/cmd/cli/client"
	"github.com/crucial707/staybook/cmd/cli/config"
	"github.com/crucial707/staybook/cmd/cli/output"
)

// InitAuth registers account commands on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd(), profileCmd())
}

// ==========================
// REGISTER
// ==========================
func registerCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var user struct {
				ID    int    `json:"id"`
				Email string `json:"email"`
			}
			payload := map[string]string{"name": name, "email": email, "password": password}
			if _, _, err := client.New("").Do(http.MethodPost, "/register", payload, &user); err != nil {
				return fmt.Errorf("register: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d). Run `staybook login` next.\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

// ==========================
// LOGIN (stores the token locally)
// ==========================
func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			payload := map[string]string{"email": email, "password": password}
			_, resp, err := client.New("").Do(http.MethodPost, "/login", payload, nil)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			token := client.TokenFrom(resp)
			if token == "" {
				return errors.New("login succeeded but no token cookie was returned")
			}
			if err := config.SaveToken(token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

// ==========================
// LOGOUT
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := client.New("").Do(http.MethodPost, "/logout", nil, nil); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			if err := config.ClearToken(); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// ==========================
// PROFILE
// ==========================
func profileCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil && !errors.Is(err, config.ErrNotLoggedIn) {
				return err
			}
			var profile *struct {
				ID    int    `json:"id"`
				Name  string `json:"name"`
				Email string `json:"email"`
			}
			raw, _, err := client.New(token).Do(http.MethodGet, "/profile", nil, &profile)
			if err != nil {
				return err
			}
			if asJSON {
				output.PrintJSON(cmd.OutOrStdout(), raw)
				return nil
			}
			if profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Email"},
				[][]interface{}{{profile.ID, profile.Name, profile.Email}})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}
