package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/chronomap/internal/domain"
)

func newCredentialsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the Rovas API key pair",
	}

	cmd.AddCommand(
		newCredentialsSetCmd(app),
		newCredentialsShowCmd(app),
		newCredentialsClearCmd(app),
	)

	return cmd
}

func newCredentialsSetCmd(app *App) *cobra.Command {
	var apiKey, token string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the Rovas API key and token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Flags take precedence; the form only asks for what is missing.
			if apiKey == "" || token == "" {
				if !app.IsTTY {
					return errors.New("both --api-key and --token are required when not running interactively")
				}
				if err := credentialsForm(&apiKey, &token); err != nil {
					return err
				}
			}

			creds := domain.Credentials{
				APIKey: strings.TrimSpace(apiKey),
				Token:  strings.TrimSpace(token),
			}
			if creds.Missing() {
				return errors.New("api key and token must both be non-empty")
			}

			if err := app.Credentials.Save(ctx, creds); err != nil {
				return err
			}
			fmt.Println("Credentials stored.")
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Rovas API key")
	cmd.Flags().StringVar(&token, "token", "", "Rovas API token")

	return cmd
}

func credentialsForm(apiKey, token *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Rovas API key").
				Description("From your Rovas profile's API page").
				EchoMode(huh.EchoModePassword).
				Value(apiKey).
				Validate(requireNonEmpty("api key")),
			huh.NewInput().
				Title("Rovas API token").
				EchoMode(huh.EchoModePassword).
				Value(token).
				Validate(requireNonEmpty("token")),
		),
	).WithShowHelp(false).Run()
}

func requireNonEmpty(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s must not be empty", what)
		}
		return nil
	}
}

func newCredentialsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show whether credentials are configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := app.Credentials.Current(cmd.Context())
			if err != nil {
				return err
			}
			if creds.Missing() {
				fmt.Println("No credentials configured.")
				return nil
			}
			fmt.Printf("API key: %s\nToken:   %s\n", maskSecret(creds.APIKey), maskSecret(creds.Token))
			return nil
		},
	}
}

func newCredentialsClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Credentials.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Credentials cleared.")
			return nil
		},
	}
}

// maskSecret keeps the first and last two characters of a secret visible.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
