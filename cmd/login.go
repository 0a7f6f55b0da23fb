package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/guardcore-cli/internal/application"
	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/spf13/cobra"
)

const defaultProfileID = "default"

func newLoginCmd(app *app, flags *globalFlags) *cobra.Command {
	var (
		baseURL       string
		username      string
		password      string
		passwordStdin bool
		apiKey        string
		apiKeyStdin   bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a guardcore server and save the profile",
		Long:  "Exchange an admin username and password for a token, or verify an admin API key, and store the credential in the secret store.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profileID := domain.ProfileID(strings.TrimSpace(flags.profile))
			if profileID == "" {
				profileID = defaultProfileID
			}
			if baseURL == "" {
				baseURL = app.cfg.BaseURL
			}

			if passwordStdin || apiKeyStdin {
				if passwordStdin && apiKeyStdin {
					return errors.New("use either --password-stdin or --api-key-stdin, not both")
				}
				secret, err := readSecretLine(cmd)
				if err != nil {
					return err
				}
				if passwordStdin {
					password = secret
				} else {
					apiKey = secret
				}
			}

			var (
				profile domain.Profile
				err     error
			)
			switch {
			case apiKey != "" && (username != "" || password != ""):
				return errors.New("use either --api-key or --username/--password, not both")
			case apiKey != "":
				profile, err = app.service.LoginWithAPIKey(cmd.Context(), application.APIKeyLoginCommand{
					ProfileID: profileID,
					BaseURL:   baseURL,
					APIKey:    apiKey,
				})
			default:
				profile, err = app.service.Login(cmd.Context(), application.LoginCommand{
					ProfileID: profileID,
					BaseURL:   baseURL,
					Username:  username,
					Password:  password,
				})
			}
			if err != nil {
				return err
			}

			if flags.asJSON {
				return writeJSON(cmd, profile)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s) on profile %s\n", profile.Label(), profile.Role, profile.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Server base URL (defaults to GUARDCORE_BASE_URL or config)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Admin username")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the admin password from stdin")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Admin API key instead of username and password")
	cmd.Flags().BoolVar(&apiKeyStdin, "api-key-stdin", false, "Read the admin API key from stdin")

	return cmd
}

func newLogoutCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential of a profile",
		RunE: hinted(func(cmd *cobra.Command, _ []string) error {
			profile, err := app.service.Logout(cmd.Context(), domain.ProfileID(flags.profile))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged out of profile %s\n", profile.ID)
			return err
		}),
	}
}
