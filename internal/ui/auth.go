package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

func (a *App) authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API bearer token",
	}

	cmd.AddCommand(a.authSetTokenCmd())
	cmd.AddCommand(a.authClearCmd())

	return cmd
}

func (a *App) authSetTokenCmd() *cobra.Command {
	var expiresIn time.Duration

	cmd := &cobra.Command{
		Use:   "set-token [token]",
		Short: "Store the API bearer token",
		Long: `Store the pre-issued API bearer token used on calendar requests.

The token is read from the argument, or from stdin when omitted. It is
written with owner-only permissions.`,
		Example: `  jjprep auth set-token eyJhbGci...
  cat token.txt | jjprep auth set-token`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var raw string
			if len(args) > 0 {
				raw = args[0]
			} else {
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading token from stdin: %w", err)
				}
				raw = line
			}

			raw = strings.TrimSpace(raw)
			if raw == "" {
				return fmt.Errorf("token cannot be empty")
			}

			tok := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
			if expiresIn > 0 {
				tok.Expiry = time.Now().Add(expiresIn)
			}

			if err := a.tokens.Save(tok); err != nil {
				return err
			}

			fmt.Printf("Token stored at %s\n", a.tokens.Path())
			return nil
		},
	}

	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "Token lifetime (e.g. 1h); 0 means no expiry")

	return cmd
}

func (a *App) authClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored bearer token",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.tokens.Clear(); err != nil {
				return err
			}
			fmt.Println("Token cleared.")
			return nil
		},
	}
}
