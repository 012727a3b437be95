package cmd

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func loginCmd() *cobra.Command {
	var password string

	c := &cobra.Command{
		Use:   "login <email>",
		Short: "Obtain an API access token",
		Long: "Exchanges your email and password for an access token.\n" +
			"Store the printed token in $HOME/.clctl.yaml under `token:` or\n" +
			"export it as CLCTL_TOKEN.",
		Example: `  clctl login seller@example.com
  clctl login seller@example.com --password s3cret`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(os.Stderr)
				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}
				password = string(raw)
			}

			c := newClient()
			token, err := c.Login(context.Background(), args[0], password)
			if err != nil {
				return err
			}

			cliLog.Info("login successful")
			fmt.Println(token)
			return nil
		},
	}

	c.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return c
}
