package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func usersCmd() *cobra.Command {
	usersRoot := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	usersRoot.AddCommand(
		userCreateCmd(),
		userGetCmd(),
		userDeleteCmd(),
	)

	return usersRoot
}

func userCreateCmd() *cobra.Command {
	var (
		name     string
		password string
	)

	c := &cobra.Command{
		Use:     "create <email>",
		Short:   "Create a user account",
		Example: `  clctl users create seller@example.com --name "Kenta" --password s3cret`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			u, err := c.CreateUser(context.Background(), args[0], name, password)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(u)
			}
			cliLog.Info("user created", "id", u.ID, "email", u.Email)
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "display name")
	c.Flags().StringVar(&password, "password", "", "password")
	cobra.CheckErr(c.MarkFlagRequired("name"))
	cobra.CheckErr(c.MarkFlagRequired("password"))
	return c
}

func userGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show user details",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			u, err := c.GetUser(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(u)
			}
			return printUserDetail(u)
		},
	}
}

func userDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			if err := c.DeleteUser(context.Background(), args[0]); err != nil {
				return err
			}
			cliLog.Info("user deleted", "id", args[0])
			return nil
		},
	}
}
