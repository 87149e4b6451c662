package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(c *cli) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print an access token for --token or HRMS_TOKEN",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(email) == "" {
				return errors.New("--email is required")
			}

			fmt.Fprint(c.errOut, "Password: ")
			password, err := bufio.NewReader(c.in).ReadString('\n')
			fmt.Fprintln(c.errOut)
			password = strings.TrimRight(password, "\r\n")
			if password == "" {
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				return errors.New("password is required")
			}

			session, err := c.client().Auth().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.errOut, "Logged in as %s (%s), token valid for %ds\n",
				session.User.Email, session.User.Role, session.ExpiresIn)
			fmt.Fprintln(c.out, session.AccessToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}
