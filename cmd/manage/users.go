package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sir_venger/foodgram/internal/repo/users"
	"github.com/sir_venger/foodgram/internal/usecase/accountsvc"
)

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "manage user accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "promote <email>",
		Short: "grant administrator rights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			svc := accountsvc.New(accountsvc.Deps{Users: users.New(db)})
			if err := svc.Promote(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("promote %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now an administrator\n", args[0])
			return nil
		},
	})

	return cmd
}
