package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sir_venger/foodgram/internal/repo/catalog"
	"github.com/sir_venger/foodgram/internal/usecase/catalogsvc"
)

type importFunc func(svc catalogsvc.Service, ctx context.Context, r io.Reader) (catalogsvc.ImportResult, error)

func (a *app) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "load reference data into the catalog",
	}
	cmd.AddCommand(
		a.importFileCmd("ingredients <file.csv>", "load ingredients from CSV (name,measurement_unit)", catalogsvc.Service.ImportIngredients),
		a.importFileCmd("tags <file.yaml>", "load tags from YAML or JSON", catalogsvc.Service.ImportTags),
	)
	return cmd
}

// importFileCmd подкоманда загрузки одного файла; повторная загрузка дубликаты пропускает.
func (a *app) importFileCmd(use, short string, run importFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			svc := catalogsvc.New(catalogsvc.Deps{Store: catalog.New(db)})
			res, err := run(svc, cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "read %d, inserted %d\n", res.Read, res.Inserted)
			return nil
		},
	}
}
