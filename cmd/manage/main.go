// Command manage обслуживает базу foodgram: миграции, загрузка справочников, права пользователей.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sir_venger/foodgram/internal/config"
	"github.com/sir_venger/foodgram/internal/repo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app общее состояние подкоманд.
type app struct {
	configPath string
	dsn        string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "manage",
		Short:         "foodgram maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().StringVar(&a.dsn, "dsn", "", "database DSN, overrides db_dsn from config")

	root.AddCommand(
		a.migrateCmd(),
		a.importCmd(),
		a.usersCmd(),
	)
	return root
}

func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if a.dsn != "" {
		cfg.DBDSN = a.dsn
	}
	return cfg, nil
}

// openDB открывает базу из конфигурации; закрывать вызывающему.
func (a *app) openDB(ctx context.Context) (*repo.DB, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("db_dsn is not configured")
	}
	return repo.Open(ctx, cfg.DBDSN)
}
