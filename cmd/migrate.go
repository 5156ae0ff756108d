package cmd

import (
	"log"

	"collecto-backend/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Управление миграциями базы данных",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Применяет все up-миграции",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		if err := config.MigrateUp(&cfg.DatabaseConfig); err != nil {
			return err
		}

		log.Println("миграции применены")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Откатывает последнюю миграцию",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		if err := config.MigrateDown(&cfg.DatabaseConfig); err != nil {
			return err
		}

		log.Println("последняя миграция откатана")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
