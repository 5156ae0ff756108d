package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const configPath = "config.yaml"

var rootCmd = &cobra.Command{
	Use:   "collecto-backend",
	Short: "Бэкенд интернет-магазина коллекционных моделей",
}

func Execute() {
	// .env заполняет окружение до чтения config.yaml:
	// плейсхолдеры ${VAR} в конфиге разворачиваются из него
	if err := godotenv.Load(); err == nil {
		log.Println("переменные окружения загружены из .env")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
